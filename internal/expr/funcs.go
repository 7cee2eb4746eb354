package expr

import (
	"fmt"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
)

// CompileOptions returns expr options with built-in functions registered.
func CompileOptions() []expr.Option {
	return []expr.Option{
		expr.Env(&Context{}),
		expr.Function("default", defaultFunc,
			new(func(any, any) any),
		),
		expr.Function("hasSubstr", hasSubstrFunc,
			new(func(string, string) bool),
		),
		expr.Function("join", joinFunc,
			new(func([]any, string) string),
		),
		expr.Function("oneOf", oneOfFunc,
			new(func(string, ...string) bool),
		),
		expr.Function("between", betweenFunc,
			new(func(int, int, int) bool),
		),
	}
}

func arity(name string, params []any, n int) error {
	if len(params) != n {
		return fmt.Errorf("%s: expected %d arguments, got %d", name, n, len(params))
	}
	return nil
}

func argAs[T any](name string, params []any, i int) (T, error) {
	v, ok := params[i].(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: argument %d must be %T, got %T", name, i+1, zero, params[i])
	}
	return v, nil
}

// default returns the fallback for nil or "".
// Usage: default(vars.team, "platform")
func defaultFunc(params ...any) (any, error) {
	if err := arity("default", params, 2); err != nil {
		return nil, err
	}
	if s, ok := params[0].(string); params[0] == nil || (ok && s == "") {
		return params[1], nil
	}
	return params[0], nil
}

// Usage: hasSubstr(text, "bot")
func hasSubstrFunc(params ...any) (any, error) {
	if err := arity("hasSubstr", params, 2); err != nil {
		return nil, err
	}
	haystack, err := argAs[string]("hasSubstr", params, 0)
	if err != nil {
		return nil, err
	}
	needle, err := argAs[string]("hasSubstr", params, 1)
	if err != nil {
		return nil, err
	}
	return strings.Contains(haystack, needle), nil
}

// join formats list items and joins them with sep.
// Usage: join(vars.oncall, ", ")
func joinFunc(params ...any) (any, error) {
	if err := arity("join", params, 2); err != nil {
		return nil, err
	}
	items, err := argAs[[]any]("join", params, 0)
	if err != nil {
		return nil, err
	}
	sep, err := argAs[string]("join", params, 1)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, sep), nil
}

// oneOf reports whether the first argument equals any of the others.
// Usage: oneOf(weekday, "sat", "sun")
func oneOfFunc(params ...any) (any, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("oneOf: expected at least 1 argument, got 0")
	}
	needle, err := argAs[string]("oneOf", params, 0)
	if err != nil {
		return nil, err
	}
	return slices.ContainsFunc(params[1:], func(p any) bool {
		s, ok := p.(string)
		return ok && s == needle
	}), nil
}

// between reports whether hour h lies in [from, to). A range with to < from
// wraps past midnight.
// Usage: between(hour, 9, 17), between(hour, 22, 6)
func betweenFunc(params ...any) (any, error) {
	if err := arity("between", params, 3); err != nil {
		return nil, err
	}
	var hours [3]int
	for i := range hours {
		h, err := argAs[int]("between", params, i)
		if err != nil {
			return nil, err
		}
		hours[i] = h
	}
	h, from, to := hours[0], hours[1], hours[2]
	if from <= to {
		return h >= from && h < to, nil
	}
	return h >= from || h < to, nil
}
