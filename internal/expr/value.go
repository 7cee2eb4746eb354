// Package expr evaluates ${ } expressions embedded in entry fields.
package expr

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Value is a config value that may contain expressions:
//   - a literal (string, number, bool) with no expressions
//   - a full expression: the whole value is ${ expr }
//   - an interpolated string: "prefix ${ expr } suffix"
type Value struct {
	raw any

	segments []segment
	program  *vm.Program // set for full expressions
}

type segment struct {
	text    string
	program *vm.Program
}

// NewValue compiles any ${ } expressions found in raw.
func NewValue(raw any) (*Value, error) {
	v := &Value{raw: raw}

	s, ok := raw.(string)
	if !ok {
		return v, nil
	}

	spans := scan(s)
	if len(spans) == 1 && strings.TrimSpace(s[:spans[0].start]) == "" && strings.TrimSpace(s[spans[0].end:]) == "" {
		program, err := compile(spans[0].body)
		if err != nil {
			return nil, err
		}
		v.program = program
		return v, nil
	}

	last := 0
	for _, sp := range spans {
		if sp.start > last {
			v.segments = append(v.segments, segment{text: s[last:sp.start]})
		}
		program, err := compile(sp.body)
		if err != nil {
			return nil, err
		}
		v.segments = append(v.segments, segment{program: program})
		last = sp.end
	}
	if len(spans) > 0 && last < len(s) {
		v.segments = append(v.segments, segment{text: s[last:]})
	}

	return v, nil
}

func compile(body string) (*vm.Program, error) {
	program, err := expr.Compile(body, CompileOptions()...)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", body, err)
	}
	return program, nil
}

type span struct {
	start, end int // s[start:end] is the whole ${ ... }
	body       string
}

// scan finds ${ ... } spans. Braces inside the body nest, and quoted
// strings are skipped so "}" inside a literal does not close the span.
func scan(s string) []span {
	var spans []span

	for i := 0; i+1 < len(s); {
		if s[i] != '$' || s[i+1] != '{' {
			i++
			continue
		}

		start := i
		depth := 0
		j := i + 1
	body:
		for ; j < len(s); j++ {
			switch c := s[j]; c {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					break body
				}
			case '"', '\'':
				for j++; j < len(s) && s[j] != c; j++ {
					if s[j] == '\\' {
						j++
					}
				}
			}
		}

		if j >= len(s) {
			return spans
		}
		spans = append(spans, span{
			start: start,
			end:   j + 1,
			body:  strings.TrimSpace(s[start+2 : j]),
		})
		i = j + 1
	}

	return spans
}

// IsLiteral returns true if this value contains no expressions.
func (v *Value) IsLiteral() bool {
	return v.program == nil && len(v.segments) == 0
}

// Resolve evaluates any expressions in this value against the given context.
func (v *Value) Resolve(ctx *Context) (any, error) {
	if v.program != nil {
		return expr.Run(v.program, ctx)
	}
	if v.IsLiteral() {
		return v.raw, nil
	}

	var sb strings.Builder
	for _, seg := range v.segments {
		if seg.program == nil {
			sb.WriteString(seg.text)
			continue
		}
		out, err := expr.Run(seg.program, ctx)
		if err != nil {
			return nil, err
		}
		sb.WriteString(fmt.Sprint(out))
	}
	return sb.String(), nil
}

// ResolveCondition evaluates an enabled expression.
//
// Rules:
//   - nil or literal empty string → enabled (true)
//   - literal bool is returned as is
//   - expressions must evaluate to bool
func ResolveCondition(v *Value, ctx *Context) (bool, error) {
	if v == nil {
		return true, nil
	}
	if s, ok := v.raw.(string); ok && v.IsLiteral() && s == "" {
		return true, nil
	}

	result, err := v.Resolve(ctx)
	if err != nil {
		return false, err
	}

	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("condition must evaluate to bool, got %T", result)
	}
	return b, nil
}

// ResolveNumber evaluates a weight expression. nil resolves to def.
func ResolveNumber(v *Value, ctx *Context, def float64) (float64, error) {
	if v == nil {
		return def, nil
	}

	result, err := v.Resolve(ctx)
	if err != nil {
		return 0, err
	}

	switch n := result.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case nil:
		return def, nil
	default:
		return 0, fmt.Errorf("weight must evaluate to a number, got %T", result)
	}
}

// String returns a string representation for debugging.
func (v *Value) String() string {
	switch {
	case v.program != nil:
		return fmt.Sprintf("Expr(%v)", v.raw)
	case len(v.segments) > 0:
		return fmt.Sprintf("Interpolated(%v)", v.raw)
	default:
		return fmt.Sprintf("Literal(%v)", v.raw)
	}
}
