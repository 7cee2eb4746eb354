// Package condition decides whether a configured entry applies to the
// current run, based on the selected profile and the day of the week.
package condition

import (
	"slices"
	"strings"
)

type Context struct {
	Profile string

	// Weekday is the short lowercase day name: mon, tue, ... sun.
	Weekday string
}

type Condition struct {
	Profile []string

	Weekday []string
}

type Evaluator struct {
	ctx Context
}

func NewEvaluator(ctx Context) *Evaluator {
	return &Evaluator{ctx: ctx}
}

// Context returns the context the evaluator matches against.
func (e *Evaluator) Context() Context {
	return e.ctx
}

// A nil or empty condition always matches.
func (e *Evaluator) Matches(c *Condition) bool {
	return e.FailureReason(c) == ""
}

// FailureReason returns a human-readable reason why the condition failed.
// Returns empty string if condition matches.
func (e *Evaluator) FailureReason(c *Condition) string {
	if c == nil {
		return ""
	}

	if len(c.Profile) > 0 && !slices.Contains(c.Profile, e.ctx.Profile) {
		return "profile=" + e.ctx.Profile + ", want " + strings.Join(c.Profile, " or ")
	}

	if len(c.Weekday) > 0 && !containsFold(c.Weekday, e.ctx.Weekday) {
		return "weekday=" + e.ctx.Weekday + ", want " + strings.Join(c.Weekday, " or ")
	}

	return ""
}

func containsFold(values []string, v string) bool {
	return slices.ContainsFunc(values, func(s string) bool {
		return strings.EqualFold(NormalizeWeekday(s), v)
	})
}
