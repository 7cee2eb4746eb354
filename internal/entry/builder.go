package entry

import (
	"fmt"
	"log/slog"
	"math"

	"wheelspin/internal/condition"
	"wheelspin/internal/config"
	"wheelspin/internal/expr"
)

// Builder turns configured entries into wheel entries.
// Entries whose when-condition fails are kept but disabled, so they still
// show up in AllEntries.
type Builder struct {
	evaluator *condition.Evaluator
	exprCtx   *expr.Context
	log       *slog.Logger
}

func NewBuilder() *Builder {
	return &Builder{log: slog.New(slog.DiscardHandler)}
}

// WithLogger logs entries disabled by their when-clause at debug level.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.log = l
	return b
}

// WithEvaluator sets the condition evaluator for when-clauses.
func (b *Builder) WithEvaluator(eval *condition.Evaluator) *Builder {
	b.evaluator = eval
	return b
}

// WithExprContext sets the environment for enabled/weight expressions.
func (b *Builder) WithExprContext(ctx *expr.Context) *Builder {
	b.exprCtx = ctx
	return b
}

// Build converts config entries to wheel entries, preserving order.
func (b *Builder) Build(defs []config.EntryDef) ([]*Entry, error) {
	exprCtx := b.exprCtx
	if exprCtx == nil {
		exprCtx = expr.NewContext()
	}

	entries := make([]*Entry, 0, len(defs))
	for i, def := range defs {
		e, err := b.build(def, exprCtx.ForEntry(def.Text))
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, def.Text, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (b *Builder) build(def config.EntryDef, ctx *expr.Context) (*Entry, error) {
	e := New(def.Text)

	weight, err := b.weight(def.Weight, ctx)
	if err != nil {
		return nil, err
	}
	e.Weight = weight

	if b.evaluator != nil && def.When != nil {
		cond := &condition.Condition{
			Profile: def.When.Profile,
			Weekday: def.When.Weekday,
		}
		if reason := b.evaluator.FailureReason(cond); reason != "" {
			b.log.Debug("entry disabled", "entry", def.Text, "reason", reason)
			e.SetEnabled(false)
			return e, nil
		}
	}

	if def.Enabled != nil {
		v, err := expr.NewValue(def.Enabled)
		if err != nil {
			return nil, err
		}
		enabled, err := expr.ResolveCondition(v, ctx)
		if err != nil {
			return nil, fmt.Errorf("enabled: %w", err)
		}
		e.SetEnabled(enabled)
	}

	return e, nil
}

func (b *Builder) weight(raw any, ctx *expr.Context) (float64, error) {
	if raw == nil {
		return 1, nil
	}
	v, err := expr.NewValue(raw)
	if err != nil {
		return 0, err
	}
	w, err := expr.ResolveNumber(v, ctx, 1)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, fmt.Errorf("weight must be finite, got %v", w)
	}
	if w < 0 {
		return 0, fmt.Errorf("weight cannot be negative, got %v", w)
	}
	return w, nil
}

// DefaultBuilder returns a Builder wired for the given run context and
// config variables.
func DefaultBuilder(ctx condition.Context, vars map[string]any) *Builder {
	exprCtx := expr.NewContext().WithProfile(ctx.Profile)
	if ctx.Weekday != "" {
		exprCtx.Weekday = ctx.Weekday
	}
	if vars != nil {
		exprCtx = exprCtx.WithVars(vars)
	}
	return NewBuilder().
		WithEvaluator(condition.NewEvaluator(ctx)).
		WithExprContext(exprCtx)
}
