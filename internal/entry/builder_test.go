package entry

import (
	"bytes"
	"log/slog"
	"math"
	"testing"
	"time"

	"wheelspin/internal/condition"
	"wheelspin/internal/config"
	"wheelspin/internal/expr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-16 was a Saturday.
var saturday = time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC)

func testBuilder(profile string) *Builder {
	ctx := condition.Context{Profile: profile, Weekday: "sat"}
	exprCtx := expr.NewContextAt(saturday).WithProfile(profile)
	exprCtx.Vars["team"] = "platform"
	return NewBuilder().
		WithEvaluator(condition.NewEvaluator(ctx)).
		WithExprContext(exprCtx)
}

func TestBuilder_Build_Literals(t *testing.T) {
	defs := []config.EntryDef{
		{Text: "Alice"},
		{Text: "Bob", Weight: 2},
		{Text: "Eve", Enabled: false},
	}

	entries, err := testBuilder("").Build(defs)

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Alice", entries[0].Text)
	assert.Nil(t, entries[0].Enabled, "absent enabled stays unset")
	assert.Equal(t, 1.0, entries[0].Weight)
	assert.Equal(t, 2.0, entries[1].Weight)
	assert.False(t, entries[2].IsEnabled())
}

func TestBuilder_Build_Expressions(t *testing.T) {
	defs := []config.EntryDef{
		{Text: "weekend", Enabled: "${ oneOf(weekday, \"sat\", \"sun\") }"},
		{Text: "weekday", Enabled: "${ weekday == \"mon\" }"},
		{Text: "team", Enabled: "${ vars.team == \"platform\" }", Weight: "${ profile == \"work\" ? 3 : 1 }"},
		{Text: "bot", Enabled: "${ !hasSubstr(text, \"bot\") }"},
	}

	entries, err := testBuilder("work").Build(defs)

	require.NoError(t, err)
	assert.True(t, entries[0].IsEnabled())
	assert.False(t, entries[1].IsEnabled())
	assert.True(t, entries[2].IsEnabled())
	assert.Equal(t, 3.0, entries[2].Weight)
	assert.False(t, entries[3].IsEnabled(), "text is bound to the entry label")
}

func TestBuilder_Build_WhenCondition(t *testing.T) {
	defs := []config.EntryDef{
		{Text: "work only", When: &config.When{Profile: config.StringOrSlice{"work"}}},
		{Text: "home only", When: &config.When{Profile: config.StringOrSlice{"home"}}},
		{Text: "weekdays", When: &config.When{Weekday: config.StringOrSlice{"mon", "tue"}}},
		{Text: "forced on but gated", Enabled: true, When: &config.When{Profile: config.StringOrSlice{"home"}}},
	}

	entries, err := testBuilder("work").Build(defs)

	require.NoError(t, err)
	require.Len(t, entries, 4, "gated entries are kept, just disabled")
	assert.True(t, entries[0].IsEnabled())
	assert.False(t, entries[1].IsEnabled())
	assert.False(t, entries[2].IsEnabled())
	assert.False(t, entries[3].IsEnabled(), "when takes precedence over enabled")
}

func TestBuilder_Build_Errors(t *testing.T) {
	tests := []struct {
		name    string
		def     config.EntryDef
		wantErr string
	}{
		{"invalid expression", config.EntryDef{Text: "x", Enabled: "${ 1 + }"}, "invalid expression"},
		{"non-bool enabled", config.EntryDef{Text: "x", Enabled: "${ 42 }"}, "must evaluate to bool"},
		{"non-number weight", config.EntryDef{Text: "x", Weight: "heavy"}, "must evaluate to a number"},
		{"negative weight", config.EntryDef{Text: "x", Weight: -1}, "cannot be negative"},
		{"NaN weight", config.EntryDef{Text: "x", Weight: math.NaN()}, "must be finite"},
		{"infinite weight", config.EntryDef{Text: "x", Weight: math.Inf(1)}, "must be finite"},
		{"infinite weight expression", config.EntryDef{Text: "x", Weight: "${ 1.0 / 0 }"}, "must be finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testBuilder("").Build([]config.EntryDef{{Text: "ok"}, tt.def})

			require.Error(t, err)
			assert.Contains(t, err.Error(), "entry 2 (x)")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuilder_Build_NoEvaluatorIgnoresWhen(t *testing.T) {
	defs := []config.EntryDef{
		{Text: "gated", When: &config.When{Profile: config.StringOrSlice{"home"}}},
	}

	entries, err := NewBuilder().Build(defs)

	require.NoError(t, err)
	assert.True(t, entries[0].IsEnabled())
}

func TestDefaultBuilder(t *testing.T) {
	b := DefaultBuilder(condition.Context{Profile: "work", Weekday: "sun"}, map[string]any{"team": "platform"})

	entries, err := b.Build([]config.EntryDef{
		{Text: "a", Enabled: "${ weekday == \"sun\" and vars.team == \"platform\" and profile == \"work\" }"},
	})

	require.NoError(t, err)
	assert.True(t, entries[0].IsEnabled())
}

func TestBuilder_Build_LogsDisabledReason(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	defs := []config.EntryDef{
		{Text: "monday", When: &config.When{Weekday: config.StringOrSlice{"mon"}}},
	}

	_, err := testBuilder("").WithLogger(log).Build(defs)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "entry disabled")
	assert.Contains(t, buf.String(), "weekday=sat, want mon")
}
