package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"wheelspin/internal/wheel"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress SpinProgress
		wantText string
	}{
		{
			name:     "idle",
			progress: SpinProgress{Phase: wheel.PhaseIdleDemo},
			wantText: "idle  •  press space to spin",
		},
		{
			name:     "accelerating",
			progress: SpinProgress{Phase: wheel.PhaseAccelerating, Elapsed: 30, Total: 600},
			wantText: "accelerating  •  5%  •  9.5s left",
		},
		{
			name:     "decelerating",
			progress: SpinProgress{Phase: wheel.PhaseDecelerating, Elapsed: 300, Total: 600},
			wantText: "decelerating  •  50%  •  5.0s left",
		},
		{
			name:     "overrun clamps",
			progress: SpinProgress{Phase: wheel.PhaseDecelerating, Elapsed: 601, Total: 600},
			wantText: "decelerating  •  100%  •  0.0s left",
		},
		{
			name:     "stopped after one spin",
			progress: SpinProgress{Phase: wheel.PhasePostSpin, Spins: 1},
			wantText: "stopped  •  1 spin",
		},
		{
			name:     "stopped after several spins",
			progress: SpinProgress{Phase: wheel.PhasePostSpin, Spins: 4},
			wantText: "stopped  •  4 spins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(RenderProgress(tt.progress, 20), "\n")
			assert.Len(t, lines, 2, "should have 2 lines: stats and bar")
			assert.Contains(t, lines[0], tt.wantText)
			assert.Equal(t, 20, lipgloss.Width(lines[1]))
		})
	}
}

func TestRenderProgress_BarFill(t *testing.T) {
	tests := []struct {
		name       string
		progress   SpinProgress
		width      int
		wantFilled int
	}{
		{"half way", SpinProgress{Phase: wheel.PhaseDecelerating, Elapsed: 50, Total: 100}, 20, 10},
		{"quarter", SpinProgress{Phase: wheel.PhaseAccelerating, Elapsed: 25, Total: 100}, 40, 10},
		{"idle is empty", SpinProgress{Phase: wheel.PhaseIdleDemo}, 10, 0},
		{"stopped is full", SpinProgress{Phase: wheel.PhasePostSpin}, 10, 10},
		{"zero length spin", SpinProgress{Phase: wheel.PhaseAccelerating, Elapsed: 3}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := strings.Split(RenderProgress(tt.progress, tt.width), "\n")[1]
			assert.Equal(t, tt.wantFilled, strings.Count(bar, "█"))
			assert.Equal(t, tt.width-tt.wantFilled, strings.Count(bar, "░"))
		})
	}
}

func TestSpinProgress_Remaining(t *testing.T) {
	p := SpinProgress{Elapsed: 60, Total: 600}
	assert.Equal(t, 9*time.Second, p.Remaining())

	p.Elapsed = 700
	assert.Zero(t, p.Remaining())
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0.0s"},
		{-time.Second, "0.0s"},
		{1500 * time.Millisecond, "1.5s"},
		{59 * time.Second, "59.0s"},
		{65 * time.Second, "1m05s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSeconds(tt.in))
	}
}
