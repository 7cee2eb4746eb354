package tui

import (
	"fmt"
	"strings"
	"time"

	"wheelspin/internal/util"
	"wheelspin/internal/wheel"
)

// SpinProgress is what the progress line knows about the current spin.
type SpinProgress struct {
	Phase wheel.Phase
	// Elapsed counts ticks since the click.
	Elapsed int
	// Total is the configured spin length in ticks.
	Total float64
	// Spins counts finished spins this session.
	Spins int
}

// Remaining returns the expected time left in the spin.
func (p SpinProgress) Remaining() time.Duration {
	left := max(p.Total-float64(p.Elapsed), 0)
	return time.Duration(left / wheel.TicksPerSecond * float64(time.Second))
}

// RenderProgress renders a stats line above a progress bar.
// Example output:
// "decelerating  •  62%  •  3.8s left"
// "█████████████░░░░░░░░"
func RenderProgress(p SpinProgress, width int) string {
	var parts []string
	filled := 0.0

	switch p.Phase {
	case wheel.PhaseAccelerating, wheel.PhaseDecelerating:
		pct := util.Percent(float64(p.Elapsed), p.Total)
		parts = []string{
			p.Phase.String(),
			fmt.Sprintf("%d%%", pct),
			formatSeconds(p.Remaining()) + " left",
		}
		if p.Total > 0 {
			filled = float64(p.Elapsed) / p.Total
		}
	case wheel.PhasePostSpin:
		parts = []string{"stopped", spinCount(p.Spins)}
		filled = 1
	default:
		parts = []string{"idle", "press space to spin"}
	}

	stats := strings.Join(parts, "  •  ")

	barWidth := width
	if barWidth <= 0 {
		barWidth = len(stats)
	}
	filledCount := util.Clamp(int(filled*float64(barWidth)), 0, barWidth)

	bar := progressFilledStyle.Render(strings.Repeat("█", filledCount)) +
		progressEmptyStyle.Render(strings.Repeat("░", barWidth-filledCount))

	return progressTextStyle.Render(stats) + "\n" + bar
}

func spinCount(n int) string {
	if n == 1 {
		return "1 spin"
	}
	return fmt.Sprintf("%d spins", n)
}

// formatSeconds renders a short duration with one decimal: "3.8s", "0.0s".
// Durations of a minute or more use "1m05s".
func formatSeconds(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
