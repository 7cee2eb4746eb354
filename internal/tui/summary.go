package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"wheelspin/internal/history"
	"wheelspin/internal/util"
)

const (
	maxTallyLabelWidth = 16
	tallyBarWidth      = 10
)

// RenderWinner renders the banner for the entry the wheel landed on.
// Example:
// ╭────────────────────────────╮
// │      ★ Alice  ·  spin 3    │
// ╰────────────────────────────╯
func RenderWinner(label string, spin, width int) string {
	boxWidth := util.Clamp(width, 24, 60)
	inner := boxWidth - 6 // border and padding

	text := fmt.Sprintf("★ %s  ·  spin %d", runewidth.Truncate(label, max(inner-14, 4), "…"), spin)
	return winnerBoxStyle.
		Width(boxWidth - 2).
		Align(lipgloss.Center).
		Render(text)
}

// RenderTally renders win counts as bars, most wins first, limited to limit
// rows. A non-positive limit shows every row.
// Example:
//
//	Tally  ·  7 spins
//	─────────────────────────────────
//	   3  Alice      ████░░░░░░   43%
//	   2  Bob        ███░░░░░░░   29%
func RenderTally(counts []history.Count, limit int) string {
	total := 0
	labelWidth := 0
	for _, c := range counts {
		total += c.Wins
		labelWidth = max(labelWidth, runewidth.StringWidth(c.Entry))
	}
	labelWidth = min(labelWidth, maxTallyLabelWidth)

	var b strings.Builder
	b.WriteString(tallyStatStyle.Render("  Tally  ·  " + spinCount(total)))
	b.WriteString("\n")
	b.WriteString(tallyStatStyle.Render("  " + strings.Repeat("─", 33)))

	if len(counts) == 0 {
		b.WriteString("\n")
		b.WriteString(tallyStatStyle.Faint(true).Render("  no spins yet"))
		return b.String()
	}

	shown := counts
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, c := range shown {
		b.WriteString("\n")
		b.WriteString(renderTallyLine(c, total, labelWidth))
	}
	if hidden := len(counts) - len(shown); hidden > 0 {
		b.WriteString("\n")
		b.WriteString(tallyStatStyle.Faint(true).Render(fmt.Sprintf("  … %d more", hidden)))
	}
	return b.String()
}

func renderTallyLine(c history.Count, total, labelWidth int) string {
	label := runewidth.FillRight(runewidth.Truncate(c.Entry, labelWidth, "…"), labelWidth)
	percent := util.Percent(c.Wins, total)

	return fmt.Sprintf("  %s  %s  %s  %s",
		resultEntryStyle.Render(fmt.Sprintf("%3d", c.Wins)),
		tallyStatStyle.Render(label),
		renderMiniBar(percent, tallyBarWidth),
		tallyStatStyle.Render(fmt.Sprintf("%3d%%", percent)))
}

func renderMiniBar(percent, width int) string {
	filled := util.Clamp(int(math.Round(float64(percent)/100*float64(width))), 0, width)

	return tallyBarStyle.Render(strings.Repeat("█", filled)) +
		tallyBarEmptyStyle.Render(strings.Repeat("░", width-filled))
}
