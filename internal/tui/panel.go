package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Panel is a bordered box with a title set into the top border and an
// optional footer set into the bottom one.
type Panel struct {
	Title       string
	Footer      string
	Content     string
	Width       int
	Height      int
	BorderColor lipgloss.Color
	Focused     bool // unfocused content is dimmed
}

// DefaultBorderColor is the default panel border color.
var DefaultBorderColor = lipgloss.Color("#808080")

const (
	minPanelWidth  = 10
	minPanelHeight = 3
)

// RenderPanel renders p at exactly p.Width columns and at most p.Height rows.
func RenderPanel(p Panel) string {
	width := p.Width
	if width <= 0 {
		width = minPanelWidth
	}
	height := p.Height
	if height <= 0 {
		height = minPanelHeight
	}

	// Width and Height on a bordered lipgloss style size the inner area.
	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	content := fitContent(p.Content, innerWidth, innerHeight)
	if !p.Focused {
		content = lipgloss.NewStyle().Faint(true).Render(content)
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderColor).
		Width(innerWidth).
		Height(innerHeight)

	lines := strings.Split(borderStyle.Render(content), "\n")
	border := lipgloss.NewStyle().Foreground(p.BorderColor)
	if p.Title != "" {
		lines[0] = border.Render(borderLine("╭", "╮", p.Title, width))
	}
	if p.Footer != "" && len(lines) > 1 {
		lines[len(lines)-1] = border.Render(borderLine("╰", "╯", p.Footer, width))
	}
	return strings.Join(lines, "\n")
}

// fitContent clips content to the inner area of a panel. Widths are
// measured with lipgloss so ANSI sequences do not count.
func fitContent(content string, maxWidth, maxHeight int) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	clip := lipgloss.NewStyle().MaxWidth(maxWidth)
	for i, line := range lines {
		if lipgloss.Width(line) > maxWidth {
			lines[i] = clip.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// borderLine builds a horizontal border of totalWidth cells with text set
// in after the first dash: "╭─ text ───╮".
func borderLine(left, right, text string, totalWidth int) string {
	// Corners take two cells and the leading dash one.
	room := max(totalWidth-3, 0)

	label := " " + text + " "
	if runewidth.StringWidth(label) > room {
		label = " " + runewidth.Truncate(text, max(room-2, 0), "…") + " "
		if room < 3 {
			label = ""
		}
	}

	dashes := max(room-runewidth.StringWidth(label), 0)
	return left + "─" + label + strings.Repeat("─", dashes) + right
}
