package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderNotice renders a red box for problems the user should see without
// leaving the TUI, such as a history file that could not be written.
// ╭──────────────────────────────────────╮
// │ HISTORY                              │
// │ open ~/.local/share/...: permission  │
// │ denied                               │
// ╰──────────────────────────────────────╯
func RenderNotice(title, message string, width int) string {
	// Border 2 plus padding 4.
	innerWidth := max(width-6, 20)

	var content strings.Builder
	content.WriteString(noticeHeaderStyle.Render(strings.ToUpper(title)))
	for _, line := range wrapText(message, innerWidth) {
		content.WriteString("\n")
		content.WriteString(noticeTextStyle.Render(line))
	}

	return noticeBoxStyle.Width(innerWidth + 4).Render(content.String())
}

// wrapText breaks text into lines of at most width cells, preferring to
// break at a space in the second half of the line.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	remaining := []rune(strings.TrimSpace(text))
	for len(remaining) > 0 {
		if runewidth.StringWidth(string(remaining)) <= width {
			lines = append(lines, string(remaining))
			break
		}

		// Longest prefix that fits.
		cut, used := 0, 0
		for cut < len(remaining) {
			w := runewidth.RuneWidth(remaining[cut])
			if used+w > width {
				break
			}
			used += w
			cut++
		}
		cut = max(cut, 1)

		for i := cut - 1; i >= cut/2; i-- {
			if remaining[i] == ' ' {
				cut = i
				break
			}
		}

		lines = append(lines, strings.TrimSpace(string(remaining[:cut])))
		remaining = []rune(strings.TrimSpace(string(remaining[cut:])))
	}

	return lines
}

// truncateLine shortens line to maxWidth cells with a trailing ellipsis.
func truncateLine(line string, maxWidth int) string {
	return runewidth.Truncate(line, maxWidth, "…")
}
