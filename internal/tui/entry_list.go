package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"wheelspin/internal/entry"
)

const (
	SelectionIndicator   = "▶"
	NoSelectionIndicator = " "
	PointerIndicator     = "●"
)

// EntryListModel lists every configured entry with its state on the wheel.
// A cursor lets the user pick a target from the list.
type EntryListModel struct {
	viewport viewport.Model
	entries  []*entry.Entry
	display  []*entry.Entry
	active   *entry.Entry
	target   *entry.Entry
	selected int
	width    int
	height   int
}

func NewEntryList() *EntryListModel {
	return &EntryListModel{}
}

// SetEntries replaces the listed entries and the subset shown on the wheel.
func (l *EntryListModel) SetEntries(all, display []*entry.Entry) {
	l.entries = all
	l.display = display
	l.selected = min(l.selected, max(len(all)-1, 0))
	l.refreshContent()
}

// SetState records the entry under the pointer and the target.
func (l *EntryListModel) SetState(active, target *entry.Entry) {
	if active == l.active && target == l.target {
		return
	}
	l.active = active
	l.target = target
	l.refreshContent()
}

func (l *EntryListModel) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.viewport = viewport.New(width, height)
	l.ensureVisible()
	l.refreshContent()
}

func (l *EntryListModel) MoveUp() {
	if l.selected > 0 {
		l.selected--
		l.ensureVisible()
		l.refreshContent()
	}
}

func (l *EntryListModel) MoveDown() {
	if l.selected < len(l.entries)-1 {
		l.selected++
		l.ensureVisible()
		l.refreshContent()
	}
}

// Selected returns the entry under the cursor, or nil for an empty list.
func (l *EntryListModel) Selected() *entry.Entry {
	if l.selected < 0 || l.selected >= len(l.entries) {
		return nil
	}
	return l.entries[l.selected]
}

func (l *EntryListModel) ensureVisible() {
	if l.viewport.Height == 0 {
		return
	}

	top := l.viewport.YOffset
	bottom := top + l.viewport.Height
	if l.selected < top {
		l.viewport.SetYOffset(l.selected)
	}
	if l.selected >= bottom {
		l.viewport.SetYOffset(l.selected - l.viewport.Height + 1)
	}
}

func (l *EntryListModel) refreshContent() {
	l.viewport.SetContent(l.renderLines())
}

func (l *EntryListModel) View() string {
	if len(l.entries) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No entries configured")
	}
	return l.viewport.View()
}

func (l *EntryListModel) renderLines() string {
	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		lines[i] = l.renderLine(i, e)
	}
	return strings.Join(lines, "\n")
}

func (l *EntryListModel) renderLine(i int, e *entry.Entry) string {
	prefix := NoSelectionIndicator + " "
	if i == l.selected {
		prefix = SelectionIndicator + " "
	}

	marker := "  "
	if e == l.active {
		marker = PointerIndicator + " "
	}

	var status string
	style := lipgloss.NewStyle()
	switch {
	case !e.IsEnabled():
		status = "disabled"
		style = disabledEntryStyle
	case !slices.Contains(l.display, e):
		status = "hidden"
		style = hiddenEntryStyle
	case e.Weight > 0 && e.Weight != 1:
		status = fmt.Sprintf("×%g", e.Weight)
	}
	if e == l.target {
		status = strings.TrimSpace(targetMarker + " target " + status)
		style = targetEntryStyle
	}
	if e == l.active {
		style = activeEntryStyle
	}

	nameWidth := max(l.width-lipgloss.Width(prefix+marker)-lipgloss.Width(status)-4, 4)
	line := renderWithLeader(prefix+marker, truncateLine(e.Text, nameWidth), status, l.width)
	line = style.Render(line)

	if i == l.selected {
		if pad := l.width - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		line = selectedRowStyle.Render(line)
	}
	return line
}

// renderWithLeader lays out "prefix name ····· suffix" across totalWidth.
// Without a suffix the name stands alone.
func renderWithLeader(prefix, name, suffix string, totalWidth int) string {
	if suffix == "" {
		return prefix + name
	}

	used := lipgloss.Width(prefix) + lipgloss.Width(name) + lipgloss.Width(suffix)
	leaderSpace := max(totalWidth-used-2, 3)

	return prefix + name + " " + leaderStyle.Render(strings.Repeat("·", leaderSpace)) + " " + suffix
}
