package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"wheelspin/internal/history"
)

// ResultsPanelModel lists this session's results above the all-time tally.
type ResultsPanelModel struct {
	viewport viewport.Model
	results  []history.Result
	past     []history.Result
	width    int
	height   int
}

// NewResultsPanel creates a panel whose tally starts from past results.
func NewResultsPanel(past []history.Result) ResultsPanelModel {
	return ResultsPanelModel{past: past}
}

func (r *ResultsPanelModel) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.viewport = viewport.New(width, height)
	r.refresh(true)
}

// Add appends a result and follows it if the view was at the bottom.
func (r *ResultsPanelModel) Add(res history.Result) {
	follow := r.viewport.AtBottom()
	r.results = append(r.results, res)
	r.refresh(follow)
}

func (r *ResultsPanelModel) refresh(follow bool) {
	r.viewport.SetContent(r.content())
	if follow {
		r.viewport.GotoBottom()
	}
}

// Results returns this session's results, oldest first.
func (r ResultsPanelModel) Results() []history.Result {
	return r.results
}

// Tally counts past and session results together.
func (r ResultsPanelModel) Tally() []history.Count {
	all := make([]history.Result, 0, len(r.past)+len(r.results))
	all = append(all, r.past...)
	all = append(all, r.results...)
	return history.Tally(all)
}

func (r ResultsPanelModel) content() string {
	var b strings.Builder
	if len(r.results) == 0 {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("Waiting for the first spin..."))
	}
	for i, res := range r.results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(resultIndexStyle.Render(fmt.Sprintf("%3d  ", i+1)))
		b.WriteString(resultEntryStyle.Render(truncateLine(res.Entry, max(r.width-16, 4))))
		if !res.Time.IsZero() {
			b.WriteString(resultTimeStyle.Render("  " + res.Time.Format("15:04:05")))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(RenderTally(r.Tally(), 8))
	return b.String()
}

func (r ResultsPanelModel) View() string {
	return r.viewport.View()
}

func (r *ResultsPanelModel) ScrollUp(n int) {
	r.viewport.ScrollUp(n)
}

func (r *ResultsPanelModel) ScrollDown(n int) {
	r.viewport.ScrollDown(n)
}

func (r ResultsPanelModel) AtBottom() bool {
	return r.viewport.AtBottom()
}

func (r ResultsPanelModel) ScrollPercent() float64 {
	return r.viewport.ScrollPercent()
}

func (r ResultsPanelModel) TotalLineCount() int {
	return r.viewport.TotalLineCount()
}

func (r ResultsPanelModel) Height() int {
	return r.viewport.Height
}
