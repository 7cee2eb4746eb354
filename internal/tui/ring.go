package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"wheelspin/internal/entry"
	"wheelspin/internal/util"
	"wheelspin/internal/wheel"
)

const (
	// Labels sit at this fraction of the rim radius.
	labelRadius = 0.62
	// Sector dividers are drawn on the rim up to this many entries.
	maxDividers = 48

	pointerGlyph = "▼"
	hubGlyph     = "◉"
	rimGlyph     = "·"
	dividerGlyph = "•"
	targetMarker = "◎"
)

type tone int

const (
	toneBlank tone = iota
	toneRim
	toneDivider
	toneLabel
	toneActive
	toneTarget
	tonePointer
	toneHub
)

func (t tone) isLabel() bool {
	return t == toneLabel || t == toneActive || t == toneTarget
}

type cell struct {
	glyph string
	tone  tone
	// cont marks the second column of a wide rune.
	cont bool
}

// RingPainter draws the wheel as labels around an ellipse with the pointer
// at the top. It implements wheel.Painter; View returns the last frame.
type RingPainter struct {
	width  int
	height int

	pointerOffset int
	target        *entry.Entry

	stale     bool
	lastAngle float64
	frame     string
}

// NewRingPainter creates a painter for a canvas of the given size. The frame
// is one row taller than height for the footer.
func NewRingPainter(width, height int) *RingPainter {
	return &RingPainter{width: width, height: height, stale: true}
}

// SetSize changes the canvas size.
func (p *RingPainter) SetSize(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = width, height
	p.stale = true
}

// SetPointerOffset shifts the pointer sideways by n columns.
func (p *RingPainter) SetPointerOffset(n int) {
	if n != p.pointerOffset {
		p.pointerOffset = n
		p.stale = true
	}
}

// SetTarget marks e on the ring. Nil removes the mark.
func (p *RingPainter) SetTarget(e *entry.Entry) {
	if e != p.target {
		p.target = e
		p.stale = true
	}
}

func (p *RingPainter) Refresh() {
	p.stale = true
}

func (p *RingPainter) Draw(angle float64, display, all []*entry.Entry, settings wheel.Settings) {
	if !p.stale && angle == p.lastAngle && p.frame != "" {
		return
	}
	p.frame = p.render(angle, display, all, newRingTheme(settings.DarkMode))
	p.lastAngle = angle
	p.stale = false
}

// View returns the most recently drawn frame.
func (p *RingPainter) View() string {
	return p.frame
}

type ringCanvas struct {
	cells  [][]cell
	width  int
	height int
}

func newRingCanvas(width, height int) *ringCanvas {
	cells := make([][]cell, height)
	for y := range cells {
		cells[y] = make([]cell, width)
		for x := range cells[y] {
			cells[y][x] = cell{glyph: " "}
		}
	}
	return &ringCanvas{cells: cells, width: width, height: height}
}

func (c *ringCanvas) set(x, y int, glyph string, t tone) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	if c.cells[y][x].tone.isLabel() || c.cells[y][x].cont {
		return
	}
	c.cells[y][x] = cell{glyph: glyph, tone: t}
}

// free reports whether [x, x+w) on row y holds no label.
func (c *ringCanvas) free(x, y, w int) bool {
	for i := x; i < x+w; i++ {
		if i < 0 || i >= c.width || c.cells[y][i].tone.isLabel() || c.cells[y][i].cont {
			return false
		}
	}
	return true
}

func (c *ringCanvas) write(x, y int, text string, t tone) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > c.width {
			return
		}
		c.cells[y][x] = cell{glyph: string(r), tone: t}
		if w == 2 {
			c.cells[y][x+1] = cell{glyph: "", tone: t, cont: true}
		}
		x += w
	}
}

func (c *ringCanvas) render(theme ringTheme) string {
	styles := map[tone]lipgloss.Style{
		toneRim:     theme.rim,
		toneDivider: theme.divider,
		toneLabel:   theme.label,
		toneActive:  theme.active,
		toneTarget:  theme.target,
		tonePointer: theme.pointer,
		toneHub:     theme.hub,
	}

	rows := make([]string, c.height)
	for y, row := range c.cells {
		var b, run strings.Builder
		current := toneBlank
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if s, ok := styles[current]; ok {
				b.WriteString(s.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.cont {
				continue
			}
			if cl.tone != current {
				flush()
				current = cl.tone
			}
			run.WriteString(cl.glyph)
		}
		flush()
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

func (p *RingPainter) render(angle float64, display, all []*entry.Entry, theme ringTheme) string {
	width := max(p.width, minRingWidth)
	height := max(p.height, minRingHeight)
	canvas := newRingCanvas(width, height)

	// Row 0 holds the pointer; the ring fills the rest.
	cx := float64(width-1) / 2
	ry := float64(height-2) / 2
	cy := 1 + ry
	rx := cx

	pointerX := int(math.Round(cx)) + p.pointerOffset
	canvas.set(pointerX, 0, pointerGlyph, tonePointer)

	if len(display) == 0 {
		msg := "no entries to spin"
		canvas.write(int(cx)-runewidth.StringWidth(msg)/2, int(math.Round(cy)), msg, toneLabel)
		return canvas.render(theme) + "\n" + theme.footer.Render(ringFooter(display, all))
	}

	point := func(theta, scale float64) (int, int) {
		x := cx + rx*scale*math.Sin(theta)
		y := cy - ry*scale*math.Cos(theta)
		return int(math.Round(x)), int(math.Round(y))
	}

	sectors := wheel.Sectors(display)
	active := wheel.IndexAtPointer(display, angle)

	// Labels first; rim and dividers fill the gaps.
	p.placeLabels(canvas, display, sectors, active, angle, point, rx)

	steps := 4 * (width + height)
	for i := range steps {
		x, y := point(float64(i)/float64(steps)*2*math.Pi, 1)
		canvas.set(x, y, rimGlyph, toneRim)
	}
	if len(display) > 1 && len(display) <= maxDividers {
		for _, s := range sectors {
			x, y := point(s.Start-angle, 1)
			canvas.set(x, y, dividerGlyph, toneDivider)
		}
	}
	canvas.set(int(math.Round(cx)), int(math.Round(cy)), hubGlyph, toneHub)

	return canvas.render(theme) + "\n" + theme.footer.Render(ringFooter(display, all))
}

type labelSpot struct {
	index    int
	distance float64
}

// placeLabels writes labels nearest the pointer first and skips those that
// would overlap one already placed.
func (p *RingPainter) placeLabels(canvas *ringCanvas, display []*entry.Entry, sectors []wheel.Sector,
	active int, angle float64, point func(theta, scale float64) (int, int), rx float64,
) {
	spots := make([]labelSpot, len(display))
	for i, s := range sectors {
		d := math.Remainder(s.Center()-angle, 2*math.Pi)
		spots[i] = labelSpot{index: i, distance: math.Abs(d)}
	}
	sort.SliceStable(spots, func(a, b int) bool {
		if spots[a].index == active {
			return true
		}
		if spots[b].index == active {
			return false
		}
		return spots[a].distance < spots[b].distance
	})

	maxLabelWidth := util.Clamp(int(rx*labelRadius*1.4), 4, 24)
	budget := 2 * (canvas.height - 1)

	for _, spot := range spots {
		if budget == 0 {
			break
		}
		e := display[spot.index]
		text := runewidth.Truncate(e.Text, maxLabelWidth, "…")
		t := toneLabel
		switch {
		case spot.index == active:
			t = toneActive
		case e == p.target:
			t = toneTarget
		}
		if e == p.target {
			text += targetMarker
		}

		x, y := point(sectors[spot.index].Center()-angle, labelRadius)
		w := runewidth.StringWidth(text)
		start := util.Clamp(x-w/2, 0, max(canvas.width-w, 0))
		if y < 1 || y >= canvas.height || !canvas.free(start, y, w) {
			continue
		}
		canvas.write(start, y, text, t)
		budget--
	}
}

func ringFooter(display, all []*entry.Entry) string {
	enabled, disabled := 0, 0
	for _, e := range all {
		if e.IsEnabled() {
			enabled++
		} else {
			disabled++
		}
	}

	parts := []string{fmt.Sprintf("%d on wheel", len(display))}
	if hidden := enabled - len(display); hidden > 0 {
		parts = append(parts, fmt.Sprintf("%d hidden", hidden))
	}
	if disabled > 0 {
		parts = append(parts, fmt.Sprintf("%d disabled", disabled))
	}
	return strings.Join(parts, " · ")
}
