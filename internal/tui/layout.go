package tui

type LayoutMode int

const (
	LayoutSingleColumn LayoutMode = iota
	LayoutTwoColumn
)

// Layout splits the content area between the wheel and the side panel.
type Layout struct {
	Mode       LayoutMode
	Width      int
	Height     int
	LeftWidth  int
	RightWidth int
}

const (
	minWidthTwoColumn = 60
	wideTerminalWidth = 101

	// The wheel column takes the larger share; labels need the room.
	mediumWheelPercent = 55
	wideWheelPercent   = 60

	// Rows the wheel column spends outside the ring: title, progress (2),
	// banner (3), help (2) and the panel border (2).
	wheelChromeRows = 10

	minRingWidth  = 20
	minRingHeight = 7
)

func NewLayout(width, height int) Layout {
	l := Layout{Mode: LayoutSingleColumn, Width: width, Height: height}
	if width <= 0 {
		return l
	}
	if width < minWidthTwoColumn {
		l.LeftWidth = width
		return l
	}

	percent := mediumWheelPercent
	if width >= wideTerminalWidth {
		percent = wideWheelPercent
	}
	l.Mode = LayoutTwoColumn
	l.LeftWidth = width * percent / 100
	l.RightWidth = width - l.LeftWidth
	return l
}

func (l Layout) IsTwoColumn() bool {
	return l.Mode == LayoutTwoColumn
}

// RingSize returns the canvas the ring painter gets in this layout.
// Terminal cells are about twice as tall as they are wide, so the canvas is
// kept near a 2:1 aspect ratio to make the ring look round.
func (l Layout) RingSize() (width, height int) {
	width = l.LeftWidth - 4
	height = l.Height - wheelChromeRows
	if l.IsTwoColumn() {
		height -= 2
	}

	height = max(height, minRingHeight)
	width = max(min(width, 2*height+2), minRingWidth)
	return width, height
}
