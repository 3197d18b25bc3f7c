// Package layout holds the cell geometry shared by the widgets and the
// renderer, plus overlay placement.
package layout

// Point is a cell position.
type Point struct {
	X int
	Y int
}

// Offset is the scroll position of the document under the viewport.
type Offset struct {
	X int
	Y int
}

// Rect is an on-screen box in cells.
type Rect struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Bottom returns the first row below the rect.
func (r Rect) Bottom() int {
	return r.Top + r.Height
}

// Right returns the first column right of the rect.
func (r Rect) Right() int {
	return r.Left + r.Width
}

// Contains reports whether p lies inside the rect.
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// Translate shifts the rect by the given deltas.
func (r Rect) Translate(dx, dy int) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// Placement is the computed position of a floating panel.
type Placement struct {
	Top      int
	Left     int
	MinWidth int
}

// ComputePosition anchors an overlay to the bottom-left corner of anchor.
// The anchor is in viewport coordinates; adding the scroll offset yields
// coordinates in the scrolled document, so the result stays valid wherever
// the document is scrolled. The overlay is never narrower than its trigger.
func ComputePosition(anchor Rect, scroll Offset) Placement {
	minWidth := anchor.Width
	if minWidth < 0 {
		minWidth = 0
	}
	return Placement{
		Top:      anchor.Bottom() + scroll.Y,
		Left:     anchor.Left + scroll.X,
		MinWidth: minWidth,
	}
}

// Bounds returns the rect an overlay of the given size occupies at p.
func (p Placement) Bounds(width, height int) Rect {
	if width < p.MinWidth {
		width = p.MinWidth
	}
	return Rect{Top: p.Top, Left: p.Left, Width: width, Height: height}
}
