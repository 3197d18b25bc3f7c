package ui

import (
	"strings"

	"github.com/atomicstack/psim-config/internal/layout"
	"github.com/atomicstack/psim-config/internal/theme"
	"github.com/atomicstack/psim-config/internal/widget"
	"github.com/charmbracelet/x/ansi"
)

// renderOverlay draws the open option list at p and composites it over the
// content lines, growing them when the list reaches past the last line.
func (m *Model) renderOverlay(lines []string, p layout.Placement, width int) []string {
	options := m.mode.Options()
	highlight := m.mode.Highlighted()
	query := m.mode.Query()

	inner := p.MinWidth - 2
	for _, opt := range options {
		if w := ansi.StringWidth(opt.Label) + 2; w > inner {
			inner = w
		}
	}
	if limit := width - p.Left - 2; inner > limit {
		inner = limit
	}
	if inner < 1 {
		inner = 1
	}

	rows := make([]string, 0, len(options)+1)
	first := 1
	if query != "" {
		rows = append(rows, theme.Render(styles.OverlayMark, padRight(clip("/"+query, inner), inner)))
		first++
	}
	items := make([]layout.Rect, 0, len(options))
	for i, opt := range options {
		item := widget.NewItem(m.mode, opt)
		mark := "  "
		if item.Selected() {
			mark = "✓ "
		}
		text := padRight(clip(mark+opt.Label, inner), inner)
		style := styles.OverlayItem
		if i == highlight {
			style = styles.Highlighted
		}
		rows = append(rows, theme.Render(style, text))
		items = append(items, layout.Rect{Top: p.Top + first + i, Left: p.Left + 1, Width: inner, Height: 1})
	}

	box := strings.Join(rows, "\n")
	if styles.Overlay != nil {
		box = styles.Overlay.Width(inner).Render(box)
	}
	boxLines := strings.Split(box, "\n")
	boxWidth := 0
	for _, line := range boxLines {
		if w := ansi.StringWidth(line); w > boxWidth {
			boxWidth = w
		}
	}

	for i, line := range boxLines {
		row := p.Top + i
		for row >= len(lines) {
			lines = append(lines, "")
		}
		lines[row] = overlayLine(lines[row], line, p.Left, boxWidth)
	}

	m.overlay = overlayLayout{
		shown: true,
		rect:  layout.Rect{Top: p.Top, Left: p.Left, Width: boxWidth, Height: len(boxLines)},
		items: items,
	}
	return lines
}

func overlayLine(base, fg string, x, fgWidth int) string {
	base = padRight(base, x+fgWidth)
	left := ansi.Cut(base, 0, x)
	right := ansi.Cut(base, x+fgWidth, ansi.StringWidth(base))
	return left + padRight(fg, fgWidth) + right
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
