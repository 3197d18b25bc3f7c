package ui

import (
	"github.com/atomicstack/psim-config/internal/layout"
	"github.com/atomicstack/psim-config/internal/logging/events"
	"github.com/atomicstack/psim-config/internal/pointer"
	"github.com/atomicstack/psim-config/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
)

const wheelStep = 3

type hitTarget int

const (
	targetNone hitTarget = iota
	targetField
	targetTrigger
	targetOption
	targetOverlay
)

func (t hitTarget) String() string {
	switch t {
	case targetField:
		return "field"
	case targetTrigger:
		return "trigger"
	case targetOption:
		return "option"
	case targetOverlay:
		return "overlay"
	default:
		return "none"
	}
}

// region is a clickable area recorded while rendering, in content
// coordinates.
type region struct {
	rect   layout.Rect
	field  field
	target hitTarget
}

// overlayLayout records where the open overlay was drawn.
type overlayLayout struct {
	shown bool
	rect  layout.Rect
	items []layout.Rect
}

type hit struct {
	target hitTarget
	field  field
	option int
}

func (m *Model) overlayContains(p layout.Point) bool {
	return m.overlay.shown && m.overlay.rect.Contains(p)
}

// triggerAnchor returns the trigger bounds in viewport coordinates.
func (m *Model) triggerAnchor() layout.Rect {
	return m.rects[fieldMode].Translate(0, -m.body.YOffset)
}

// contentPoint maps a screen cell to content coordinates. Cells outside the
// scrolling body map to a point no region contains.
func (m *Model) contentPoint(x, y int) layout.Point {
	if y < 0 || (m.body.Height > 0 && y >= m.body.Height) {
		return layout.Point{X: -1, Y: -1}
	}
	return layout.Point{X: x, Y: y + m.body.YOffset}
}

func (m *Model) hitTest(p layout.Point) hit {
	if m.overlayContains(p) {
		for i, rect := range m.overlay.items {
			if rect.Contains(p) {
				return hit{target: targetOption, option: i}
			}
		}
		return hit{target: targetOverlay}
	}
	for _, r := range m.regions {
		if r.rect.Contains(p) {
			return hit{target: r.target, field: r.field}
		}
	}
	return hit{target: targetNone}
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch mouse.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
		return nil
	}
	p := m.contentPoint(mouse.X, mouse.Y)
	switch mouse.Action {
	case tea.MouseActionPress:
		if mouse.Button != tea.MouseButtonLeft {
			return nil
		}
		return m.press(p)
	case tea.MouseActionMotion:
		if mouse.Button == tea.MouseButtonLeft {
			m.dragOver(p)
		}
	case tea.MouseActionRelease:
		m.dragOver(layout.Point{X: -1, Y: -1})
	}
	return nil
}

// press routes a primary activation. The trigger consumes its own presses;
// everything else is seen by the document first so an open overlay can
// close on outside activation.
func (m *Model) press(p layout.Point) tea.Cmd {
	target := m.hitTest(p)
	events.Pointer.Press(p.X, p.Y, target.target.String())
	if target.target == targetTrigger {
		return m.activateSelection()
	}
	if fired := m.doc.Dispatch(pointer.Event{Point: p}); fired > 0 {
		events.Pointer.Outside(fired)
	}
	switch target.target {
	case targetOption:
		options := m.mode.Options()
		if m.mode.IsOpen() && target.option < len(options) {
			widget.NewItem(m.mode, options[target.option]).Commit()
		}
	case targetField:
		cmd := m.setFocus(target.field)
		switch target.field {
		case fieldLogging:
			m.logging.Activate()
		case fieldRun:
			return m.emit()
		}
		return cmd
	}
	return nil
}

func (m *Model) dragOver(p layout.Point) {
	target := m.hitTest(p)
	for _, f := range []*fileField{m.scene, m.rules} {
		over := target.target == targetField && target.field == f.id
		if over == f.acceptor.DragOver() {
			continue
		}
		if over {
			f.acceptor.DragEnter()
		} else {
			f.acceptor.DragLeave()
		}
		events.File.Drag(f.id.String(), over)
	}
}
