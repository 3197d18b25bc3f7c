package ui

import (
	"testing"

	"github.com/atomicstack/psim-config/internal/form"
	tea "github.com/charmbracelet/bubbletea"
)

func TestWindowSizeAppliesWhenUnset(t *testing.T) {
	m := NewModel(Options{Initial: form.Defaults()}, nil)
	m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	if m.width != 90 || m.height != 30 {
		t.Fatalf("expected 90x30, got %dx%d", m.width, m.height)
	}
}

func TestWindowSizeIgnoredWhenFixed(t *testing.T) {
	m := NewModel(Options{Initial: form.Defaults(), Width: 50, Height: 20}, nil)
	m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	if m.width != 50 || m.height != 20 {
		t.Fatalf("expected fixed 50x20, got %dx%d", m.width, m.height)
	}
}

func TestMouseWheelScrollsBody(t *testing.T) {
	h := newHarness(t, Options{Initial: form.Defaults(), Height: 12})
	m := h.Model()
	h.Send(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.body.YOffset != wheelStep {
		t.Fatalf("expected offset %d, got %d", wheelStep, m.body.YOffset)
	}
	h.Send(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if m.body.YOffset != 0 {
		t.Fatalf("expected offset 0, got %d", m.body.YOffset)
	}
}

func TestFocusWrapsAround(t *testing.T) {
	h := newHarness(t, Options{Initial: form.Defaults()})
	m := h.Model()
	h.Send(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != fieldRun {
		t.Fatalf("expected focus to wrap to run, got %s", m.focus)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != fieldScene {
		t.Fatalf("expected focus back on scene, got %s", m.focus)
	}
}

func TestUnknownMessageIsIgnored(t *testing.T) {
	m := NewModel(Options{Initial: form.Defaults()}, nil)
	if _, cmd := m.Update(struct{}{}); cmd != nil {
		t.Fatalf("expected no command for an unknown message")
	}
}
