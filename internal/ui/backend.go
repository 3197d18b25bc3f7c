package ui

import (
	"github.com/atomicstack/psim-config/internal/backend"
	"github.com/atomicstack/psim-config/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if !res.Applied {
		return
	}
	events.File.Watch(m.fileFieldForKind(evt.Kind).id.String(), evt.Change.String(), evt.Err)
}

// fileStore exposes the file fields to the event dispatcher.
type fileStore struct {
	m *Model
}

func (s fileStore) AcceptedPath(kind backend.Kind) string {
	if file := s.m.fileFieldForKind(kind).acceptor.File(); file != nil {
		return file.Handle
	}
	return ""
}

func (s fileStore) SetWarning(kind backend.Kind, warning string) {
	s.m.fileFieldForKind(kind).warning = warning
}

func (m *Model) fileFieldForKind(kind backend.Kind) *fileField {
	if kind == backend.KindRules {
		return m.rules
	}
	return m.scene
}
