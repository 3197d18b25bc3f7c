package ui

import (
	"bytes"

	"github.com/atomicstack/psim-config/internal/fileprobe"
	"github.com/atomicstack/psim-config/internal/form"
	"github.com/atomicstack/psim-config/internal/logging"
	"github.com/atomicstack/psim-config/internal/logging/events"
	"github.com/atomicstack/psim-config/internal/ui/command"
	"github.com/atomicstack/psim-config/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// placeOverlayMsg carries the deferred placement of a freshly opened
// overlay. It is delivered after the render that shows the open state.
type placeOverlayMsg struct {
	place func()
}

func placeOverlayCmd(place func()) tea.Cmd {
	if place == nil {
		return nil
	}
	return func() tea.Msg { return placeOverlayMsg{place: place} }
}

func (m *Model) handlePlaceOverlayMsg(msg tea.Msg) tea.Cmd {
	placeMsg, ok := msg.(placeOverlayMsg)
	if !ok || placeMsg.place == nil {
		return nil
	}
	placeMsg.place()
	if p, ok := m.mode.Placement(); ok {
		events.Select.Place(fieldMode.String(), p.Top, p.Left, p.MinWidth)
	}
	return nil
}

func (m *Model) activateSelection() tea.Cmd {
	if m.focus != fieldMode {
		m.setFocus(fieldMode)
	}
	return placeOverlayCmd(m.mode.ActivateTrigger())
}

type probeResultMsg struct {
	field     field
	candidate widget.Candidate
	err       error
}

func (p probeResultMsg) Failed() error { return p.err }

func (m *Model) probeCmd(f *fileField, path string) tea.Cmd {
	id := f.id
	return m.bus.Execute(command.Request{
		ID: "probe:" + id.String(),
		Handler: func() tea.Msg {
			cand, err := fileprobe.Probe(path)
			return probeResultMsg{field: id, candidate: cand, err: err}
		},
	})
}

func (m *Model) handleProbeResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(probeResultMsg)
	if !ok {
		return nil
	}
	f := m.fileFieldFor(result.field)
	if f == nil {
		return nil
	}
	if result.err != nil {
		logging.Error(result.err)
		m.errMsg = result.err.Error()
		return nil
	}
	m.errMsg = ""
	if f.acceptor.Submit(result.candidate) {
		f.input.Reset()
	}
	return nil
}

type payloadReadyMsg struct {
	data []byte
	err  error
}

func (p payloadReadyMsg) Failed() error { return p.err }

func (m *Model) emit() tea.Cmd {
	m.mode.Close()
	m.applyNumeric(m.timesteps)
	m.applyNumeric(m.interval)
	cfg := m.config
	if err := cfg.Check(); err != nil {
		events.Form.Invalid(err)
		m.errMsg = err.Error()
		return nil
	}
	format := m.format
	return m.bus.Execute(command.Request{
		ID: "emit",
		Handler: func() tea.Msg {
			var buf bytes.Buffer
			if err := form.Encode(&buf, cfg, format); err != nil {
				return payloadReadyMsg{err: err}
			}
			return payloadReadyMsg{data: buf.Bytes()}
		},
	})
}

func (m *Model) handlePayloadReadyMsg(msg tea.Msg) tea.Cmd {
	ready, ok := msg.(payloadReadyMsg)
	if !ok {
		return nil
	}
	if ready.err != nil {
		logging.Error(ready.err)
		m.errMsg = ready.err.Error()
		return nil
	}
	m.payload = ready.data
	m.teardown()
	return tea.Quit
}

func (m *Model) generateSeed() {
	seed := uuid.NewString()
	m.setSeed(seed)
	events.Form.Seed(seed)
}
