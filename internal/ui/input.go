package ui

import (
	"strings"
	"unicode"

	"github.com/atomicstack/psim-config/internal/fileprobe"
	"github.com/atomicstack/psim-config/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		return m.cancel()
	}
	if m.mode.IsOpen() {
		if handled, cmd := m.handleOverlayKey(keyMsg); handled {
			return cmd
		}
	}
	switch keyMsg.String() {
	case "esc":
		return m.cancel()
	case "ctrl+s":
		return m.emit()
	case "tab", "down":
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	case "pgdown":
		m.scrollBy(m.body.Height / 2)
		return nil
	case "pgup":
		m.scrollBy(-m.body.Height / 2)
		return nil
	}
	switch m.focus {
	case fieldScene, fieldRules:
		return m.handleFileKey(m.fileFieldFor(m.focus), keyMsg)
	case fieldTimesteps, fieldInterval:
		return m.handleNumericKey(m.numericFieldFor(m.focus), keyMsg)
	case fieldSeed:
		return m.handleSeedKey(keyMsg)
	case fieldMode:
		if isActivateKey(keyMsg) {
			return m.activateSelection()
		}
	case fieldLogging:
		if isActivateKey(keyMsg) {
			m.logging.Activate()
		}
	case fieldRun:
		if isActivateKey(keyMsg) {
			return m.emit()
		}
	}
	return nil
}

func isActivateKey(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode.Close()
		return true, nil
	case tea.KeyUp:
		m.mode.MoveHighlight(-1)
		return true, nil
	case tea.KeyDown:
		m.mode.MoveHighlight(1)
		return true, nil
	case tea.KeyEnter:
		m.mode.CommitHighlighted()
		return true, nil
	case tea.KeyBackspace:
		query := []rune(m.mode.Query())
		if len(query) > 0 {
			m.setOverlayQuery(string(query[:len(query)-1]))
		}
		return true, nil
	case tea.KeySpace:
		if m.mode.Query() == "" {
			m.mode.Close()
			return true, nil
		}
		m.setOverlayQuery(m.mode.Query() + " ")
		return true, nil
	case tea.KeyRunes:
		if msg.Alt || msg.Paste {
			return true, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return true, nil
			}
		}
		m.setOverlayQuery(m.mode.Query() + string(msg.Runes))
		return true, nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.mode.Close()
		return false, nil
	}
	return false, nil
}

func (m *Model) setOverlayQuery(query string) {
	m.mode.SetQuery(query)
	events.Select.Query(fieldMode.String(), query)
}

func (m *Model) handleFileKey(f *fileField, msg tea.KeyMsg) tea.Cmd {
	if f == nil {
		return nil
	}
	if msg.Paste {
		paths := fileprobe.SplitPaths(string(msg.Runes))
		if len(paths) == 0 {
			return nil
		}
		return m.probeCmd(f, paths[0])
	}
	switch msg.String() {
	case "ctrl+x":
		f.acceptor.Clear()
		m.errMsg = ""
		return nil
	case "enter":
		path := strings.TrimSpace(f.input.Value())
		if path == "" {
			return m.moveFocus(1)
		}
		return m.probeCmd(f, path)
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (m *Model) handleNumericKey(f *numericField, msg tea.KeyMsg) tea.Cmd {
	if f == nil {
		return nil
	}
	if msg.Type == tea.KeyEnter {
		m.applyNumeric(f)
		return m.moveFocus(1)
	}
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		m.applyNumeric(f)
	}
	return cmd
}

func (m *Model) handleSeedKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+g":
		m.generateSeed()
		return nil
	case "enter":
		return m.moveFocus(1)
	}
	var cmd tea.Cmd
	m.seed, cmd = m.seed.Update(msg)
	m.config.RandomSeed = strings.TrimSpace(m.seed.Value())
	return cmd
}

func (m *Model) scrollBy(delta int) {
	if delta == 0 {
		return
	}
	m.body.SetYOffset(m.body.YOffset + delta)
}
