package ui

import (
	"strconv"

	"github.com/atomicstack/psim-config/internal/backend"
	"github.com/atomicstack/psim-config/internal/form"
	"github.com/atomicstack/psim-config/internal/widget"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
)

// field identifies a focusable control. The constant order is the focus order.
type field int

const (
	fieldScene field = iota
	fieldRules
	fieldMode
	fieldTimesteps
	fieldInterval
	fieldLogging
	fieldSeed
	fieldRun
	fieldCount
)

var fieldNames = [...]string{
	fieldScene:     "scene",
	fieldRules:     "rules",
	fieldMode:      "derivationMode",
	fieldTimesteps: "timesteps",
	fieldInterval:  "updateInterval",
	fieldLogging:   "enableLogging",
	fieldSeed:      "randomSeed",
	fieldRun:       "run",
}

func (f field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

func (f field) isText() bool {
	switch f {
	case fieldScene, fieldRules, fieldTimesteps, fieldInterval, fieldSeed:
		return true
	default:
		return false
	}
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = placeholder
	ti.Cursor.SetMode(cursor.CursorStatic)
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	if styles.Placeholder != nil {
		ti.PlaceholderStyle = *styles.Placeholder
	}
	return ti
}

// fileField is a file card: a FileAcceptor plus the path input used to pick
// a file by typing or pasting. The input doubles as the acceptor's picker.
type fileField struct {
	id          field
	kind        backend.Kind
	title       string
	description string
	acceptor    *widget.FileAcceptor
	input       textinput.Model
	warning     string
}

// Reset clears the path input.
func (f *fileField) Reset() {
	f.input.Reset()
}

func newFileField(id field, kind backend.Kind, title, description string) *fileField {
	return &fileField{
		id:          id,
		kind:        kind,
		title:       title,
		description: description,
		input:       newInput("path to an .xml file"),
	}
}

// numericField is a bounded integer input. The text is free-form while
// focused; the coerced value is written to the configuration on every edit.
type numericField struct {
	id    field
	label string
	bound form.IntField
	input textinput.Model
}

func newNumericField(id field, label string, bound form.IntField, value int) *numericField {
	ti := newInput(strconv.Itoa(bound.Min))
	ti.CharLimit = 12
	ti.SetValue(strconv.Itoa(value))
	return &numericField{id: id, label: label, bound: bound, input: ti}
}

// normalize replaces the typed text with the value it was coerced to.
func (f *numericField) normalize(value int) {
	f.input.SetValue(strconv.Itoa(value))
	f.input.CursorEnd()
}
