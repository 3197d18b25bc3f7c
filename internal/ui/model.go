package ui

import (
	"reflect"

	"github.com/atomicstack/psim-config/internal/backend"
	"github.com/atomicstack/psim-config/internal/data/dispatcher"
	"github.com/atomicstack/psim-config/internal/form"
	"github.com/atomicstack/psim-config/internal/layout"
	"github.com/atomicstack/psim-config/internal/logging/events"
	"github.com/atomicstack/psim-config/internal/pointer"
	"github.com/atomicstack/psim-config/internal/theme"
	"github.com/atomicstack/psim-config/internal/ui/command"
	"github.com/atomicstack/psim-config/internal/widget"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth    = 72
	modePlaceholder = "Select the derivation mode"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Initial    form.SimulatorConfig
	Format     form.Format
}

// Model implements the Bubble Tea model for the simulator configuration form.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	config form.SimulatorConfig
	format form.Format

	focus     field
	doc       *pointer.Document
	scene     *fileField
	rules     *fileField
	mode      *widget.Selection
	logging   *widget.Toggle
	timesteps *numericField
	interval  *numericField
	seed      textinput.Model

	body    viewport.Model
	regions []region
	rects   map[field]layout.Rect
	overlay overlayLayout

	backend    *backend.Watcher
	dispatcher *dispatcher.Dispatcher

	errMsg  string
	infoMsg string
	payload []byte
	done    bool

	bus      *command.Bus
	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the form from opts. watcher may be nil.
func NewModel(opts Options, watcher *backend.Watcher) *Model {
	m := &Model{
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		config:     opts.Initial,
		format:     opts.Format,
		doc:        pointer.NewDocument(),
		backend:    watcher,
		bus:        command.New(),
		rects:      map[field]layout.Rect{},
		body:       viewport.New(0, 0),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	m.dispatcher = dispatcher.New(fileStore{m: m})
	m.scene = newFileField(fieldScene, backend.KindScene, "Scene File", "Select the XML file containing your simulation scene")
	m.rules = newFileField(fieldRules, backend.KindRules, "Rule File", "Select the XML file containing your simulation rules")
	for _, f := range []*fileField{m.scene, m.rules} {
		f.acceptor = m.newAcceptor(f)
	}

	options := make([]widget.Option, 0, len(form.DerivationModes))
	for _, mode := range form.DerivationModes {
		options = append(options, widget.Option{Value: string(mode), Label: mode.Label()})
	}
	m.mode = widget.NewSelection(widget.SelectionProps{
		Options:     options,
		Placeholder: modePlaceholder,
		Value:       func() string { return string(m.config.DerivationMode) },
		OnValueChange: func(value string) {
			m.config.DerivationMode = form.DerivationMode(value)
			events.Select.Commit(fieldMode.String(), value)
		},
		Document: m.doc,
		Boundary: pointer.RegionFunc(m.overlayContains),
		Anchor:   m.triggerAnchor,
		Scroll:   func() layout.Offset { return layout.Offset{Y: m.body.YOffset} },
		OnOpenChange: func(state widget.OpenState) {
			if state == widget.Open {
				events.Select.Open(fieldMode.String())
				return
			}
			events.Select.Close(fieldMode.String())
		},
	})
	m.logging = widget.NewToggle(widget.ToggleProps{
		Checked: func() bool { return m.config.EnableLogging },
		OnCheckedChange: func(checked bool) {
			m.config.EnableLogging = checked
			events.Toggle.Change(fieldLogging.String(), checked)
		},
	})
	m.timesteps = newNumericField(fieldTimesteps, "Computation Steps", form.TimestepsField, m.config.Timesteps)
	m.interval = newNumericField(fieldInterval, "Update Interval (ms)", form.UpdateIntervalField, m.config.UpdateInterval)
	m.seed = newInput("leave empty for a random run, ctrl+g generates one")
	m.seed.CharLimit = 64
	m.seed.SetValue(m.config.RandomSeed)

	m.setFocus(fieldScene)
	m.registerHandlers()
	return m
}

func (m *Model) newAcceptor(f *fileField) *widget.FileAcceptor {
	id := f.id.String()
	return widget.NewFileAcceptor(widget.FileAcceptorProps{
		Picker: f,
		OnSelect: func(file *widget.AcceptedFile) {
			path := ""
			if file != nil {
				path = file.Handle
				events.File.Accept(id, file.Name, file.MimeType)
				m.setInfo("Accepted " + file.Name)
			} else {
				events.File.Clear(id)
			}
			f.warning = ""
			m.setFilePath(f, path)
			if m.backend != nil {
				m.backend.Track(f.kind, path)
			}
		},
		OnReject: func(r widget.Rejection) {
			events.File.Reject(id, r.Candidate.Name, r.Candidate.MimeType)
			m.errMsg = r.Notice
		},
	})
}

func (m *Model) setFilePath(f *fileField, path string) {
	switch f.id {
	case fieldScene:
		m.config.Scene = path
	case fieldRules:
		m.config.Rules = path
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	for _, f := range []*fileField{m.scene, m.rules} {
		if path := m.initialPath(f); path != "" {
			cmds = append(cmds, m.probeCmd(f, path))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) initialPath(f *fileField) string {
	if f.id == fieldScene {
		return m.config.Scene
	}
	return m.config.Rules
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(placeOverlayMsg{}):   m.handlePlaceOverlayMsg,
		reflect.TypeOf(probeResultMsg{}):    m.handleProbeResultMsg,
		reflect.TypeOf(payloadReadyMsg{}):   m.handlePayloadReadyMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	return nil
}

// Config returns the configuration as currently entered.
func (m *Model) Config() form.SimulatorConfig {
	return m.config
}

// Payload returns the encoded configuration once the user has run it.
func (m *Model) Payload() ([]byte, bool) {
	return m.payload, m.payload != nil
}

// Done reports whether the form has finished, by running or cancelling.
func (m *Model) Done() bool {
	return m.done
}

func (m *Model) setInfo(text string) {
	if m.verbose {
		m.infoMsg = text
	}
}

func (m *Model) contentWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m *Model) setFocus(f field) tea.Cmd {
	if f < 0 || f >= fieldCount {
		return nil
	}
	prev := m.focus
	if prev != f {
		m.leaveField(prev)
	}
	m.focus = f
	for _, in := range m.textInputs() {
		in.Blur()
	}
	events.Form.Focus(f.String())
	m.ensureVisible(f)
	if in := m.inputFor(f); in != nil {
		return in.Focus()
	}
	return nil
}

func (m *Model) leaveField(f field) {
	switch f {
	case fieldMode:
		m.mode.Close()
	case fieldTimesteps:
		m.timesteps.normalize(m.config.Timesteps)
	case fieldInterval:
		m.interval.normalize(m.config.UpdateInterval)
	}
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	next := (int(m.focus) + delta + int(fieldCount)) % int(fieldCount)
	return m.setFocus(field(next))
}

func (m *Model) textInputs() []*textinput.Model {
	return []*textinput.Model{&m.scene.input, &m.rules.input, &m.timesteps.input, &m.interval.input, &m.seed}
}

func (m *Model) inputFor(f field) *textinput.Model {
	switch f {
	case fieldScene:
		return &m.scene.input
	case fieldRules:
		return &m.rules.input
	case fieldTimesteps:
		return &m.timesteps.input
	case fieldInterval:
		return &m.interval.input
	case fieldSeed:
		return &m.seed
	default:
		return nil
	}
}

func (m *Model) fileFieldFor(f field) *fileField {
	switch f {
	case fieldScene:
		return m.scene
	case fieldRules:
		return m.rules
	default:
		return nil
	}
}

func (m *Model) numericFieldFor(f field) *numericField {
	switch f {
	case fieldTimesteps:
		return m.timesteps
	case fieldInterval:
		return m.interval
	default:
		return nil
	}
}

// applyNumeric coerces the field text into the configuration.
func (m *Model) applyNumeric(f *numericField) {
	text := f.input.Value()
	value := f.bound.Coerce(text)
	switch f.id {
	case fieldTimesteps:
		m.config.Timesteps = value
	case fieldInterval:
		m.config.UpdateInterval = value
	}
	events.Form.Coerce(f.id.String(), text, value)
}

func (m *Model) setSeed(seed string) {
	m.seed.SetValue(seed)
	m.seed.CursorEnd()
	m.config.RandomSeed = seed
}

func (m *Model) teardown() {
	m.mode.Destroy()
	m.done = true
}

func (m *Model) cancel() tea.Cmd {
	m.teardown()
	return tea.Quit
}
