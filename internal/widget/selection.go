package widget

import (
	"strings"

	"github.com/atomicstack/psim-config/internal/layout"
	"github.com/atomicstack/psim-config/internal/pointer"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// OpenState is the overlay state of a Selection.
type OpenState int

const (
	Closed OpenState = iota
	Open
)

func (s OpenState) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Option is one choice offered by a Selection.
type Option struct {
	Value string
	Label string
}

// SelectionProps configures a Selection. Value, Default and OnValueChange
// follow the Props ownership contract.
type SelectionProps struct {
	Options       []Option
	Value         func() string
	Default       string
	OnValueChange func(string)
	Placeholder   string
	Disabled      bool

	// Document receives pointer activations; while the overlay is open a
	// listener bounded by Boundary closes it on outside activation.
	Document *pointer.Document
	Boundary pointer.Region

	// Anchor returns the trigger bounds in viewport coordinates and Scroll
	// the current scroll offset. Both are sampled when the overlay is placed.
	Anchor func() layout.Rect
	Scroll func() layout.Offset

	OnOpenChange func(OpenState)
}

// Selection is a single-choice dropdown.
type Selection struct {
	value        *Value[string]
	options      []Option
	placeholder  string
	disabled     bool
	doc          *pointer.Document
	boundary     pointer.Region
	anchor       func() layout.Rect
	scroll       func() layout.Offset
	onOpenChange func(OpenState)

	state      OpenState
	generation uint64
	detach     func()
	placement  layout.Placement
	placed     bool

	query     string
	visible   []Option
	highlight int
}

// NewSelection builds a closed Selection.
func NewSelection(p SelectionProps) *Selection {
	s := &Selection{
		value: newValue(Props[string]{
			Value:    p.Value,
			Default:  p.Default,
			OnChange: p.OnValueChange,
		}),
		options:      cloneOptions(p.Options),
		placeholder:  p.Placeholder,
		disabled:     p.Disabled,
		doc:          p.Document,
		boundary:     p.Boundary,
		anchor:       p.Anchor,
		scroll:       p.Scroll,
		onOpenChange: p.OnOpenChange,
	}
	s.visible = cloneOptions(s.options)
	return s
}

// State returns the overlay state.
func (s *Selection) State() OpenState { return s.state }

// IsOpen reports whether the overlay is open.
func (s *Selection) IsOpen() bool { return s.state == Open }

// Disabled reports whether activation is ignored.
func (s *Selection) Disabled() bool { return s.disabled }

// Controlled reports whether the parent owns the selected value.
func (s *Selection) Controlled() bool { return s.value.Controlled() }

// Value returns the effective selected value.
func (s *Selection) Value() string { return s.value.Read() }

// Placeholder returns the text shown while nothing is selected.
func (s *Selection) Placeholder() string { return s.placeholder }

// ActivateTrigger toggles the overlay. When the overlay opens, the returned
// function places it; call it once the open layout has been rendered so the
// anchor reflects that layout. It returns nil when nothing needs placing.
func (s *Selection) ActivateTrigger() (place func()) {
	if s.disabled {
		return nil
	}
	if s.state == Open {
		s.Close()
		return nil
	}
	return s.open()
}

func (s *Selection) open() func() {
	s.state = Open
	s.generation++
	gen := s.generation
	s.placed = false
	s.query = ""
	s.visible = cloneOptions(s.options)
	s.highlight = s.selectedIndex()
	if s.doc != nil {
		s.detach = s.doc.Attach(s.boundary, s.Close)
	}
	s.notify()
	return func() { s.place(gen) }
}

func (s *Selection) place(gen uint64) {
	if s.state != Open || gen != s.generation {
		return
	}
	var anchor layout.Rect
	if s.anchor != nil {
		anchor = s.anchor()
	}
	var scroll layout.Offset
	if s.scroll != nil {
		scroll = s.scroll()
	}
	s.placement = layout.ComputePosition(anchor, scroll)
	s.placed = true
}

// Placement returns the overlay position once it has been placed for the
// current open.
func (s *Selection) Placement() (layout.Placement, bool) {
	if s.state != Open || !s.placed {
		return layout.Placement{}, false
	}
	return s.placement, true
}

// Close closes the overlay and releases its outside-interaction listener.
func (s *Selection) Close() {
	if s.state == Closed {
		return
	}
	s.state = Closed
	s.release()
	s.placed = false
	s.placement = layout.Placement{}
	s.query = ""
	s.visible = cloneOptions(s.options)
	s.notify()
}

// Destroy tears the selection down; it is safe to call more than once.
func (s *Selection) Destroy() {
	s.Close()
	s.release()
}

func (s *Selection) release() {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
}

func (s *Selection) notify() {
	if s.onOpenChange != nil {
		s.onOpenChange(s.state)
	}
}

// SelectOption commits opt and closes the overlay, even when opt is already
// selected.
func (s *Selection) SelectOption(opt Option) {
	s.value.Write(opt.Value)
	s.Close()
}

// IsSelected reports whether opt holds the effective value.
func (s *Selection) IsSelected(opt Option) bool {
	return opt.Value == s.value.Read()
}

// Display returns the trigger text and whether it is the placeholder.
func (s *Selection) Display() (string, bool) {
	current := s.value.Read()
	if current == "" {
		return s.placeholder, true
	}
	for _, opt := range s.options {
		if opt.Value == current {
			return opt.Label, false
		}
	}
	return current, false
}

// Options returns the options currently shown in the overlay.
func (s *Selection) Options() []Option {
	return cloneOptions(s.visible)
}

// Query returns the type-ahead filter.
func (s *Selection) Query() string { return s.query }

// SetQuery filters the shown options. It is ignored while closed.
func (s *Selection) SetQuery(query string) {
	if s.state != Open {
		return
	}
	s.query = query
	s.visible = filterOptions(s.options, query)
	if strings.TrimSpace(query) == "" {
		s.highlight = s.selectedIndex()
		return
	}
	s.highlight = 0
}

// Highlighted returns the index of the highlighted option, or -1.
func (s *Selection) Highlighted() int {
	if len(s.visible) == 0 {
		return -1
	}
	return s.highlight
}

// MoveHighlight moves the highlight by delta, clamped to the shown options.
func (s *Selection) MoveHighlight(delta int) bool {
	if s.state != Open || len(s.visible) == 0 {
		return false
	}
	old := s.highlight
	s.highlight += delta
	if s.highlight < 0 {
		s.highlight = 0
	}
	if s.highlight >= len(s.visible) {
		s.highlight = len(s.visible) - 1
	}
	return s.highlight != old
}

// CommitHighlighted selects the highlighted option. It reports false when
// the overlay is closed or shows nothing.
func (s *Selection) CommitHighlighted() bool {
	if s.state != Open || len(s.visible) == 0 {
		return false
	}
	s.SelectOption(s.visible[s.highlight])
	return true
}

func (s *Selection) selectedIndex() int {
	current := s.value.Read()
	for i, opt := range s.visible {
		if opt.Value == current {
			return i
		}
	}
	return 0
}

func filterOptions(options []Option, query string) []Option {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return cloneOptions(options)
	}
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	matches := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		matches[rank.OriginalIndex] = struct{}{}
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Option, 0, len(options))
	for i, opt := range options {
		if _, ok := matches[i]; ok || strings.Contains(strings.ToLower(opt.Value), lower) {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}

func cloneOptions(options []Option) []Option {
	dup := make([]Option, len(options))
	copy(dup, options)
	return dup
}

// Trigger is the control that opens and closes a Selection overlay.
type Trigger struct {
	sel *Selection
}

// NewTrigger binds a trigger to sel. It panics when sel is nil.
func NewTrigger(sel *Selection) Trigger {
	mustSelection("trigger", sel)
	return Trigger{sel: sel}
}

// Activate toggles the overlay; see Selection.ActivateTrigger.
func (t Trigger) Activate() func() { return t.sel.ActivateTrigger() }

// Text returns the trigger text and whether it is the placeholder.
func (t Trigger) Text() (string, bool) { return t.sel.Display() }

// Expanded reports whether the overlay is open.
func (t Trigger) Expanded() bool { return t.sel.IsOpen() }

// Item is one row of an open Selection overlay.
type Item struct {
	sel *Selection
	opt Option
}

// NewItem binds opt to sel. It panics when sel is nil.
func NewItem(sel *Selection, opt Option) Item {
	mustSelection("item", sel)
	return Item{sel: sel, opt: opt}
}

// Option returns the option the item renders.
func (i Item) Option() Option { return i.opt }

// Selected reports whether the item holds the selection's value.
func (i Item) Selected() bool { return i.sel.IsSelected(i.opt) }

// Commit selects the item and closes the overlay.
func (i Item) Commit() { i.sel.SelectOption(i.opt) }
