package widget

// Toggle state attribute values.
const (
	StateChecked   = "checked"
	StateUnchecked = "unchecked"
)

// ToggleProps configures a Toggle.
type ToggleProps struct {
	Checked         func() bool
	DefaultChecked  bool
	OnCheckedChange func(bool)
	Disabled        bool
}

// Toggle is a binary on/off control.
type Toggle struct {
	value    *Value[bool]
	disabled bool
}

// NewToggle builds a Toggle.
func NewToggle(p ToggleProps) *Toggle {
	return &Toggle{
		value: newValue(Props[bool]{
			Value:    p.Checked,
			Default:  p.DefaultChecked,
			OnChange: p.OnCheckedChange,
		}),
		disabled: p.Disabled,
	}
}

// Activate flips the value unless the toggle is disabled.
func (t *Toggle) Activate() {
	if t.disabled {
		return
	}
	t.value.Write(!t.value.Read())
}

// Checked returns the effective value.
func (t *Toggle) Checked() bool { return t.value.Read() }

// Disabled reports whether Activate is ignored.
func (t *Toggle) Disabled() bool { return t.disabled }

// Controlled reports whether the parent owns the value.
func (t *Toggle) Controlled() bool { return t.value.Controlled() }

// State returns StateChecked or StateUnchecked.
func (t *Toggle) State() string {
	if t.value.Read() {
		return StateChecked
	}
	return StateUnchecked
}
