package widget

type ownership int

const (
	ownedBySelf ownership = iota
	ownedByParent
)

// Value is a value owned either by the control or by its parent.
type Value[T any] struct {
	owner    ownership
	held     T
	source   func() T
	onChange func(T)
}

// Uncontrolled returns a self-owned value starting at initial.
func Uncontrolled[T any](initial T, onChange func(T)) *Value[T] {
	return &Value[T]{owner: ownedBySelf, held: initial, onChange: onChange}
}

// Controlled returns a value read from source on every access. A nil source
// reads as the zero value.
func Controlled[T any](source func() T, onChange func(T)) *Value[T] {
	if source == nil {
		source = func() T {
			var zero T
			return zero
		}
	}
	return &Value[T]{owner: ownedByParent, source: source, onChange: onChange}
}

// Props is the parent-facing ownership contract shared by the controls.
// A non-nil Value selects controlled mode and Default is then ignored.
type Props[T any] struct {
	Value    func() T
	Default  T
	OnChange func(T)
}

func newValue[T any](p Props[T]) *Value[T] {
	if p.Value != nil {
		return Controlled(p.Value, p.OnChange)
	}
	return Uncontrolled(p.Default, p.OnChange)
}

// Controlled reports whether the parent owns the value.
func (v *Value[T]) Controlled() bool {
	return v.owner == ownedByParent
}

// Read returns the effective value.
func (v *Value[T]) Read() T {
	if v.owner == ownedByParent {
		return v.source()
	}
	return v.held
}

// Write stores next when self-owned and always notifies the change sink
// exactly once.
func (v *Value[T]) Write(next T) {
	if v.owner == ownedBySelf {
		v.held = next
	}
	if v.onChange != nil {
		v.onChange(next)
	}
}
