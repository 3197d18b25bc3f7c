package widget

import "testing"

func TestToggleUncontrolledFlips(t *testing.T) {
	tg := NewToggle(ToggleProps{DefaultChecked: false})
	tg.Activate()
	if got := tg.State(); got != StateChecked {
		t.Fatalf("expected %q after first activate, got %q", StateChecked, got)
	}
	tg.Activate()
	if got := tg.State(); got != StateUnchecked {
		t.Fatalf("expected %q after second activate, got %q", StateUnchecked, got)
	}
}

func TestToggleDisabledIsNoOp(t *testing.T) {
	calls := 0
	tg := NewToggle(ToggleProps{DefaultChecked: true, Disabled: true, OnCheckedChange: func(bool) { calls++ }})
	tg.Activate()
	if !tg.Checked() {
		t.Fatalf("expected value unchanged when disabled")
	}
	if calls != 0 {
		t.Fatalf("expected no notification when disabled, got %d", calls)
	}
}

func TestToggleControlledReportsRequestedValue(t *testing.T) {
	owner := false
	var requested []bool
	tg := NewToggle(ToggleProps{
		Checked:         func() bool { return owner },
		OnCheckedChange: func(v bool) { requested = append(requested, v) },
	})
	tg.Activate()
	if tg.Checked() {
		t.Fatalf("expected controlled toggle to keep the owner's value")
	}
	if len(requested) != 1 || !requested[0] {
		t.Fatalf("expected request for true, got %v", requested)
	}
	owner = requested[0]
	if tg.State() != StateChecked {
		t.Fatalf("expected checked once the owner stores the value")
	}
	tg.Activate()
	if len(requested) != 2 || requested[1] {
		t.Fatalf("expected second request for false, got %v", requested)
	}
}
