package widget

import "testing"

func TestUncontrolledWriteThenRead(t *testing.T) {
	var seen []int
	v := Uncontrolled(3, func(n int) { seen = append(seen, n) })
	if v.Controlled() {
		t.Fatalf("expected uncontrolled value")
	}
	v.Write(7)
	if got := v.Read(); got != 7 {
		t.Fatalf("expected 7 after write, got %d", got)
	}
	if len(seen) != 1 || seen[0] != 7 {
		t.Fatalf("expected one notification with 7, got %v", seen)
	}
}

func TestControlledReadIgnoresWrites(t *testing.T) {
	external := "minpar"
	calls := 0
	v := Controlled(func() string { return external }, func(string) { calls++ })
	v.Write("maxpar")
	if got := v.Read(); got != "minpar" {
		t.Fatalf("expected external value to stay authoritative, got %q", got)
	}
	if calls != 1 {
		t.Fatalf("expected one notification, got %d", calls)
	}
	external = "maxpar"
	if got := v.Read(); got != "maxpar" {
		t.Fatalf("expected re-supplied value, got %q", got)
	}
}

func TestWriteNotifiesOncePerCallEvenWhenUnchanged(t *testing.T) {
	calls := 0
	v := Uncontrolled(true, func(bool) { calls++ })
	v.Write(true)
	v.Write(true)
	if calls != 2 {
		t.Fatalf("expected two notifications, got %d", calls)
	}
}

func TestNilCallbacksAreAllowed(t *testing.T) {
	v := Uncontrolled("", nil)
	v.Write("x")
	if v.Read() != "x" {
		t.Fatalf("expected write without sink to store value")
	}
	c := Controlled[int](nil, nil)
	c.Write(4)
	if c.Read() != 0 {
		t.Fatalf("expected nil source to read zero, got %d", c.Read())
	}
}

func TestPropsSelectModeOnce(t *testing.T) {
	external := 10
	v := newValue(Props[int]{Value: func() int { return external }, Default: 99})
	if !v.Controlled() {
		t.Fatalf("expected controlled mode when a source is supplied")
	}
	if v.Read() != 10 {
		t.Fatalf("expected default ignored in controlled mode, got %d", v.Read())
	}

	u := newValue(Props[int]{Default: 5})
	if u.Controlled() {
		t.Fatalf("expected uncontrolled mode without a source")
	}
	if u.Read() != 5 {
		t.Fatalf("expected default as initial value, got %d", u.Read())
	}
	if z := newValue(Props[string]{}); z.Read() != "" {
		t.Fatalf("expected empty initial value, got %q", z.Read())
	}
}
