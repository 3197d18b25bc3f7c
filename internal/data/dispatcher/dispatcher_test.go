package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/psim-config/internal/backend"
)

type memStore struct {
	paths    map[backend.Kind]string
	warnings map[backend.Kind]string
}

func newMemStore() *memStore {
	return &memStore{paths: map[backend.Kind]string{}, warnings: map[backend.Kind]string{}}
}

func (s *memStore) AcceptedPath(kind backend.Kind) string { return s.paths[kind] }

func (s *memStore) SetWarning(kind backend.Kind, warning string) { s.warnings[kind] = warning }

func event(kind backend.Kind, change backend.Change, path string) backend.Event {
	return backend.Event{Kind: kind, Change: change, Snapshot: backend.Snapshot{Path: path}}
}

func TestHandleIgnoresStalePaths(t *testing.T) {
	store := newMemStore()
	store.paths[backend.KindScene] = "/data/scene.xml"
	d := New(store)

	res := d.Handle(event(backend.KindScene, backend.ChangeMissing, "/data/old.xml"))
	if res.Applied {
		t.Fatalf("expected stale event ignored")
	}
	if res := d.Handle(event(backend.KindRules, backend.ChangeMissing, "/data/rules.xml")); res.Applied {
		t.Fatalf("expected event for an empty slot ignored")
	}
	if len(store.warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", store.warnings)
	}
}

func TestHandleSetsAndClearsWarnings(t *testing.T) {
	store := newMemStore()
	store.paths[backend.KindRules] = "/data/rules.xml"
	d := New(store)

	d.Handle(event(backend.KindRules, backend.ChangeMissing, "/data/rules.xml"))
	if got := store.warnings[backend.KindRules]; got != "rules.xml no longer exists" {
		t.Fatalf("expected missing warning, got %q", got)
	}
	d.Handle(event(backend.KindRules, backend.ChangeModified, "/data/rules.xml"))
	if got := store.warnings[backend.KindRules]; got != "rules.xml changed on disk" {
		t.Fatalf("expected modified warning, got %q", got)
	}
	res := d.Handle(event(backend.KindRules, backend.ChangeRestored, "/data/rules.xml"))
	if !res.Applied || res.Warning != "" || store.warnings[backend.KindRules] != "" {
		t.Fatalf("expected warning cleared, got %#v / %q", res, store.warnings[backend.KindRules])
	}
}

func TestHandleReportsErrors(t *testing.T) {
	store := newMemStore()
	store.paths[backend.KindScene] = "/data/scene.xml"
	evt := event(backend.KindScene, backend.ChangeModified, "/data/scene.xml")
	evt.Err = errors.New("permission denied")

	res := New(store).Handle(evt)
	if res.Warning != "scene.xml: permission denied" {
		t.Fatalf("expected error warning, got %q", res.Warning)
	}
}

func TestHandleWarnsWhenBaselineIsMissing(t *testing.T) {
	store := newMemStore()
	store.paths[backend.KindScene] = "/data/scene.xml"
	evt := event(backend.KindScene, backend.ChangeBaseline, "/data/scene.xml")
	evt.Snapshot.Missing = true

	res := New(store).Handle(evt)
	if !res.Applied || store.warnings[backend.KindScene] != "scene.xml no longer exists" {
		t.Fatalf("expected missing warning for a missing first snapshot, got %q", store.warnings[backend.KindScene])
	}
}
