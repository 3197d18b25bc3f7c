// Package dispatcher resolves file watcher events into the status shown for
// each accepted input file.
package dispatcher

import (
	"fmt"
	"path/filepath"

	"github.com/atomicstack/psim-config/internal/backend"
)

// Store holds the accepted file and its warning for each watched kind.
type Store interface {
	AcceptedPath(kind backend.Kind) string
	SetWarning(kind backend.Kind, warning string)
}

// Result reports what Handle did with an event.
type Result struct {
	Applied bool
	Kind    backend.Kind
	Warning string
}

type Dispatcher struct {
	store Store
}

func New(store Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// Handle applies evt to the store. Events for a path other than the
// currently accepted file are stale and ignored.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	res := Result{Kind: evt.Kind}
	accepted := d.store.AcceptedPath(evt.Kind)
	if accepted == "" || accepted != evt.Snapshot.Path {
		return res
	}
	name := filepath.Base(evt.Snapshot.Path)
	switch {
	case evt.Err != nil:
		res.Warning = fmt.Sprintf("%s: %v", name, evt.Err)
	case evt.Change == backend.ChangeMissing, evt.Snapshot.Missing:
		res.Warning = fmt.Sprintf("%s no longer exists", name)
	case evt.Change == backend.ChangeModified:
		res.Warning = fmt.Sprintf("%s changed on disk", name)
	}
	d.store.SetWarning(evt.Kind, res.Warning)
	res.Applied = true
	return res
}
