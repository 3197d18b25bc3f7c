// Package pointer delivers pointer activations to listeners that watch for
// interaction outside a region, such as an open dropdown overlay.
package pointer

import (
	"sync"

	"github.com/atomicstack/psim-config/internal/layout"
)

// Region is the boundary a listener monitors. It is consulted when each
// event arrives, so a region may follow a panel that moves or resizes.
type Region interface {
	Contains(p layout.Point) bool
}

// RegionFunc adapts a function to Region.
type RegionFunc func(p layout.Point) bool

// Contains implements Region.
func (f RegionFunc) Contains(p layout.Point) bool {
	if f == nil {
		return false
	}
	return f(p)
}

// Event is a pointer activation at a document position.
type Event struct {
	Point layout.Point
}

type listener struct {
	id        uint64
	region    Region
	onOutside func()
	armedAt   uint64
}

// Document is the shared source of pointer activations. Each attached
// listener inspects only its own region.
type Document struct {
	mu        sync.Mutex
	seq       uint64
	nextID    uint64
	listeners []*listener
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Attach registers onOutside to run for every later event outside region.
// The returned detach function is idempotent. A listener attached while an
// event is being dispatched does not observe that event.
func (d *Document) Attach(region Region, onOutside func()) (detach func()) {
	d.mu.Lock()
	d.nextID++
	l := &listener{
		id:        d.nextID,
		region:    region,
		onOutside: onOutside,
		armedAt:   d.seq,
	}
	d.listeners = append(d.listeners, l)
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(l.id) })
	}
}

func (d *Document) remove(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to the listeners attached before it arrived. It
// reports how many listeners treated the event as outside their region.
func (d *Document) Dispatch(ev Event) int {
	d.mu.Lock()
	d.seq++
	current := d.seq
	snapshot := make([]*listener, len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.Unlock()

	fired := 0
	for _, l := range snapshot {
		if l.armedAt >= current {
			continue
		}
		if !d.attached(l.id) {
			// detached by an earlier listener in this dispatch
			continue
		}
		if l.region != nil && l.region.Contains(ev.Point) {
			continue
		}
		if l.onOutside != nil {
			l.onOutside()
		}
		fired++
	}
	return fired
}

func (d *Document) attached(id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

// Listeners returns the number of attached listeners.
func (d *Document) Listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}
