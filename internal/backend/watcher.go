package backend

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"
)

// Kind identifies which accepted file an event concerns.
type Kind int

const (
	KindScene Kind = iota
	KindRules
)

func (k Kind) String() string {
	switch k {
	case KindScene:
		return "scene"
	case KindRules:
		return "rules"
	default:
		return "unknown"
	}
}

// Change classifies how a tracked file differs from the previous poll.
type Change int

const (
	ChangeBaseline Change = iota
	ChangeModified
	ChangeMissing
	ChangeRestored
)

func (c Change) String() string {
	switch c {
	case ChangeBaseline:
		return "baseline"
	case ChangeModified:
		return "modified"
	case ChangeMissing:
		return "missing"
	case ChangeRestored:
		return "restored"
	default:
		return "unknown"
	}
}

// Snapshot is the observed state of a tracked file.
type Snapshot struct {
	Path    string
	Size    int64
	ModTime time.Time
	Missing bool
}

func (s Snapshot) same(o Snapshot) bool {
	return s.Path == o.Path && s.Size == o.Size && s.Missing == o.Missing && s.ModTime.Equal(o.ModTime)
}

// Event reports a change to a tracked file or a failed poll.
type Event struct {
	Kind     Kind
	Change   Change
	Snapshot Snapshot
	Err      error
}

type statFunc func(string) (fs.FileInfo, error)

// Watcher polls the accepted input files at a fixed interval and publishes
// an event whenever one of them changes.
type Watcher struct {
	interval time.Duration
	stat     statFunc
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	paths map[Kind]string

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that polls tracked files every interval.
func NewWatcher(interval time.Duration) *Watcher {
	return newWatcher(interval, os.Stat)
}

func newWatcher(interval time.Duration, stat statFunc) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		interval: interval,
		stat:     stat,
		throttle: newThrottle(interval / 4),
		ctx:      ctx,
		cancel:   cancel,
		paths:    make(map[Kind]string),
		events:   make(chan Event, 16),
	}

	for _, kind := range []Kind{KindScene, KindRules} {
		w.startFilePoller(kind)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Track starts watching path for kind, replacing any previous path. An empty
// path stops watching.
func (w *Watcher) Track(kind Kind, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if path == "" {
		delete(w.paths, kind)
		return
	}
	w.paths[kind] = path
}

// Tracked returns the path watched for kind.
func (w *Watcher) Tracked(kind Kind) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.paths[kind]
}

// Events returns a channel of file events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current stat completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startFilePoller(kind Kind) {
	w.wg.Add(1)
	go w.poll(kind, func(ctx context.Context, path string) (Snapshot, error) {
		w.throttle.wait()
		return w.snapshot(path)
	})
}

func (w *Watcher) snapshot(path string) (Snapshot, error) {
	info, err := w.stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{Path: path, Missing: true}, nil
	}
	if err != nil {
		return Snapshot{Path: path}, err
	}
	return Snapshot{Path: path, Size: info.Size(), ModTime: info.ModTime()}, nil
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context, string) (Snapshot, error)) {
	defer w.wg.Done()

	var last Snapshot
	var seen bool
	// lastErr is the error most recently reported for errPath.
	var lastErr, errPath string

	emit := func() bool {
		path := w.Tracked(kind)
		if path == "" {
			seen = false
			lastErr, errPath = "", ""
			return true
		}
		snap, err := fetch(w.ctx, path)
		var evt Event
		switch {
		case err != nil:
			if errPath == path && lastErr == err.Error() {
				return true
			}
			evt = Event{Kind: kind, Snapshot: snap, Err: err}
		case (!seen || last.Path != snap.Path) && snap.Missing:
			evt = Event{Kind: kind, Change: ChangeMissing, Snapshot: snap}
		case !seen || last.Path != snap.Path:
			evt = Event{Kind: kind, Change: ChangeBaseline, Snapshot: snap}
		case snap.same(last) && errPath == "":
			return true
		case snap.same(last):
			// first good poll after a reported error
			evt = Event{Kind: kind, Change: ChangeRestored, Snapshot: snap}
			if snap.Missing {
				evt.Change = ChangeMissing
			}
		default:
			evt = Event{Kind: kind, Change: classify(last, snap), Snapshot: snap}
		}
		if err != nil {
			lastErr, errPath = err.Error(), path
		} else {
			last, seen = snap, true
			lastErr, errPath = "", ""
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}

func classify(prev, next Snapshot) Change {
	switch {
	case next.Missing:
		return ChangeMissing
	case prev.Missing:
		return ChangeRestored
	default:
		return ChangeModified
	}
}
