package backend

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type fakeInfo struct {
	fs.FileInfo
	size int64
	mod  time.Time
}

func (f fakeInfo) Size() int64        { return f.size }
func (f fakeInfo) ModTime() time.Time { return f.mod }

type fakeFS struct {
	mu    sync.Mutex
	files map[string]fakeInfo
	err   error
}

func (f *fakeFS) stat(path string) (fs.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	info, ok := f.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return info, nil
}

func (f *fakeFS) set(path string, size int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = fakeInfo{size: size, mod: time.Unix(size, 0)}
}

func (f *fakeFS) remove(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
}

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return Event{}
}

func TestWatcherReportsChanges(t *testing.T) {
	files := &fakeFS{files: map[string]fakeInfo{}}
	files.set("/in/scene.xml", 10)
	w := newWatcher(10*time.Millisecond, files.stat)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	w.Track(KindScene, "/in/scene.xml")
	evt := nextEvent(t, w)
	if evt.Kind != KindScene || evt.Change != ChangeBaseline || evt.Snapshot.Size != 10 {
		t.Fatalf("expected scene baseline, got %+v", evt)
	}

	files.set("/in/scene.xml", 20)
	evt = nextEvent(t, w)
	if evt.Change != ChangeModified || evt.Snapshot.Size != 20 {
		t.Fatalf("expected modified, got %+v", evt)
	}

	files.remove("/in/scene.xml")
	evt = nextEvent(t, w)
	if evt.Change != ChangeMissing || !evt.Snapshot.Missing {
		t.Fatalf("expected missing, got %+v", evt)
	}

	files.set("/in/scene.xml", 30)
	evt = nextEvent(t, w)
	if evt.Change != ChangeRestored {
		t.Fatalf("expected restored, got %+v", evt)
	}
}

func TestWatcherRetrackEmitsNewBaseline(t *testing.T) {
	files := &fakeFS{files: map[string]fakeInfo{}}
	files.set("/a.xml", 1)
	files.set("/b.xml", 2)
	w := newWatcher(10*time.Millisecond, files.stat)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	w.Track(KindRules, "/a.xml")
	if evt := nextEvent(t, w); evt.Kind != KindRules || evt.Snapshot.Path != "/a.xml" {
		t.Fatalf("unexpected first event %+v", evt)
	}
	w.Track(KindRules, "/b.xml")
	evt := nextEvent(t, w)
	if evt.Change != ChangeBaseline || evt.Snapshot.Path != "/b.xml" {
		t.Fatalf("expected baseline for new path, got %+v", evt)
	}
	w.Track(KindRules, "")
	if got := w.Tracked(KindRules); got != "" {
		t.Fatalf("expected untracked, got %q", got)
	}
}

func TestWatcherSurfacesStatErrors(t *testing.T) {
	boom := errors.New("permission denied")
	files := &fakeFS{files: map[string]fakeInfo{}, err: boom}
	w := newWatcher(10*time.Millisecond, files.stat)
	defer func() {
		w.Stop()
		w.Wait()
	}()
	w.Track(KindScene, "/locked.xml")
	evt := nextEvent(t, w)
	if !errors.Is(evt.Err, boom) {
		t.Fatalf("expected stat error, got %+v", evt)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	w := NewWatcher(5 * time.Millisecond)
	w.Stop()
	w.Wait()
	for range w.Events() {
	}
}

func TestWatcherWithRealFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.xml")
	if err := os.WriteFile(path, []byte("<rules/>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w := NewWatcher(10 * time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()
	w.Track(KindRules, path)
	evt := nextEvent(t, w)
	if evt.Err != nil || evt.Snapshot.Size != int64(len("<rules/>")) {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestThrottleSpacing(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	start := time.Now()
	th.wait()
	th.wait()
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("expected throttled second call, elapsed %s", elapsed)
	}
	var nilThrottle *throttle
	nilThrottle.wait()
}

func expectQuiet(t *testing.T, w *Watcher, d time.Duration) {
	t.Helper()
	select {
	case evt := <-w.Events():
		t.Fatalf("expected no event, got %+v", evt)
	case <-time.After(d):
	}
}

func TestWatcherReportsFileMissingAtFirstPoll(t *testing.T) {
	files := &fakeFS{files: map[string]fakeInfo{}}
	w := newWatcher(10*time.Millisecond, files.stat)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	w.Track(KindScene, "/gone.xml")
	evt := nextEvent(t, w)
	if evt.Change != ChangeMissing || !evt.Snapshot.Missing {
		t.Fatalf("expected missing on first poll, got %+v", evt)
	}
	expectQuiet(t, w, 60*time.Millisecond)

	files.set("/gone.xml", 5)
	if evt := nextEvent(t, w); evt.Change != ChangeRestored {
		t.Fatalf("expected restored, got %+v", evt)
	}
}

func TestWatcherReportsRepeatedErrorOnce(t *testing.T) {
	files := &fakeFS{files: map[string]fakeInfo{}, err: errors.New("permission denied")}
	w := newWatcher(10*time.Millisecond, files.stat)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	w.Track(KindScene, "/locked.xml")
	if evt := nextEvent(t, w); evt.Err == nil {
		t.Fatalf("expected stat error, got %+v", evt)
	}
	expectQuiet(t, w, 80*time.Millisecond)

	files.mu.Lock()
	files.err = nil
	files.mu.Unlock()
	files.set("/locked.xml", 3)
	evt := nextEvent(t, w)
	if evt.Err != nil || evt.Change != ChangeBaseline {
		t.Fatalf("expected baseline after recovery, got %+v", evt)
	}
}

func TestWatcherErrorRecoveryReemitsState(t *testing.T) {
	files := &fakeFS{files: map[string]fakeInfo{}}
	files.set("/scene.xml", 4)
	w := newWatcher(10*time.Millisecond, files.stat)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	w.Track(KindScene, "/scene.xml")
	if evt := nextEvent(t, w); evt.Change != ChangeBaseline {
		t.Fatalf("expected baseline, got %+v", evt)
	}
	files.mu.Lock()
	files.err = errors.New("io error")
	files.mu.Unlock()
	if evt := nextEvent(t, w); evt.Err == nil {
		t.Fatalf("expected error, got %+v", evt)
	}
	files.mu.Lock()
	files.err = nil
	files.mu.Unlock()
	evt := nextEvent(t, w)
	if evt.Err != nil || evt.Change != ChangeRestored {
		t.Fatalf("expected restored after recovery, got %+v", evt)
	}
}

func TestWatcherPollersShareThrottle(t *testing.T) {
	var mu sync.Mutex
	var calls []time.Time
	stat := func(string) (fs.FileInfo, error) {
		mu.Lock()
		calls = append(calls, time.Now())
		mu.Unlock()
		return fakeInfo{size: 1, mod: time.Unix(1, 0)}, nil
	}
	w := newWatcher(80*time.Millisecond, stat)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	w.Track(KindScene, "/scene.xml")
	w.Track(KindRules, "/rules.xml")
	nextEvent(t, w)
	nextEvent(t, w)

	mu.Lock()
	defer mu.Unlock()
	if len(calls) < 2 {
		t.Fatalf("expected two stat calls, got %d", len(calls))
	}
	if gap := calls[1].Sub(calls[0]); gap < 15*time.Millisecond {
		t.Fatalf("expected stat calls spaced by the shared throttle, got %s", gap)
	}
}
