// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var quiet = slog.New(slog.DiscardHandler)

// recorder collects callback invocations.
type recorder struct {
	mu    sync.Mutex
	calls [][]string
	ch    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 16)}
}

func (r *recorder) onChange(_ context.Context, changed []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, changed)
	r.mu.Unlock()
	r.ch <- struct{}{}
	return nil
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// start runs w in the background and returns a stop function that cancels
// it and checks Run's result.
func start(t *testing.T, w *Watcher) func() {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	// Let the event loop start before the test writes files.
	time.Sleep(50 * time.Millisecond)

	return func() {
		cancel()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("Run() error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Run() did not return after cancel")
		}
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("categories: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_DebounceCoalesces(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()
	w, err := New(Config{
		Dirs:     []string{dir},
		Patterns: []string{"**/*.glossary.cue"},
		Debounce: 100 * time.Millisecond,
		OnChange: rec.onChange,
		Logger:   quiet,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := start(t, w)

	for _, name := range []string{"a.glossary.cue", "b.glossary.cue", "c.glossary.cue"} {
		writeFile(t, filepath.Join(dir, name))
		time.Sleep(10 * time.Millisecond)
	}
	rec.wait(t)
	time.Sleep(250 * time.Millisecond)
	stop()

	calls := rec.snapshot()
	if len(calls) != 1 {
		t.Fatalf("expected 1 debounced callback, got %d: %v", len(calls), calls)
	}
	for _, name := range []string{"a.glossary.cue", "b.glossary.cue", "c.glossary.cue"} {
		if !slices.Contains(calls[0], filepath.Join(w.roots[0], name)) {
			t.Errorf("expected %s in %v", name, calls[0])
		}
	}
	if !slices.IsSorted(calls[0]) {
		t.Errorf("changed paths should be sorted: %v", calls[0])
	}
}

func TestWatcher_PatternFiltering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "drafts"), 0o755); err != nil {
		t.Fatal(err)
	}
	rec := newRecorder()
	w, err := New(Config{
		Dirs:     []string{dir},
		Patterns: []string{"**/*.glossary.cue"},
		Ignore:   []string{"drafts/**"},
		Debounce: 50 * time.Millisecond,
		OnChange: rec.onChange,
		Logger:   quiet,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := start(t, w)

	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "drafts", "wip.glossary.cue"))
	time.Sleep(200 * time.Millisecond)
	if n := len(rec.snapshot()); n != 0 {
		t.Fatalf("non-matching or ignored files triggered %d callbacks", n)
	}

	writeFile(t, filepath.Join(dir, "kafka.glossary.cue"))
	rec.wait(t)
	stop()

	calls := rec.snapshot()
	if len(calls) != 1 || len(calls[0]) != 1 || filepath.Base(calls[0][0]) != "kafka.glossary.cue" {
		t.Errorf("unexpected callbacks: %v", calls)
	}
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()
	w, err := New(Config{
		Dirs:     []string{dir},
		Patterns: []string{"**/*.glossary.cue"},
		Debounce: 50 * time.Millisecond,
		OnChange: rec.onChange,
		Logger:   quiet,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := start(t, w)

	sub := filepath.Join(dir, "extra")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	rec.wait(t)

	writeFile(t, filepath.Join(sub, "late.glossary.cue"))
	rec.wait(t)
	stop()

	calls := rec.snapshot()
	last := calls[len(calls)-1]
	if filepath.Base(last[len(last)-1]) != "late.glossary.cue" {
		t.Errorf("file in new subdirectory not reported: %v", calls)
	}
}

func TestWatcher_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	guidesFile := filepath.Join(dir, "guides.cue")
	rec := newRecorder()
	w, err := New(Config{
		Files:    []string{guidesFile},
		Debounce: 50 * time.Millisecond,
		OnChange: rec.onChange,
		Logger:   quiet,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := start(t, w)

	writeFile(t, filepath.Join(dir, "unrelated.cue"))
	time.Sleep(150 * time.Millisecond)
	if n := len(rec.snapshot()); n != 0 {
		t.Fatalf("sibling of a watched file triggered %d callbacks", n)
	}

	writeFile(t, guidesFile)
	rec.wait(t)
	stop()

	if calls := rec.snapshot(); filepath.Base(calls[0][0]) != "guides.cue" {
		t.Errorf("unexpected callbacks: %v", calls)
	}
}

func TestWatcher_SkipIfBusy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var (
		mu      sync.Mutex
		calls   int
		overlap bool
		active  bool
	)
	done := make(chan struct{}, 4)

	w, err := New(Config{
		Dirs:     []string{dir},
		Debounce: 30 * time.Millisecond,
		Logger:   quiet,
		OnChange: func(context.Context, []string) error {
			mu.Lock()
			if active {
				overlap = true
			}
			active = true
			calls++
			mu.Unlock()

			time.Sleep(200 * time.Millisecond)

			mu.Lock()
			active = false
			mu.Unlock()
			done <- struct{}{}
			return errors.New("reload failed")
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := start(t, w)

	writeFile(t, filepath.Join(dir, "a.glossary.cue"))
	time.Sleep(80 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "b.glossary.cue"))

	for range 2 {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for callbacks")
		}
	}
	stop()

	mu.Lock()
	defer mu.Unlock()
	if overlap {
		t.Error("callbacks ran concurrently")
	}
	if calls != 2 {
		t.Errorf("the change during a busy callback should be delivered later; got %d calls", calls)
	}
}

func TestWatcher_ContextCancel(t *testing.T) {
	t.Parallel()

	w, err := New(Config{Dirs: []string{t.TempDir()}, Logger: quiet})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	start(t, w)()
}

func TestWatcher_DoubleRun(t *testing.T) {
	t.Parallel()

	w, err := New(Config{Dirs: []string{t.TempDir()}, Logger: quiet})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := start(t, w)
	if err := w.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() = %v, want ErrAlreadyRunning", err)
	}
	stop()
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"nothing exists", Config{Dirs: []string{missing}}, ErrNothingToWatch},
		{"nothing configured", Config{}, ErrNothingToWatch},
		{"bad pattern", Config{Dirs: []string{t.TempDir()}, Patterns: []string{"[unclosed"}}, nil},
		{"bad ignore", Config{Dirs: []string{t.TempDir()}, Ignore: []string{"{a,b"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.cfg.Logger = quiet
			w, err := New(tt.cfg)
			if err == nil {
				_ = w.fsw.Close()
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNew_SkipsMissingDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := New(Config{Dirs: []string{filepath.Join(dir, "missing"), dir, dir}, Logger: quiet})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.fsw.Close()

	if len(w.roots) != 1 {
		t.Errorf("roots = %v, want the existing directory once", w.roots)
	}
}

func TestDefaultIgnores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		ignored bool
	}{
		{".git/config", true},
		{"node_modules/pkg/index.js", true},
		{"kafka.glossary.cue.swp", true},
		{"backup~", true},
		{"sub/.DS_Store", true},
		{"kafka.glossary.cue", false},
		{".gitignore", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			if got := matchAny(DefaultIgnores(), tt.path); got != tt.ignored {
				t.Errorf("matchAny(defaults, %q) = %v, want %v", tt.path, got, tt.ignored)
			}
		})
	}
}
