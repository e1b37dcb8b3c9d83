// SPDX-License-Identifier: MPL-2.0

// Package watch triggers a debounced callback when term sources change.
//
// Term directories are watched recursively and filtered by glob patterns.
// Single files, such as a guide registry or config file, are watched through
// their parent directory. Events inside the debounce window are coalesced so
// the callback fires once with every changed path.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not set.
const DefaultDebounce = 500 * time.Millisecond

var (
	// ErrNothingToWatch is returned when none of the configured paths exist.
	ErrNothingToWatch = errors.New("watch: no existing directory or file to watch")
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watch: Run called more than once")

	// defaultIgnores are always excluded: VCS metadata, editor swap files
	// and OS metadata.
	defaultIgnores = []string{
		"**/.git/**",
		"**/node_modules/**",
		"**/*.swp",
		"**/*.swo",
		"**/*~",
		"**/.DS_Store",
	}
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Dirs are watched recursively. Missing directories are skipped with
		// a warning.
		Dirs []string

		// Files are watched individually. A missing file is still watched
		// through its parent directory so creating it triggers a reload.
		Files []string

		// Patterns select which files under Dirs trigger the callback,
		// relative to the directory they live in. Empty matches every file.
		Patterns []string

		// Ignore are extra patterns merged with the default ignores.
		Ignore []string

		// Debounce is the quiet period after the last event. Non-positive
		// values use DefaultDebounce.
		Debounce time.Duration

		// OnChange receives the sorted, absolute paths that changed. A nil
		// callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Logger receives watcher warnings. Nil uses slog.Default().
		Logger *slog.Logger
	}

	// Watcher monitors term sources. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		roots    []string
		files    map[string]bool
		ignores  []string
		debounce time.Duration
		logger   *slog.Logger
		started  atomic.Bool
	}
)

// New creates a Watcher and registers every existing directory.
func New(cfg Config) (*Watcher, error) {
	if err := validatePatterns(cfg.Patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		files:    make(map[string]bool),
		ignores:  slices.Concat(defaultIgnores, cfg.Ignore),
		debounce: debounce,
		logger:   logger,
	}

	if err := w.register(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Warn("watch: close after init failure", "error", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// Watched returns the directories registered with the OS watcher.
func (w *Watcher) Watched() []string {
	list := w.fsw.WatchList()
	slices.Sort(list)
	return list
}

func (w *Watcher) register() error {
	for _, dir := range w.cfg.Dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("watch: resolve %q: %w", dir, err)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			w.logger.Warn("watch: skipping missing term directory", "path", abs)
			continue
		}
		if slices.Contains(w.roots, abs) {
			continue
		}
		w.roots = append(w.roots, abs)
		if err := w.addTree(abs); err != nil {
			return err
		}
	}

	for _, file := range w.cfg.Files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("watch: resolve %q: %w", file, err)
		}
		parent := filepath.Dir(abs)
		if info, err := os.Stat(parent); err != nil || !info.IsDir() {
			w.logger.Warn("watch: skipping file in missing directory", "path", abs)
			continue
		}
		w.files[abs] = true
		if err := w.fsw.Add(parent); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", parent, err)
		}
	}

	if len(w.fsw.WatchList()) == 0 {
		return ErrNothingToWatch
	}
	return nil
}

// addTree adds root and every non-ignored directory below it.
func (w *Watcher) addTree(root string) error {
	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("watch: skipping inaccessible path", "path", path, "error", err)
			return nil //nolint:nilerr // an unreadable subtree should not stop the walk
		}
		if !d.IsDir() {
			return nil
		}
		if rel, relErr := filepath.Rel(root, path); relErr == nil && rel != "." && w.isIgnored(rel+"/") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk %q: %w", root, walkErr)
	}
	return nil
}

// Run processes events until ctx is canceled. It returns nil on
// cancellation and an error when the OS watcher breaks. Run waits for an
// in-flight callback before returning.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu       sync.Mutex
		pending  = make(map[string]struct{})
		timer    *time.Timer
		closed   bool
		running  atomic.Bool
		inflight sync.WaitGroup
	)

	// fire runs on the timer goroutine. Only one callback runs at a time;
	// a busy callback reschedules instead of dropping the pending set.
	fire := func() {
		mu.Lock()
		if closed || ctx.Err() != nil {
			mu.Unlock()
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("watch: reload still running, rescheduling")
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		if len(pending) == 0 {
			running.Store(false)
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		inflight.Add(1)
		mu.Unlock()

		defer inflight.Done()
		defer running.Store(false)

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Warn("watch: reload failed", "error", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		closed = true
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		inflight.Wait()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("watch: close fsnotify", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if !w.relevant(evt) {
				continue
			}

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatal(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("watch: fsnotify error", "error", err)
		}
	}
}

// relevant reports whether evt should schedule a callback. New directories
// under a root are registered as a side effect.
func (w *Watcher) relevant(evt fsnotify.Event) bool {
	if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
		return false
	}
	if w.files[evt.Name] {
		return true
	}

	root, rel, ok := w.rootOf(evt.Name)
	if !ok || w.isIgnored(rel) {
		return false
	}
	if evt.Has(fsnotify.Create) && w.maybeAddDir(root, evt.Name) {
		// Files copied in together with the directory produce no events of
		// their own, so the directory itself counts as a change.
		return true
	}
	return w.matchesPatterns(rel)
}

// rootOf returns the watched root containing path and path relative to it.
func (w *Watcher) rootOf(path string) (root, rel string, ok bool) {
	for _, r := range w.roots {
		p, err := filepath.Rel(r, path)
		if err != nil || p == "." || p == ".." || strings.HasPrefix(p, ".."+string(filepath.Separator)) {
			continue
		}
		return r, p, true
	}
	return "", "", false
}

func (w *Watcher) maybeAddDir(root, path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if rel, err := filepath.Rel(root, path); err == nil && w.isIgnored(rel+"/") {
		return false
	}
	if err := w.addTree(path); err != nil {
		w.logger.Warn("watch: add new directory", "path", path, "error", err)
		return false
	}
	return true
}

func (w *Watcher) isIgnored(rel string) bool {
	return matchAny(w.ignores, rel)
}

func (w *Watcher) matchesPatterns(rel string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	return matchAny(w.cfg.Patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid %s pattern %q: %w", label, pat, doublestar.ErrBadPattern)
		}
	}
	return nil
}
