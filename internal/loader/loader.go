// SPDX-License-Identifier: MPL-2.0

// Package loader runs the full load pipeline: guide registry, module
// discovery and index build. Each load starts from scratch, so loading twice
// from unchanged sources produces equal snapshots.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/builtin"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/config"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/diagnostic"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/discovery"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/index"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/issue"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/metrics"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/guides"
)

type (
	// Options selects the sources of one load.
	Options struct {
		// TermDirs are scanned for term modules.
		TermDirs []string
		// IncludeBuiltin adds the bundled term modules.
		IncludeBuiltin bool
		// GuidesFile replaces the bundled guide registry when set.
		GuidesFile string
		// Sources are extra discovery sources, scanned first.
		Sources []discovery.Source
		// Logger receives diagnostics as warnings. Nil uses slog.Default().
		Logger *slog.Logger
		// Metrics records build outcomes when set.
		Metrics *metrics.Metrics
	}

	// Snapshot is the outcome of one load.
	Snapshot struct {
		Index       *index.Index
		Registry    *guides.Registry
		Modules     []discovery.Module
		Diagnostics []diagnostic.Diagnostic
		Took        time.Duration
	}

	// Holder keeps the current snapshot and replaces it atomically on reload.
	// Readers never observe a partially built index.
	Holder struct {
		opts    Options
		current atomic.Pointer[Snapshot]
	}
)

// OptionsFromConfig maps configuration onto load options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TermDirs:       cfg.TermDirs,
		IncludeBuiltin: cfg.IncludeBuiltin,
		GuidesFile:     cfg.GuidesFile,
	}
}

// Load runs the pipeline once. Data problems become diagnostics; only an
// unusable guide registry or a canceled context is an error.
func Load(ctx context.Context, opts Options) (*Snapshot, error) {
	start := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := loadRegistry(opts.GuidesFile)
	if err != nil {
		opts.Metrics.ObserveBuildFailure()
		return nil, err
	}

	discoveryOpts := []discovery.Option{
		discovery.WithSources(opts.Sources...),
		discovery.WithTermDirs(opts.TermDirs...),
		discovery.WithLogger(logger),
	}
	if opts.IncludeBuiltin {
		discoveryOpts = append(discoveryOpts, discovery.WithBuiltin(builtin.Terms()))
	}

	found, err := discovery.New(discoveryOpts...).Discover(ctx)
	if err != nil {
		opts.Metrics.ObserveBuildFailure()
		return nil, fmt.Errorf("discover term modules: %w", err)
	}

	built := index.Build(discovery.Flatten(found.Modules), registry)
	diagnostic.Log(ctx, logger, built.Diagnostics)

	snap := &Snapshot{
		Index:       built.Index,
		Registry:    registry,
		Modules:     found.Modules,
		Diagnostics: append(found.Diagnostics, built.Diagnostics...),
		Took:        time.Since(start),
	}
	opts.Metrics.ObserveBuild(snap.Index, snap.Diagnostics, snap.Took)

	logger.DebugContext(ctx, "glossary index built",
		"modules", len(snap.Modules), "terms", snap.Index.Len(),
		"diagnostics", len(snap.Diagnostics), "took", snap.Took)

	return snap, nil
}

func loadRegistry(path string) (*guides.Registry, error) {
	if path == "" {
		reg, err := builtin.Guides()
		if err != nil {
			return nil, fmt.Errorf("internal error: bundled guide registry: %w", err)
		}
		return reg, nil
	}

	data, err := os.ReadFile(path)
	if err == nil {
		var reg *guides.Registry
		if reg, err = guides.Parse(data, path); err == nil {
			return reg, nil
		}
	}
	return nil, issue.NewErrorContext().
		WithOperation("load guide registry").
		WithResource(path).
		WithSuggestion("Check that guides_file points to a readable guides.cue").
		WithSuggestion("Guide ids must be unique and each section may belong to one guide").
		WithIssue(issue.GuidesFileInvalidId).
		Wrap(err).
		BuildError()
}

// NewHolder loads an initial snapshot.
func NewHolder(ctx context.Context, opts Options) (*Holder, error) {
	h := &Holder{opts: opts}
	if _, err := h.Reload(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// Current returns the active snapshot.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Reload builds a new snapshot and makes it current. On error the previous
// snapshot stays active.
func (h *Holder) Reload(ctx context.Context) (*Snapshot, error) {
	snap, err := Load(ctx, h.opts)
	if err != nil {
		return nil, err
	}
	h.current.Store(snap)
	return snap, nil
}
