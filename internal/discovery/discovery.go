// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/diagnostic"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/index"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

// ModulePattern is the doublestar pattern that selects term modules inside a source.
const ModulePattern = "**/*" + glossary.ModuleSuffix

type (
	// Source is one root that term modules are discovered from.
	Source struct {
		// Name identifies the source in module ids ("builtin", or an absolute directory).
		Name string
		// FS is the filesystem scanned for modules.
		FS fs.FS
		// Dir is the absolute directory backing FS. Empty for embedded sources.
		Dir string
	}

	// Module is one successfully loaded term module.
	Module struct {
		// ID is "<source>:<slash path inside the source>" and is unique per load.
		ID string `json:"id"`
		// Path is the file path on disk, or the slash path for embedded sources.
		Path string `json:"path"`
		// Source is the name of the source the module was found in.
		Source string `json:"source"`
		// Guide is the module's declared guide (informational).
		Guide glossary.GuideID `json:"guide,omitempty"`
		// Categories are the module's categories in file order.
		Categories []glossary.Category `json:"categories"`
	}

	// Result bundles loaded modules with the diagnostics produced while
	// discovering them.
	Result struct {
		Modules     []Module
		Diagnostics []diagnostic.Diagnostic
	}

	// Discovery finds and loads term modules.
	Discovery struct {
		sources  []Source
		termDirs []string
		builtin  fs.FS
		logger   *slog.Logger
	}

	// Option configures a Discovery.
	Option func(*Discovery)
)

// WithSources adds explicit sources, scanned before term directories.
func WithSources(sources ...Source) Option {
	return func(d *Discovery) {
		d.sources = append(d.sources, sources...)
	}
}

// WithBuiltin sets the bundled term module filesystem. A nil fsys disables
// the builtin source.
func WithBuiltin(fsys fs.FS) Option {
	return func(d *Discovery) {
		d.builtin = fsys
	}
}

// WithTermDirs adds directories to scan for term modules.
func WithTermDirs(dirs ...string) Option {
	return func(d *Discovery) {
		d.termDirs = append(d.termDirs, dirs...)
	}
}

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Discovery) {
		d.logger = logger
	}
}

// New creates a Discovery. Without options it has no sources.
func New(opts ...Option) *Discovery {
	d := &Discovery{logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	return d
}

// Discover scans every source and loads the term modules it finds. Each
// module file is returned at most once. Malformed modules are skipped with
// a diagnostic. The only error returned is the context's.
func (d *Discovery) Discover(ctx context.Context) (*Result, error) {
	result := &Result{}

	sources, diags := d.resolveSources()
	for _, diag := range diags {
		d.report(ctx, result, diag)
	}

	// Nested term directories reach the same file twice; on-disk paths
	// identify it across sources.
	seenFiles := make(map[string]bool)

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		matches, err := doublestar.Glob(src.FS, ModulePattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			d.report(ctx, result, diagnostic.Errorf(diagnostic.CodeTermDirScanFailed, src.Name,
				"failed to scan term source %s", src.Name).WithCause(err))
			continue
		}
		slices.Sort(matches)

		for _, name := range matches {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if src.Dir != "" {
				p := modulePath(src, name)
				if seenFiles[p] {
					continue
				}
				seenFiles[p] = true
			}
			mod, err := loadModule(src, name)
			if err != nil {
				d.report(ctx, result, diagnostic.Errorf(diagnostic.CodeModuleLoadSkipped, moduleID(src, name),
					"skipping term module %s", moduleID(src, name)).WithCause(err))
				continue
			}
			result.Modules = append(result.Modules, mod)
		}
	}

	d.logger.DebugContext(ctx, "term module discovery finished",
		"sources", len(sources), "modules", len(result.Modules), "diagnostics", len(result.Diagnostics))

	return result, nil
}

// Flatten turns modules into index inputs, preserving discovery order and
// recording which module contributed each category.
func Flatten(modules []Module) []index.Input {
	var inputs []index.Input
	for _, m := range modules {
		for _, c := range m.Categories {
			inputs = append(inputs, index.Input{Module: m.ID, Category: c.Clone()})
		}
	}
	return inputs
}

func (d *Discovery) report(ctx context.Context, result *Result, diag diagnostic.Diagnostic) {
	result.Diagnostics = append(result.Diagnostics, diag)
	diagnostic.Log(ctx, d.logger, []diagnostic.Diagnostic{diag})
}

func loadModule(src Source, name string) (Module, error) {
	parsed, err := glossary.ParseFS(src.FS, name, modulePath(src, name))
	if err != nil {
		return Module{}, err
	}
	if parsed.Guide != "" {
		if ok, errs := parsed.Guide.IsValid(); !ok {
			return Module{}, fmt.Errorf("module guide: %w", errs[0])
		}
	}
	return Module{
		ID:         moduleID(src, name),
		Path:       modulePath(src, name),
		Source:     src.Name,
		Guide:      parsed.Guide,
		Categories: parsed.Categories,
	}, nil
}

func moduleID(src Source, name string) string {
	return src.Name + ":" + path.Clean(name)
}
