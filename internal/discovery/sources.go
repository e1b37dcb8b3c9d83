// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/builtin"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/diagnostic"
)

// resolveSources returns the ordered, deduplicated list of sources to scan:
// explicit sources, then the builtin modules, then term directories.
// Directories are keyed by their resolved absolute path so a directory
// configured twice (or through a symlink) is scanned once.
func (d *Discovery) resolveSources() ([]Source, []diagnostic.Diagnostic) {
	var (
		sources []Source
		diags   []diagnostic.Diagnostic
		seen    = make(map[string]bool)
	)

	add := func(src Source) {
		key := src.Dir
		if key == "" {
			key = "fs:" + src.Name
		}
		if seen[key] {
			return
		}
		seen[key] = true
		sources = append(sources, src)
	}

	for _, src := range d.sources {
		add(src)
	}
	if d.builtin != nil {
		add(Source{Name: builtin.SourceName, FS: d.builtin})
	}

	for _, dir := range d.termDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			diags = append(diags, diagnostic.Errorf(diagnostic.CodeTermDirScanFailed, dir,
				"cannot resolve term directory %s", dir).WithCause(err))
			continue
		}
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}

		info, err := os.Stat(abs)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			diags = append(diags, diagnostic.Warnf(diagnostic.CodeTermDirMissing, abs,
				"term directory %s does not exist", abs))
			continue
		case err != nil:
			diags = append(diags, diagnostic.Errorf(diagnostic.CodeTermDirScanFailed, abs,
				"cannot access term directory %s", abs).WithCause(err))
			continue
		case !info.IsDir():
			diags = append(diags, diagnostic.Errorf(diagnostic.CodeTermDirScanFailed, abs,
				"term directory %s is not a directory", abs))
			continue
		}

		add(Source{Name: abs, FS: os.DirFS(abs), Dir: abs})
	}

	return sources, diags
}

// modulePath returns the on-disk path of a module, or its slash path inside
// an embedded source.
func modulePath(src Source, name string) string {
	if src.Dir == "" {
		return name
	}
	return filepath.Join(src.Dir, filepath.FromSlash(name))
}
