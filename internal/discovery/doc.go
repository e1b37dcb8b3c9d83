// SPDX-License-Identifier: MPL-2.0

// Package discovery locates glossary term modules and loads them.
//
// Modules are discovered from a fixed set of sources: the term modules
// bundled into the binary plus the directories configured in term_dirs.
// Every source is an fs.FS scanned for files matching "**/*.glossary.cue".
// Load failures never abort discovery; they are returned as diagnostics.
//
// File organization:
//   - discovery.go: Discovery, options and the Discover entry point
//   - sources.go: source resolution and directory deduplication
package discovery
