// SPDX-License-Identifier: MPL-2.0

// Package builtin bundles the default term modules and guide registry that
// ship inside the glossary binary.
package builtin

import (
	"embed"
	"io/fs"

	"github.com/emilyeserven/npm-package-guide-sub003/pkg/guides"
)

// SourceName is the discovery source name of the bundled term modules.
const SourceName = "builtin"

// GuidesFile is the file name of the bundled guide registry.
const GuidesFile = "guides.cue"

var (
	//go:embed terms/*.glossary.cue
	termFiles embed.FS

	//go:embed guides.cue
	guidesData []byte
)

// Terms returns the bundled term modules rooted at the terms directory.
func Terms() fs.FS {
	sub, err := fs.Sub(termFiles, "terms")
	if err != nil {
		// fs.Sub only fails for an invalid path, and "terms" is a constant.
		panic(err)
	}
	return sub
}

// GuidesData returns the raw bundled guide registry.
func GuidesData() []byte {
	out := make([]byte, len(guidesData))
	copy(out, guidesData)
	return out
}

// Guides parses the bundled guide registry.
func Guides() (*guides.Registry, error) {
	return guides.Parse(guidesData, SourceName+":"+GuidesFile)
}
