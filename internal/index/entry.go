// SPDX-License-Identifier: MPL-2.0

package index

import (
	"slices"

	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

type (
	// Entry is one indexed term. Guides holds the effective guide set.
	Entry struct {
		Name                 glossary.TermName      `json:"term"`
		Definition           string                 `json:"definition"`
		PrimaryReference     glossary.ReferenceID   `json:"primary_reference"`
		AdditionalReferences []glossary.ReferenceID `json:"additional_references"`
		Section              glossary.SectionID     `json:"section,omitempty"`
		AdditionalSections   []glossary.SectionID   `json:"additional_sections"`
		Guides               []glossary.GuideID     `json:"guides"`
		// Module is the id of the module that contributed the entry.
		Module string `json:"module,omitempty"`

		plain string
	}

	// Group is one category with its terms in index order.
	Group struct {
		Category glossary.CategoryLabel `json:"category"`
		Terms    []Entry                `json:"terms"`
	}
)

// PlainDefinition returns the definition with markup removed, as used for
// text search.
func (e Entry) PlainDefinition() string { return e.plain }

// Sections returns the primary section followed by the additional sections.
func (e Entry) Sections() []glossary.SectionID {
	return glossary.Term{Section: e.Section, AdditionalSections: e.AdditionalSections}.Sections()
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	e.AdditionalReferences = slices.Clone(e.AdditionalReferences)
	e.AdditionalSections = slices.Clone(e.AdditionalSections)
	e.Guides = slices.Clone(e.Guides)
	return e
}

// Clone returns a deep copy of g.
func (g Group) Clone() Group {
	terms := make([]Entry, len(g.Terms))
	for i, e := range g.Terms {
		terms[i] = e.Clone()
	}
	return Group{Category: g.Category, Terms: terms}
}

// CloneGroups deep copies a slice of groups. The result is never nil.
func CloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
