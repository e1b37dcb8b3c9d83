// SPDX-License-Identifier: MPL-2.0

package index

import (
	"cmp"
	"slices"

	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

type (
	// Index is the immutable, merged glossary.
	Index struct {
		groups       []Group
		positions    map[glossary.TermRef]position
		guideTerms   map[glossary.GuideID][]glossary.TermRef
		termGuides   map[glossary.TermRef][]glossary.GuideID
		sectionTerms map[glossary.SectionID][]glossary.TermRef
		guides       []glossary.GuideID
		terms        int
	}

	// Stats summarizes an index.
	Stats struct {
		Categories int `json:"categories"`
		Terms      int `json:"terms"`
		Guides     int `json:"guides"`
		Sections   int `json:"sections"`
	}

	position struct {
		group, term int
	}
)

func newIndex(groups []Group) *Index {
	idx := &Index{
		groups:       groups,
		positions:    make(map[glossary.TermRef]position),
		guideTerms:   make(map[glossary.GuideID][]glossary.TermRef),
		termGuides:   make(map[glossary.TermRef][]glossary.GuideID),
		sectionTerms: make(map[glossary.SectionID][]glossary.TermRef),
	}

	for gi, g := range groups {
		for ti, e := range g.Terms {
			ref := glossary.TermRef{Category: g.Category, Term: e.Name}
			idx.positions[ref] = position{group: gi, term: ti}
			idx.termGuides[ref] = e.Guides
			idx.terms++
			for _, guide := range e.Guides {
				if _, known := idx.guideTerms[guide]; !known {
					idx.guides = append(idx.guides, guide)
				}
				idx.guideTerms[guide] = append(idx.guideTerms[guide], ref)
			}
			for _, s := range e.Sections() {
				if !slices.Contains(idx.sectionTerms[s], ref) {
					idx.sectionTerms[s] = append(idx.sectionTerms[s], ref)
				}
			}
		}
	}

	return idx
}

// Empty returns an index with no terms.
func Empty() *Index { return newIndex(nil) }

// Groups returns a deep copy of all categories in index order. The result is
// never nil.
func (idx *Index) Groups() []Group {
	if idx == nil {
		return []Group{}
	}
	return CloneGroups(idx.groups)
}

// Categories returns the category labels in index order.
func (idx *Index) Categories() []glossary.CategoryLabel {
	if idx == nil {
		return nil
	}
	out := make([]glossary.CategoryLabel, len(idx.groups))
	for i, g := range idx.groups {
		out[i] = g.Category
	}
	return out
}

// HasCategory reports whether a category with label exists.
func (idx *Index) HasCategory(label glossary.CategoryLabel) bool {
	return slices.Contains(idx.Categories(), label.Normalize())
}

// Guides returns every guide id referenced by at least one term, in the order
// first encountered.
func (idx *Index) Guides() []glossary.GuideID {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.guides)
}

// Term looks up a single entry by its (category, term) identity.
func (idx *Index) Term(ref glossary.TermRef) (Entry, bool) {
	if idx == nil {
		return Entry{}, false
	}
	pos, ok := idx.positions[normalize(ref)]
	if !ok {
		return Entry{}, false
	}
	return idx.groups[pos.group].Terms[pos.term].Clone(), true
}

// Lookup finds every entry named name across all categories, in index order.
func (idx *Index) Lookup(name glossary.TermName) []glossary.TermRef {
	if idx == nil {
		return nil
	}
	name = name.Normalize()
	var refs []glossary.TermRef
	for _, g := range idx.groups {
		for _, e := range g.Terms {
			if e.Name == name {
				refs = append(refs, glossary.TermRef{Category: g.Category, Term: e.Name})
			}
		}
	}
	return refs
}

// GuidesForTerm returns the effective guides of a term.
func (idx *Index) GuidesForTerm(ref glossary.TermRef) []glossary.GuideID {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.termGuides[normalize(ref)])
}

// TermsForGuide returns the terms associated with guide, in index order.
func (idx *Index) TermsForGuide(guide glossary.GuideID) []glossary.TermRef {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.guideTerms[guide])
}

// TermsForSection returns the terms that link to section, in index order.
func (idx *Index) TermsForSection(section glossary.SectionID) []glossary.TermRef {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.sectionTerms[section])
}

// Related returns terms sharing at least one guide with ref, most shared
// guides first and index order among equals. A limit <= 0 returns all.
func (idx *Index) Related(ref glossary.TermRef, limit int) []glossary.TermRef {
	if idx == nil {
		return nil
	}
	ref = normalize(ref)
	own, ok := idx.termGuides[ref]
	if !ok {
		return nil
	}

	type candidate struct {
		ref    glossary.TermRef
		shared int
		pos    position
	}
	shared := make(map[glossary.TermRef]int)
	for _, g := range own {
		for _, other := range idx.guideTerms[g] {
			if other != ref {
				shared[other]++
			}
		}
	}

	candidates := make([]candidate, 0, len(shared))
	for r, n := range shared {
		candidates = append(candidates, candidate{ref: r, shared: n, pos: idx.positions[r]})
	}
	slices.SortFunc(candidates, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(b.shared, a.shared),
			cmp.Compare(a.pos.group, b.pos.group),
			cmp.Compare(a.pos.term, b.pos.term),
		)
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]glossary.TermRef, len(candidates))
	for i, c := range candidates {
		out[i] = c.ref
	}
	return out
}

// Len returns the number of indexed terms.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return idx.terms
}

// Stats summarizes the index.
func (idx *Index) Stats() Stats {
	if idx == nil {
		return Stats{}
	}
	return Stats{
		Categories: len(idx.groups),
		Terms:      idx.terms,
		Guides:     len(idx.guides),
		Sections:   len(idx.sectionTerms),
	}
}

func normalize(ref glossary.TermRef) glossary.TermRef {
	return glossary.TermRef{Category: ref.Category.Normalize(), Term: ref.Term.Normalize()}
}
