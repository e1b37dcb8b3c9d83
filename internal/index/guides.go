// SPDX-License-Identifier: MPL-2.0

package index

import (
	"slices"

	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/guides"
)

// ExplicitGuides returns the term's own guide ids in declaration order
// without repeats. Malformed ids are returned separately and never become
// part of the effective guide set.
func ExplicitGuides(t glossary.Term) (valid, invalid []glossary.GuideID) {
	for _, g := range t.Guides {
		if ok, _ := g.IsValid(); !ok {
			invalid = append(invalid, g)
			continue
		}
		if !slices.Contains(valid, g) {
			valid = append(valid, g)
		}
	}
	return valid, invalid
}

// InferGuides maps the term's section and additional sections to their owning
// guides, in section order without repeats. Sections the resolver does not
// know are returned as unresolved. A nil resolver resolves nothing.
func InferGuides(t glossary.Term, resolver guides.SectionResolver) (inferred []glossary.GuideID, unresolved []glossary.SectionID) {
	for _, s := range t.Sections() {
		var (
			g  glossary.GuideID
			ok bool
		)
		if resolver != nil {
			g, ok = resolver.GuideForSection(s)
		}
		if !ok {
			unresolved = append(unresolved, s)
			continue
		}
		if !slices.Contains(inferred, g) {
			inferred = append(inferred, g)
		}
	}
	return inferred, unresolved
}

// EffectiveGuides is the union of ExplicitGuides and InferGuides, explicit
// ids first.
func EffectiveGuides(t glossary.Term, resolver guides.SectionResolver) []glossary.GuideID {
	explicit, _ := ExplicitGuides(t)
	inferred, _ := InferGuides(t, resolver)
	return union(explicit, inferred)
}

func union(a, b []glossary.GuideID) []glossary.GuideID {
	out := make([]glossary.GuideID, 0, len(a)+len(b))
	for _, g := range slices.Concat(a, b) {
		if !slices.Contains(out, g) {
			out = append(out, g)
		}
	}
	return out
}
