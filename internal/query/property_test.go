// SPDX-License-Identifier: MPL-2.0

package query

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/index"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

func genFilter() *rapid.Generator[Filter] {
	return rapid.Custom(func(t *rapid.T) Filter {
		return Filter{
			Text:     rapid.SampledFrom([]string{"", "a", "E", "replica", "<code>", "zz"}).Draw(t, "text"),
			Category: rapid.SampledFrom([]string{"", AllCategories, "Kafka Core", "Distributed Systems", "Redis Basics", "Missing"}).Draw(t, "category"),
			Guide:    rapid.SampledFrom([]glossary.GuideID{"", "kafka", "kubernetes", "redis", "missing"}).Draw(t, "guide"),
		}
	})
}

func refs(groups []index.Group) map[glossary.TermRef]bool {
	out := make(map[glossary.TermRef]bool)
	for _, g := range groups {
		for _, e := range g.Terms {
			out[glossary.TermRef{Category: g.Category, Term: e.Name}] = true
		}
	}
	return out
}

// A combined filter selects exactly the intersection of the single filters.
func TestProperty_FiltersAreConjunctive(t *testing.T) {
	t.Parallel()

	idx := testIndex()
	rapid.Check(t, func(t *rapid.T) {
		f := genFilter().Draw(t, "filter")

		combined := refs(Run(idx, f))
		byText := refs(Run(idx, Filter{Text: f.Text}))
		byCategory := refs(Run(idx, Filter{Category: f.Category}))
		byGuide := refs(Run(idx, Filter{Guide: f.Guide}))

		for ref := range refs(Run(idx, Filter{})) {
			want := byText[ref] && byCategory[ref] && byGuide[ref]
			if combined[ref] != want {
				t.Fatalf("%s: combined=%v, intersection=%v for %+v", ref, combined[ref], want, f)
			}
		}
	})
}

func TestProperty_NoEmptyGroups(t *testing.T) {
	t.Parallel()

	idx := testIndex()
	rapid.Check(t, func(t *rapid.T) {
		f := genFilter().Draw(t, "filter")
		got := Run(idx, f)
		if got == nil {
			t.Fatal("result must not be nil")
		}
		for _, g := range got {
			if len(g.Terms) == 0 {
				t.Fatalf("empty group %q for %+v", g.Category, f)
			}
		}
	})
}
