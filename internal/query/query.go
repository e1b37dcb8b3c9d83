// SPDX-License-Identifier: MPL-2.0

// Package query filters a built glossary index.
//
// The text, category and guide filters are combined with AND. Results keep
// index order and never contain empty categories. Queries never fail: a
// filter that matches nothing, including an unknown category or guide,
// yields an empty, non-nil result.
package query

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/index"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

// AllCategories is the category filter value that disables category filtering.
const AllCategories = "all"

type (
	// Filter selects terms. Zero values disable the corresponding filter.
	Filter struct {
		// Text is matched case-insensitively as a substring of the term name
		// or of the definition with markup removed.
		Text string `json:"q,omitempty"`
		// Category is an exact category label, or "all"/empty for every category.
		Category string `json:"category,omitempty"`
		// Guide is an exact guide id, or empty for every guide.
		Guide glossary.GuideID `json:"guide,omitempty"`
	}

	// CategoryCount is the number of matching terms in one category.
	CategoryCount struct {
		Category glossary.CategoryLabel `json:"category"`
		Count    int                    `json:"count"`
	}

	matcher struct {
		needle   string
		category glossary.CategoryLabel
		guide    glossary.GuideID
		fold     cases.Caser
	}
)

// IsZero reports whether the filter selects everything.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Text) == "" && categoryOf(f) == "" && f.Guide == ""
}

// Run applies f to idx and returns freshly allocated groups. Groups without
// a matching term are omitted.
func Run(idx *index.Index, f Filter) []index.Group {
	m := newMatcher(f)
	out := []index.Group{}
	for _, g := range idx.Groups() {
		if m.category != "" && g.Category != m.category {
			continue
		}
		var terms []index.Entry
		for _, e := range g.Terms {
			if m.matches(e) {
				terms = append(terms, e)
			}
		}
		if len(terms) > 0 {
			out = append(out, index.Group{Category: g.Category, Terms: terms})
		}
	}
	return out
}

// Total counts the terms across groups.
func Total(groups []index.Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Terms)
	}
	return n
}

// Counts returns, for every category in index order, how many terms match
// the text and guide filters. The category filter is ignored so the counts
// can label category controls.
func Counts(idx *index.Index, f Filter) []CategoryCount {
	f.Category = ""
	m := newMatcher(f)
	groups := idx.Groups()
	out := make([]CategoryCount, 0, len(groups))
	for _, g := range groups {
		n := 0
		for _, e := range g.Terms {
			if m.matches(e) {
				n++
			}
		}
		out = append(out, CategoryCount{Category: g.Category, Count: n})
	}
	return out
}

// Matches reports whether a single entry satisfies the text and guide
// filters.
func Matches(e index.Entry, f Filter) bool {
	return newMatcher(f).matches(e)
}

func newMatcher(f Filter) *matcher {
	// A Caser keeps state, so each query gets its own.
	fold := cases.Fold()
	// Plain definitions have their whitespace collapsed; the needle follows.
	return &matcher{
		needle:   fold.String(strings.Join(strings.Fields(f.Text), " ")),
		category: categoryOf(f),
		guide:    glossary.GuideID(strings.TrimSpace(string(f.Guide))),
		fold:     fold,
	}
}

func (m *matcher) matches(e index.Entry) bool {
	if m.guide != "" && !slices.Contains(e.Guides, m.guide) {
		return false
	}
	if m.needle == "" {
		return true
	}
	return strings.Contains(m.fold.String(e.Name.String()), m.needle) ||
		strings.Contains(m.fold.String(e.PlainDefinition()), m.needle)
}

func categoryOf(f Filter) glossary.CategoryLabel {
	c := strings.TrimSpace(f.Category)
	if c == AllCategories {
		return ""
	}
	return glossary.CategoryLabel(c)
}
