// SPDX-License-Identifier: MPL-2.0

package present

import (
	"strings"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/query"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

// State is the filter state owned by a glossary view.
type State struct {
	Search   string
	Category string
	Guide    glossary.GuideID
}

// NewState returns the unfiltered state.
func NewState() State {
	return State{Category: query.AllCategories}
}

// Clear resets every filter.
func (s *State) Clear() {
	*s = NewState()
}

// Filter converts the state into a query filter.
func (s State) Filter() query.Filter {
	return query.Filter{Text: s.Search, Category: s.Category, Guide: s.Guide}
}

// IsFiltered reports whether any filter narrows the result.
func (s State) IsFiltered() bool {
	return !s.Filter().IsZero()
}

// ActiveCategory returns the selected category, or "all".
func (s State) ActiveCategory() string {
	c := strings.TrimSpace(s.Category)
	if c == "" {
		return query.AllCategories
	}
	return c
}
