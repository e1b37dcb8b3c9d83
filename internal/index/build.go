// SPDX-License-Identifier: MPL-2.0

package index

import (
	"errors"
	"strings"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/diagnostic"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/markup"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/guides"
)

type (
	// Input is one category as contributed by one term module.
	Input struct {
		// Module is the contributing module id, used in diagnostics.
		Module string
		// Category is the raw category from the module.
		Category glossary.Category
	}

	// BuildResult bundles the built index with the diagnostics produced while
	// validating and merging the inputs.
	BuildResult struct {
		Index       *Index
		Diagnostics []diagnostic.Diagnostic
	}

	// groupBuilder accumulates one merged category.
	groupBuilder struct {
		label   glossary.CategoryLabel
		modules []string
		terms   []Entry
	}
)

// Build merges inputs into an Index. Inputs are processed in order; that
// order determines category order and term order within each category.
// Build never fails: bad data is excluded and reported in Diagnostics.
// Building twice from the same inputs yields deep-equal results.
func Build(inputs []Input, resolver guides.SectionResolver) *BuildResult {
	var (
		diags   []diagnostic.Diagnostic
		order   []*groupBuilder
		byLabel = make(map[glossary.CategoryLabel]*groupBuilder)
		seen    = make(map[glossary.TermRef]string)
	)

	for _, in := range inputs {
		label := in.Category.Label.Normalize()
		if ok, errs := label.IsValid(); !ok {
			diags = append(diags, diagnostic.Errorf(diagnostic.CodeCategoryInvalid, in.Module,
				"category with %d term(s) excluded: blank label", len(in.Category.Terms)).WithCause(errors.Join(errs...)))
			continue
		}

		gb, ok := byLabel[label]
		if !ok {
			gb = &groupBuilder{label: label}
			byLabel[label] = gb
			order = append(order, gb)
		}
		gb.modules = append(gb.modules, in.Module)

		for _, term := range in.Category.Terms {
			ref := term.Ref(label)
			if ok, errs := term.IsValid(); !ok {
				diags = append(diags, diagnostic.Errorf(diagnostic.CodeTermInvalid, in.Module,
					"term %s excluded: %s", ref, joinErrors(errs)).WithCause(errors.Join(errs...)))
				continue
			}
			if first, dup := seen[ref]; dup {
				diags = append(diags, diagnostic.Errorf(diagnostic.CodeDuplicateTerm, in.Module,
					"duplicate term %s ignored; first defined in %s", ref, first))
				continue
			}
			seen[ref] = in.Module

			entry, entryDiags := newEntry(term, ref, in.Module, resolver)
			diags = append(diags, entryDiags...)
			gb.terms = append(gb.terms, entry)
		}
	}

	groups := make([]Group, 0, len(order))
	for _, gb := range order {
		if len(gb.terms) == 0 {
			diags = append(diags, diagnostic.Warnf(diagnostic.CodeCategoryEmpty, strings.Join(gb.modules, ","),
				"category %q has no valid terms and was dropped", gb.label))
			continue
		}
		groups = append(groups, Group{Category: gb.label, Terms: gb.terms})
	}

	return &BuildResult{Index: newIndex(groups), Diagnostics: diags}
}

// BuildCategories builds an index from bare categories with no module
// provenance.
func BuildCategories(categories []glossary.Category, resolver guides.SectionResolver) *BuildResult {
	inputs := make([]Input, len(categories))
	for i, c := range categories {
		inputs[i] = Input{Category: c}
	}
	return Build(inputs, resolver)
}

func newEntry(t glossary.Term, ref glossary.TermRef, module string, resolver guides.SectionResolver) (Entry, []diagnostic.Diagnostic) {
	var diags []diagnostic.Diagnostic

	explicit, invalid := ExplicitGuides(t)
	for _, g := range invalid {
		diags = append(diags, diagnostic.Errorf(diagnostic.CodeGuideInvalid, module,
			"term %s: ignoring malformed guide id %q", ref, g))
	}
	inferred, unresolved := InferGuides(t, resolver)
	for _, s := range unresolved {
		diags = append(diags, diagnostic.Warnf(diagnostic.CodeSectionUnresolved, module,
			"term %s: no guide owns section %q", ref, s))
	}

	t = t.Clone()
	return Entry{
		Name:                 ref.Term,
		Definition:           t.Definition,
		PrimaryReference:     t.PrimaryReference,
		AdditionalReferences: nonNil(t.AdditionalReferences),
		Section:              t.Section,
		AdditionalSections:   nonNil(t.AdditionalSections),
		Guides:               union(explicit, inferred),
		Module:               module,
		plain:                markup.Strip(t.Definition),
	}, diags
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
