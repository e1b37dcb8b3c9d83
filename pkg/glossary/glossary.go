// SPDX-License-Identifier: MPL-2.0

package glossary

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/emilyeserven/npm-package-guide-sub003/pkg/cueutil"
)

// ModuleSuffix is the filename suffix that marks a file as a term module.
const ModuleSuffix = ".glossary.cue"

var (
	//go:embed glossary_schema.cue
	moduleSchema []byte

	// ErrMissingDefinition is returned by Term.IsValid for a blank definition.
	ErrMissingDefinition = errors.New("missing definition")
)

type (
	// Term is one glossary definition.
	Term struct {
		// Name is the display name, unique within its category.
		Name TermName `json:"term"`
		// Definition is rich text and may embed inline markup.
		Definition string `json:"definition"`
		// PrimaryReference identifies the main external source.
		PrimaryReference ReferenceID `json:"primary_reference"`
		// AdditionalReferences lists further external sources in order.
		AdditionalReferences []ReferenceID `json:"additional_references,omitempty"`
		// Section is the guide section this term is most relevant to (optional).
		Section SectionID `json:"section,omitempty"`
		// AdditionalSections lists further related sections in order.
		AdditionalSections []SectionID `json:"additional_sections,omitempty"`
		// Guides are explicit guide associations. When empty the guide is
		// inferred from the sections.
		Guides []GuideID `json:"guides,omitempty"`
	}

	// Category is a named, ordered grouping of terms.
	Category struct {
		Label CategoryLabel `json:"category"`
		Terms []Term        `json:"terms"`
	}

	// Module is the decoded content of one term module file.
	Module struct {
		// Guide is the guide the module was written for. It is informational
		// and does not affect guide inference.
		Guide      GuideID    `json:"guide,omitempty"`
		Categories []Category `json:"categories"`
	}

	// TermRef identifies a term by its (category, term) pair, which is the
	// identity used for deduplication.
	TermRef struct {
		Category CategoryLabel `json:"category"`
		Term     TermName      `json:"term"`
	}
)

// Ref returns the identity of t inside category c, with both parts normalized.
func (t Term) Ref(c CategoryLabel) TermRef {
	return TermRef{Category: c.Normalize(), Term: t.Name.Normalize()}
}

// Sections returns the primary section followed by the additional sections,
// skipping blanks.
func (t Term) Sections() []SectionID {
	out := make([]SectionID, 0, 1+len(t.AdditionalSections))
	if t.Section != "" {
		out = append(out, t.Section)
	}
	for _, s := range t.AdditionalSections {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// IsValid reports whether the term carries the required fields: a name, a
// definition and a primary reference.
func (t Term) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := t.Name.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if strings.TrimSpace(t.Definition) == "" {
		errs = append(errs, ErrMissingDefinition)
	}
	if ok, fieldErrs := t.PrimaryReference.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	return len(errs) == 0, errs
}

// Clone returns a deep copy of t.
func (t Term) Clone() Term {
	t.AdditionalReferences = slices.Clone(t.AdditionalReferences)
	t.AdditionalSections = slices.Clone(t.AdditionalSections)
	t.Guides = slices.Clone(t.Guides)
	return t
}

// Clone returns a deep copy of c.
func (c Category) Clone() Category {
	terms := make([]Term, len(c.Terms))
	for i, t := range c.Terms {
		terms[i] = t.Clone()
	}
	return Category{Label: c.Label, Terms: terms}
}

// String renders the ref as "Category/Term".
func (r TermRef) String() string {
	return fmt.Sprintf("%s/%s", r.Category, r.Term)
}

// IsModuleFile reports whether name follows the term module naming convention.
func IsModuleFile(name string) bool {
	base := name
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		base = name[i+1:]
	}
	return strings.HasSuffix(base, ModuleSuffix) && len(base) > len(ModuleSuffix)
}

// ModuleName returns the file name of a term module without directories and
// without the ".glossary.cue" suffix.
func ModuleName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ModuleSuffix)
}

// Parse decodes and validates a term module.
func Parse(data []byte, filename string) (*Module, error) {
	result, err := cueutil.ParseAndDecode[Module](moduleSchema, data, "#TermModule", cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

// ParseFS decodes and validates the term module stored at name in fsys.
// label is used in error messages; when empty, name is used.
func ParseFS(fsys fs.FS, name, label string) (*Module, error) {
	opts := []cueutil.Option{}
	if label != "" {
		opts = append(opts, cueutil.WithFilename(label))
	}
	result, err := cueutil.ParseFS[Module](fsys, name, moduleSchema, "#TermModule", opts...)
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}
