// SPDX-License-Identifier: MPL-2.0

package guides

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/emilyeserven/npm-package-guide-sub003/pkg/cueutil"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

var (
	//go:embed registry_schema.cue
	registrySchema []byte

	// ErrDuplicateGuide is returned when two guides share an id.
	ErrDuplicateGuide = errors.New("duplicate guide id")
	// ErrSectionOwnedTwice is returned when a section id is listed by more
	// than one guide.
	ErrSectionOwnedTwice = errors.New("section owned by more than one guide")
)

type (
	// SectionResolver maps a section id to the guide that owns it. The second
	// result is false when the section is unknown.
	SectionResolver interface {
		GuideForSection(id glossary.SectionID) (glossary.GuideID, bool)
	}

	// ResolverFunc adapts a plain function to SectionResolver.
	ResolverFunc func(id glossary.SectionID) (glossary.GuideID, bool)

	// Section is one addressable part of a guide.
	Section struct {
		ID    glossary.SectionID `json:"id"`
		Title string             `json:"title,omitempty"`
	}

	// Guide describes one guide and the sections it owns.
	Guide struct {
		ID       glossary.GuideID `json:"id"`
		Title    string           `json:"title"`
		Sections []Section        `json:"sections"`
	}

	// Registry is an immutable set of guides with a section ownership lookup.
	Registry struct {
		guides   []Guide
		byID     map[glossary.GuideID]int
		sections map[glossary.SectionID]glossary.GuideID
	}

	document struct {
		Guides []Guide `json:"guides"`
	}
)

// GuideForSection implements SectionResolver.
func (f ResolverFunc) GuideForSection(id glossary.SectionID) (glossary.GuideID, bool) {
	return f(id)
}

// New builds a registry from guides. Guide ids must be valid and unique and
// each section may belong to a single guide.
func New(guides []Guide) (*Registry, error) {
	r := &Registry{
		guides:   make([]Guide, 0, len(guides)),
		byID:     make(map[glossary.GuideID]int, len(guides)),
		sections: make(map[glossary.SectionID]glossary.GuideID),
	}

	for _, g := range guides {
		if ok, errs := g.ID.IsValid(); !ok {
			return nil, errors.Join(errs...)
		}
		if _, exists := r.byID[g.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateGuide, g.ID)
		}
		for _, s := range g.Sections {
			if ok, errs := s.ID.IsValid(); !ok {
				return nil, fmt.Errorf("guide %s: %w", g.ID, errors.Join(errs...))
			}
			if owner, taken := r.sections[s.ID]; taken {
				return nil, fmt.Errorf("%w: %s is listed by %s and %s", ErrSectionOwnedTwice, s.ID, owner, g.ID)
			}
			r.sections[s.ID] = g.ID
		}
		r.byID[g.ID] = len(r.guides)
		r.guides = append(r.guides, g.clone())
	}

	return r, nil
}

// Parse decodes a guides.cue document and builds a registry from it.
func Parse(data []byte, filename string) (*Registry, error) {
	result, err := cueutil.ParseAndDecode[document](registrySchema, data, "#Registry", cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	reg, err := New(result.Value.Guides)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return reg, nil
}

// ParseFS is Parse for a file inside fsys.
func ParseFS(fsys fs.FS, name string) (*Registry, error) {
	result, err := cueutil.ParseFS[document](fsys, name, registrySchema, "#Registry")
	if err != nil {
		return nil, err
	}
	reg, err := New(result.Value.Guides)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return reg, nil
}

// GuideForSection implements SectionResolver.
func (r *Registry) GuideForSection(id glossary.SectionID) (glossary.GuideID, bool) {
	if r == nil {
		return "", false
	}
	g, ok := r.sections[id]
	return g, ok
}

// Guides returns all guides in registry order.
func (r *Registry) Guides() []Guide {
	if r == nil {
		return nil
	}
	out := make([]Guide, len(r.guides))
	for i, g := range r.guides {
		out[i] = g.clone()
	}
	return out
}

// Guide looks up a guide by id.
func (r *Registry) Guide(id glossary.GuideID) (Guide, bool) {
	if r == nil {
		return Guide{}, false
	}
	i, ok := r.byID[id]
	if !ok {
		return Guide{}, false
	}
	return r.guides[i].clone(), true
}

// Section looks up a section and its owning guide.
func (r *Registry) Section(id glossary.SectionID) (Section, glossary.GuideID, bool) {
	owner, ok := r.GuideForSection(id)
	if !ok {
		return Section{}, "", false
	}
	g := r.guides[r.byID[owner]]
	for _, s := range g.Sections {
		if s.ID == id {
			return s, owner, true
		}
	}
	return Section{}, "", false
}

func (g Guide) clone() Guide {
	g.Sections = slices.Clone(g.Sections)
	return g
}
