// SPDX-License-Identifier: MPL-2.0

// Package export serializes a built index so static front ends can load it
// without running the pipeline.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/index"
)

const (
	// FormatJSON writes indented JSON.
	FormatJSON Format = "json"
	// FormatYAML writes YAML.
	FormatYAML Format = "yaml"
	// FormatTOML writes TOML with categories as an array of tables.
	FormatTOML Format = "toml"

	// SchemaVersion is bumped when the document layout changes.
	SchemaVersion = 1
)

// ErrInvalidFormat is returned for an unknown export format.
var ErrInvalidFormat = errors.New("invalid export format")

type (
	// Format names an output encoding.
	Format string

	// InvalidFormatError is returned when a Format is not supported.
	InvalidFormatError struct {
		Value Format
	}

	// Document is the exported index.
	Document struct {
		Version    int        `json:"version" yaml:"version" toml:"version"`
		Stats      Stats      `json:"stats" yaml:"stats" toml:"stats"`
		Categories []Category `json:"categories" yaml:"categories" toml:"categories"`
	}

	// Stats mirrors index.Stats.
	Stats struct {
		Categories int `json:"categories" yaml:"categories" toml:"categories"`
		Terms      int `json:"terms" yaml:"terms" toml:"terms"`
		Guides     int `json:"guides" yaml:"guides" toml:"guides"`
		Sections   int `json:"sections" yaml:"sections" toml:"sections"`
	}

	// Category is one exported group.
	Category struct {
		Label string `json:"category" yaml:"category" toml:"category"`
		Terms []Term `json:"terms" yaml:"terms" toml:"terms"`
	}

	// Term is one exported entry.
	Term struct {
		Name                 string   `json:"term" yaml:"term" toml:"term"`
		Definition           string   `json:"definition" yaml:"definition" toml:"definition"`
		PrimaryReference     string   `json:"primary_reference" yaml:"primary_reference" toml:"primary_reference"`
		AdditionalReferences []string `json:"additional_references" yaml:"additional_references" toml:"additional_references"`
		Section              string   `json:"section,omitempty" yaml:"section,omitempty" toml:"section,omitempty"`
		AdditionalSections   []string `json:"additional_sections" yaml:"additional_sections" toml:"additional_sections"`
		Guides               []string `json:"guides" yaml:"guides" toml:"guides"`
	}
)

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid export format %q (valid: %s)", e.Value, strings.Join(formatNames(), ", "))
}

func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

func formatNames() []string {
	names := make([]string, 0, 3)
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return names
}

func (f Format) String() string { return string(f) }

// IsValid returns whether f is a supported format, and if not, the
// validation errors.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML:
		return true, nil
	default:
		return false, []error{&InvalidFormatError{Value: f}}
	}
}

// ParseFormat parses a case-insensitive format name. "yml" is accepted as
// an alias for yaml.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		f = FormatYAML
	}
	if ok, errs := f.IsValid(); !ok {
		return "", errs[0]
	}
	return f, nil
}

// NewDocument converts groups into the export layout.
func NewDocument(idx *index.Index) *Document {
	st := idx.Stats()
	doc := &Document{
		Version: SchemaVersion,
		Stats: Stats{
			Categories: st.Categories,
			Terms:      st.Terms,
			Guides:     st.Guides,
			Sections:   st.Sections,
		},
		Categories: []Category{},
	}
	for _, g := range idx.Groups() {
		c := Category{Label: g.Category.String(), Terms: make([]Term, 0, len(g.Terms))}
		for _, e := range g.Terms {
			c.Terms = append(c.Terms, Term{
				Name:                 e.Name.String(),
				Definition:           e.Definition,
				PrimaryReference:     string(e.PrimaryReference),
				AdditionalReferences: toStrings(e.AdditionalReferences),
				Section:              string(e.Section),
				AdditionalSections:   toStrings(e.AdditionalSections),
				Guides:               toStrings(e.Guides),
			})
		}
		doc.Categories = append(doc.Categories, c)
	}
	return doc
}

// Write encodes idx to w in the given format.
func Write(w io.Writer, format Format, idx *index.Index) error {
	doc := NewDocument(idx)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(doc)
	default:
		return &InvalidFormatError{Value: format}
	}
}

func toStrings[S ~string](in []S) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}
