// SPDX-License-Identifier: MPL-2.0

package glossary

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidGuideID is the sentinel error wrapped by InvalidGuideIDError.
	ErrInvalidGuideID = errors.New("invalid guide id")
	// ErrInvalidSectionID is the sentinel error wrapped by InvalidSectionIDError.
	ErrInvalidSectionID = errors.New("invalid section id")
	// ErrInvalidReferenceID is the sentinel error wrapped by InvalidReferenceIDError.
	ErrInvalidReferenceID = errors.New("invalid reference id")
	// ErrInvalidCategoryLabel is the sentinel error wrapped by InvalidCategoryLabelError.
	ErrInvalidCategoryLabel = errors.New("invalid category label")
	// ErrInvalidTermName is the sentinel error wrapped by InvalidTermNameError.
	ErrInvalidTermName = errors.New("invalid term name")

	guideIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

type (
	// GuideID identifies a guide ("kafka", "kubernetes"). Guide ids are
	// lowercase ASCII letters, digits and dashes, starting with a letter or
	// digit.
	GuideID string

	// InvalidGuideIDError is returned when a GuideID does not match the
	// guide id pattern.
	InvalidGuideIDError struct {
		Value GuideID
	}

	// SectionID identifies one in-product guide section. It must be non-empty
	// and contain no whitespace.
	SectionID string

	// InvalidSectionIDError is returned when a SectionID is empty or contains
	// whitespace.
	InvalidSectionIDError struct {
		Value SectionID
	}

	// ReferenceID identifies an external source document, usually a URL.
	ReferenceID string

	// InvalidReferenceIDError is returned when a ReferenceID is empty or
	// whitespace-only.
	InvalidReferenceIDError struct {
		Value ReferenceID
	}

	// CategoryLabel is the display label of a category. Labels are grouping
	// keys: equal labels from different modules denote the same category.
	CategoryLabel string

	// InvalidCategoryLabelError is returned when a CategoryLabel is empty or
	// whitespace-only.
	InvalidCategoryLabelError struct {
		Value CategoryLabel
	}

	// TermName is the display name of a term.
	TermName string

	// InvalidTermNameError is returned when a TermName is empty or
	// whitespace-only.
	InvalidTermNameError struct {
		Value TermName
	}
)

// String returns the string representation of the GuideID.
func (g GuideID) String() string { return string(g) }

// IsValid returns whether the GuideID matches the guide id pattern.
func (g GuideID) IsValid() (bool, []error) {
	if !guideIDPattern.MatchString(string(g)) {
		return false, []error{&InvalidGuideIDError{Value: g}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidGuideIDError) Error() string {
	return fmt.Sprintf("invalid guide id %q (want lowercase letters, digits and dashes)", e.Value)
}

// Unwrap returns ErrInvalidGuideID for errors.Is() compatibility.
func (e *InvalidGuideIDError) Unwrap() error { return ErrInvalidGuideID }

// String returns the string representation of the SectionID.
func (s SectionID) String() string { return string(s) }

// IsValid returns whether the SectionID is non-empty and free of whitespace.
func (s SectionID) IsValid() (bool, []error) {
	if s == "" || strings.ContainsAny(string(s), " \t\r\n") {
		return false, []error{&InvalidSectionIDError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidSectionIDError) Error() string {
	return fmt.Sprintf("invalid section id %q (must be non-empty without whitespace)", e.Value)
}

// Unwrap returns ErrInvalidSectionID for errors.Is() compatibility.
func (e *InvalidSectionIDError) Unwrap() error { return ErrInvalidSectionID }

// String returns the string representation of the ReferenceID.
func (r ReferenceID) String() string { return string(r) }

// IsValid returns whether the ReferenceID is non-blank.
func (r ReferenceID) IsValid() (bool, []error) {
	if strings.TrimSpace(string(r)) == "" {
		return false, []error{&InvalidReferenceIDError{Value: r}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidReferenceIDError) Error() string {
	return fmt.Sprintf("invalid reference id %q (must not be empty)", e.Value)
}

// Unwrap returns ErrInvalidReferenceID for errors.Is() compatibility.
func (e *InvalidReferenceIDError) Unwrap() error { return ErrInvalidReferenceID }

// String returns the string representation of the CategoryLabel.
func (c CategoryLabel) String() string { return string(c) }

// IsValid returns whether the CategoryLabel is non-blank.
func (c CategoryLabel) IsValid() (bool, []error) {
	if strings.TrimSpace(string(c)) == "" {
		return false, []error{&InvalidCategoryLabelError{Value: c}}
	}
	return true, nil
}

// Normalize trims surrounding whitespace so "Core " and "Core" group together.
func (c CategoryLabel) Normalize() CategoryLabel {
	return CategoryLabel(strings.TrimSpace(string(c)))
}

// Error implements the error interface.
func (e *InvalidCategoryLabelError) Error() string {
	return fmt.Sprintf("invalid category label %q (must not be empty)", e.Value)
}

// Unwrap returns ErrInvalidCategoryLabel for errors.Is() compatibility.
func (e *InvalidCategoryLabelError) Unwrap() error { return ErrInvalidCategoryLabel }

// String returns the string representation of the TermName.
func (t TermName) String() string { return string(t) }

// IsValid returns whether the TermName is non-blank.
func (t TermName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(t)) == "" {
		return false, []error{&InvalidTermNameError{Value: t}}
	}
	return true, nil
}

// Normalize trims surrounding whitespace.
func (t TermName) Normalize() TermName {
	return TermName(strings.TrimSpace(string(t)))
}

// Error implements the error interface.
func (e *InvalidTermNameError) Error() string {
	return fmt.Sprintf("invalid term name %q (must not be empty)", e.Value)
}

// Unwrap returns ErrInvalidTermName for errors.Is() compatibility.
func (e *InvalidTermNameError) Unwrap() error { return ErrInvalidTermName }
