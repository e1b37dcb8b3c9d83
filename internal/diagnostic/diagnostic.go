// SPDX-License-Identifier: MPL-2.0

// Package diagnostic defines the structured, non-fatal findings produced while
// discovering term modules and building the glossary index. Diagnostics are
// returned to callers instead of being written to stderr so each surface
// (CLI, HTTP API, watcher) can decide how to render them.
package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

const (
	// SeverityWarning indicates a finding that did not remove any data.
	SeverityWarning Severity = "warning"
	// SeverityError indicates data was skipped or excluded from the index.
	SeverityError Severity = "error"

	// CodeTermDirMissing: a configured term directory does not exist.
	CodeTermDirMissing Code = "term_dir_missing"
	// CodeTermDirScanFailed: a term source could not be listed.
	CodeTermDirScanFailed Code = "term_dir_scan_failed"
	// CodeModuleLoadSkipped: a term module failed to read, parse or validate.
	CodeModuleLoadSkipped Code = "module_load_skipped"
	// CodeCategoryInvalid: a category has a blank label and was excluded.
	CodeCategoryInvalid Code = "category_invalid"
	// CodeCategoryEmpty: a category ended up without valid terms and was dropped.
	CodeCategoryEmpty Code = "category_empty"
	// CodeTermInvalid: a term misses a required field and was excluded.
	CodeTermInvalid Code = "term_invalid"
	// CodeDuplicateTerm: a (term, category) pair appeared more than once.
	CodeDuplicateTerm Code = "duplicate_term"
	// CodeGuideInvalid: an explicit guide id is malformed and was ignored.
	CodeGuideInvalid Code = "guide_invalid"
	// CodeSectionUnresolved: no guide owns a section a term links to.
	CodeSectionUnresolved Code = "section_unresolved"
)

var (
	// ErrInvalidSeverity is the sentinel error wrapped by InvalidSeverityError.
	ErrInvalidSeverity = errors.New("invalid diagnostic severity")
	// ErrInvalidCode is the sentinel error wrapped by InvalidCodeError.
	ErrInvalidCode = errors.New("invalid diagnostic code")
)

type (
	// Severity is the diagnostic level.
	Severity string

	// InvalidSeverityError is returned when a Severity is not recognized.
	InvalidSeverityError struct {
		Value Severity
	}

	// Code is a machine-readable diagnostic identifier.
	Code string

	// InvalidCodeError is returned when a Code is not recognized.
	InvalidCodeError struct {
		Value Code
	}

	// Diagnostic is one structured, non-fatal finding.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity `json:"severity"`
		// Code is a machine-readable identifier (e.g., "duplicate_term").
		Code Code `json:"code"`
		// Message is the human-readable description.
		Message string `json:"message"`
		// Path is the module id or file path involved (optional).
		Path string `json:"path,omitempty"`
		// Cause is the underlying error (optional).
		Cause error `json:"-"`
	}
)

// String returns the string representation of the Severity.
func (s Severity) String() string { return string(s) }

// IsValid returns whether the Severity is one of the defined levels.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityWarning, SeverityError:
		return true, nil
	default:
		return false, []error{&InvalidSeverityError{Value: s}}
	}
}

// Error implements the error interface.
func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("invalid diagnostic severity %q (valid: warning, error)", e.Value)
}

// Unwrap returns ErrInvalidSeverity for errors.Is() compatibility.
func (e *InvalidSeverityError) Unwrap() error { return ErrInvalidSeverity }

// String returns the string representation of the Code.
func (c Code) String() string { return string(c) }

// IsValid returns whether the Code is one of the defined codes.
func (c Code) IsValid() (bool, []error) {
	switch c {
	case CodeTermDirMissing, CodeTermDirScanFailed, CodeModuleLoadSkipped,
		CodeCategoryInvalid, CodeCategoryEmpty, CodeTermInvalid,
		CodeDuplicateTerm, CodeGuideInvalid, CodeSectionUnresolved:
		return true, nil
	default:
		return false, []error{&InvalidCodeError{Value: c}}
	}
}

// Error implements the error interface.
func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid diagnostic code %q", e.Value)
}

// Unwrap returns ErrInvalidCode for errors.Is() compatibility.
func (e *InvalidCodeError) Unwrap() error { return ErrInvalidCode }

// New creates a Diagnostic without a path.
func New(severity Severity, code Code, message string) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message}
}

// NewWithPath creates a Diagnostic tied to a module id or file path.
func NewWithPath(severity Severity, code Code, message, path string) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message, Path: path}
}

// Warnf creates a warning Diagnostic with a formatted message.
func Warnf(code Code, path, format string, args ...any) Diagnostic {
	return NewWithPath(SeverityWarning, code, fmt.Sprintf(format, args...), path)
}

// Errorf creates an error Diagnostic with a formatted message.
func Errorf(code Code, path, format string, args ...any) Diagnostic {
	return NewWithPath(SeverityError, code, fmt.Sprintf(format, args...), path)
}

// WithCause returns a copy of d carrying cause.
func (d Diagnostic) WithCause(cause error) Diagnostic {
	d.Cause = cause
	return d
}

// String renders "severity code: message (path)".
func (d Diagnostic) String() string {
	if d.Path == "" {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s %s: %s (%s)", d.Severity, d.Code, d.Message, d.Path)
}

// HasErrors reports whether any diagnostic has SeverityError.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CountByCode tallies diagnostics per code.
func CountByCode(diags []Diagnostic) map[Code]int {
	counts := make(map[Code]int)
	for _, d := range diags {
		counts[d.Code]++
	}
	return counts
}

// Log writes every diagnostic to logger at warning level. Data problems are
// never fatal, so even error-severity findings are reported as warnings with
// the severity kept as an attribute.
func Log(ctx context.Context, logger *slog.Logger, diags []Diagnostic) {
	if logger == nil {
		return
	}
	for _, d := range diags {
		attrs := []slog.Attr{
			slog.String("code", d.Code.String()),
			slog.String("severity", d.Severity.String()),
		}
		if d.Path != "" {
			attrs = append(attrs, slog.String("path", d.Path))
		}
		if d.Cause != nil {
			attrs = append(attrs, slog.Any("error", d.Cause))
		}
		logger.LogAttrs(ctx, slog.LevelWarn, d.Message, attrs...)
	}
}
