// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

// ActionableError is what a glossary command returns when the user can do
// something about the failure. Error() reads "failed to <Operation>: <Resource>:
// <Cause>"; Format adds the hints and, when verbose, every wrapped cause.
//
//	return issue.NewErrorContext().
//		WithOperation("look up term").
//		WithResource(name).
//		WithSuggestion("Run 'glossary list' to see every term").
//		WithIssue(issue.TermNotFoundId).
//		BuildError()
type ActionableError struct {
	// Operation is a verb phrase such as "load guide registry".
	Operation string
	// Resource names the term, file or directory involved. May be empty.
	Resource string
	// Suggestions are printed one per line under the message.
	Suggestions []string
	// Issue points at the catalog entry rendered after the message.
	Issue Id
	Cause error
}

// ErrorContext accumulates the fields of an ActionableError.
type ErrorContext struct {
	draft ActionableError
}

// NewErrorContext starts an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message with its suggestions. verbose lists the cause
// chain, one numbered line per wrapped error.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteString("\n")
	}
	for _, s := range e.Suggestions {
		b.WriteString("\n  • " + s)
	}

	if !verbose || e.Cause == nil {
		return b.String()
	}
	b.WriteString("\n\nCaused by:")
	for i, err := 1, e.Cause; err != nil; i, err = i+1, errors.Unwrap(err) {
		fmt.Fprintf(&b, "\n  %d. %v", i, err)
	}
	return b.String()
}

func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.draft.Operation = op
	return c
}

func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.draft.Resource = res
	return c
}

// WithSuggestion appends one hint line.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.draft.Suggestions = append(c.draft.Suggestions, sug)
	return c
}

func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.draft.Issue = id
	return c
}

func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.draft.Cause = err
	return c
}

// Build returns nil until WithOperation has been called, since the message
// has nothing to lead with.
func (c *ErrorContext) Build() *ActionableError {
	if c.draft.Operation == "" {
		return nil
	}
	ae := c.draft
	ae.Suggestions = append([]string(nil), c.draft.Suggestions...)
	return &ae
}

// BuildError is Build as an error, so a missing operation yields an untyped
// nil rather than a nil *ActionableError.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
