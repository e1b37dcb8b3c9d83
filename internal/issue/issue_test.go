// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load configuration"},
			expected: "failed to load configuration",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "load guide registry", Resource: "./guides.cue"},
			expected: "failed to load guide registry: ./guides.cue",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load guide registry",
				Resource:  "./guides.cue",
				Cause:     errors.New("duplicate guide id: kafka"),
			},
			expected: "failed to load guide registry: ./guides.cue: duplicate guide id: kafka",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("permission denied")
	err := NewErrorContext().
		WithOperation("write index").
		WithResource("out.json").
		WithSuggestion("Check the directory permissions").
		WithIssue(ExportFailedId).
		Wrap(errors.Join(inner)).
		Build()

	short := err.Format(false)
	if !strings.Contains(short, "  • Check the directory permissions") {
		t.Errorf("Format(false) missing suggestion: %q", short)
	}
	if strings.Contains(short, "Caused by") {
		t.Errorf("Format(false) should not include the chain: %q", short)
	}
	if verbose := err.Format(true); !strings.Contains(verbose, "Caused by:\n  1. permission denied") {
		t.Errorf("Format(true) missing chain: %q", verbose)
	}
	if !errors.Is(err, inner) {
		t.Error("ActionableError should unwrap to its cause")
	}
	if err.Issue != ExportFailedId {
		t.Errorf("Issue = %d, want %d", err.Issue, ExportFailedId)
	}
}

func TestErrorContext_RequiresOperation(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(ServerStartFailedId) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), ServerStartFailedId)
	}
	for i, is := range values {
		if is.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d", i, is.Id())
		}
		if strings.TrimSpace(string(is.MarkdownMsg())) == "" {
			t.Errorf("issue %d has no message", is.Id())
		}
	}
	if Get(Id(999)) != nil {
		t.Error("Get(unknown) should return nil")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(NoTermsFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "No glossary terms were found") {
		t.Errorf("rendered output missing heading: %q", out)
	}
}
