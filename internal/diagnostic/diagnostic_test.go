// SPDX-License-Identifier: MPL-2.0

package diagnostic

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSeverity_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		severity Severity
		want     bool
	}{
		{SeverityWarning, true},
		{SeverityError, true},
		{"", false},
		{"WARNING", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.severity.IsValid()
			if ok != tt.want {
				t.Fatalf("Severity(%q).IsValid() = %v, want %v", tt.severity, ok, tt.want)
			}
			if !ok && !errors.Is(errs[0], ErrInvalidSeverity) {
				t.Errorf("error should wrap ErrInvalidSeverity, got: %v", errs[0])
			}
		})
	}
}

func TestCode_IsValid(t *testing.T) {
	t.Parallel()

	valid := []Code{
		CodeTermDirMissing, CodeTermDirScanFailed, CodeModuleLoadSkipped,
		CodeCategoryInvalid, CodeCategoryEmpty, CodeTermInvalid,
		CodeDuplicateTerm, CodeGuideInvalid, CodeSectionUnresolved,
	}
	for _, code := range valid {
		if ok, errs := code.IsValid(); !ok {
			t.Errorf("Code(%q).IsValid() = false: %v", code, errs)
		}
	}

	for _, code := range []Code{"", "DUPLICATE_TERM", "unknown"} {
		ok, errs := code.IsValid()
		if ok {
			t.Errorf("Code(%q).IsValid() = true, want false", code)
			continue
		}
		if !errors.Is(errs[0], ErrInvalidCode) {
			t.Errorf("error should wrap ErrInvalidCode, got: %v", errs[0])
		}
	}
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	d := New(SeverityWarning, CodeCategoryEmpty, "dropped")
	if d.Path != "" || d.Cause != nil {
		t.Errorf("New() = %+v", d)
	}

	cause := errors.New("boom")
	d = Errorf(CodeModuleLoadSkipped, "builtin:kafka.glossary.cue", "skipping %s", "kafka").WithCause(cause)
	if d.Severity != SeverityError || d.Message != "skipping kafka" || !errors.Is(d.Cause, cause) {
		t.Errorf("Errorf() = %+v", d)
	}
	if got := d.String(); got != "error module_load_skipped: skipping kafka (builtin:kafka.glossary.cue)" {
		t.Errorf("String() = %q", got)
	}
}

func TestHasErrorsAndCounts(t *testing.T) {
	t.Parallel()

	diags := []Diagnostic{
		Warnf(CodeSectionUnresolved, "", "a"),
		Warnf(CodeSectionUnresolved, "", "b"),
	}
	if HasErrors(diags) {
		t.Error("warnings only should not report errors")
	}
	diags = append(diags, Errorf(CodeDuplicateTerm, "", "c"))
	if !HasErrors(diags) {
		t.Error("expected HasErrors() = true")
	}
	counts := CountByCode(diags)
	if counts[CodeSectionUnresolved] != 2 || counts[CodeDuplicateTerm] != 1 {
		t.Errorf("CountByCode() = %v", counts)
	}
}

func TestLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	Log(context.Background(), logger, []Diagnostic{
		Errorf(CodeTermInvalid, "builtin:redis.glossary.cue", "term excluded").WithCause(errors.New("missing definition")),
	})

	out := buf.String()
	for _, want := range []string{"level=WARN", "term excluded", "code=term_invalid", "severity=error", "missing definition"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}

	Log(context.Background(), nil, []Diagnostic{New(SeverityWarning, CodeCategoryEmpty, "x")})
}
