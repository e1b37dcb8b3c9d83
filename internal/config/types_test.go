// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	for _, c := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if ok, errs := c.IsValid(); !ok {
			t.Errorf("ColorScheme(%q) should be valid: %v", c, errs)
		}
	}
	ok, errs := ColorScheme("neon").IsValid()
	if ok || !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Errorf("ColorScheme(neon).IsValid() = %v, %v", ok, errs)
	}
}

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	for _, l := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		if ok, errs := l.IsValid(); !ok {
			t.Errorf("LogLevel(%q) should be valid: %v", l, errs)
		}
	}
	ok, errs := LogLevel("trace").IsValid()
	if ok || !errors.Is(errs[0], ErrInvalidLogLevel) {
		t.Errorf("LogLevel(trace).IsValid() = %v, %v", ok, errs)
	}
}

func TestConfig_IsValid_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Log.Level = "loud"
	cfg.Server.Addr = " "
	cfg.Server.Burst = 0
	cfg.Watch.Debounce = -1
	cfg.TermDirs = []string{"ok", ""}

	ok, errs := cfg.IsValid()
	if ok {
		t.Fatal("expected invalid config")
	}
	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("expected *InvalidConfigError, got %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 5 {
		t.Errorf("expected 5 field errors, got %d: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Error("InvalidConfigError should wrap ErrInvalidConfig")
	}
}
