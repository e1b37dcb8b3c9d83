// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
	"testing/fstest"
)

const testSchema = `
#TestConfig: {
	name:         string
	count:        int
	enabled:      bool
	description?: string
}
`

type TestConfig struct {
	Name        string `json:"name"`
	Count       int    `json:"count"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid document parses", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
name: "test"
count: 42
enabled: true
description: "A test config"
`)
		result, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}
		if result.Value.Name != "test" || result.Value.Count != 42 || !result.Value.Enabled {
			t.Errorf("unexpected value: %+v", result.Value)
		}
		if result.Value.Description != "A test config" {
			t.Errorf("description = %q", result.Value.Description)
		}
	})

	t.Run("optional field can be omitted", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
name: "minimal"
count: 1
enabled: false
`)
		result, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}
		if result.Value.Description != "" {
			t.Errorf("expected empty description, got %q", result.Value.Description)
		}
	})

	t.Run("type mismatch reports the field path", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
name: "test"
count: "not a number"
enabled: true
`)
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig", WithFilename("bad.cue"))
		if err == nil {
			t.Fatal("expected error for invalid type")
		}
		if !strings.Contains(err.Error(), "bad.cue") || !strings.Contains(err.Error(), "count") {
			t.Errorf("error should mention file and field, got: %v", err)
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), []byte("name: ["), "#TestConfig")
		if err == nil {
			t.Fatal("expected syntax error")
		}
	})

	t.Run("unknown definition is an internal error", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), []byte(`name: "x"`), "#Missing")
		if err == nil || !strings.Contains(err.Error(), "internal error") {
			t.Fatalf("expected internal error, got %v", err)
		}
	})

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()

		data := []byte(`name: "x", count: 1, enabled: true`)
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig", WithMaxFileSize(4))
		if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
			t.Fatalf("expected size error, got %v", err)
		}
	})
}

func TestParseFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"ok.cue":    {Data: []byte(`name: "fs", count: 2, enabled: true`)},
		"big.cue":   {Data: []byte(strings.Repeat(" ", 64))},
		"dir/a.cue": {Data: []byte(`name: "nested", count: 3, enabled: false`)},
	}

	result, err := ParseFS[TestConfig](fsys, "ok.cue", []byte(testSchema), "#TestConfig")
	if err != nil {
		t.Fatalf("ParseFS failed: %v", err)
	}
	if result.Value.Name != "fs" {
		t.Errorf("Name = %q, want %q", result.Value.Name, "fs")
	}

	if _, err := ParseFS[TestConfig](fsys, "big.cue", []byte(testSchema), "#TestConfig", WithMaxFileSize(8)); err == nil {
		t.Error("expected size error for big.cue")
	}

	if _, err := ParseFS[TestConfig](fsys, "missing.cue", []byte(testSchema), "#TestConfig"); err == nil {
		t.Error("expected error for missing file")
	}

	if _, err := ParseFS[TestConfig](fsys, "dir", []byte(testSchema), "#TestConfig"); err == nil {
		t.Error("expected error for directory")
	}
}
