// SPDX-License-Identifier: MPL-2.0

package guides

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

const testRegistry = `
guides: [{
	id:    "kafka"
	title: "Kafka"
	sections: [{id: "kafka-topics", title: "Topics"}, {id: "kafka-partitions"}]
}, {
	id:    "redis"
	title: "Redis"
	sections: [{id: "redis-persistence"}]
}]
`

func TestParse(t *testing.T) {
	t.Parallel()

	reg, err := Parse([]byte(testRegistry), "guides.cue")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		section glossary.SectionID
		guide   glossary.GuideID
		ok      bool
	}{
		{"kafka-topics", "kafka", true},
		{"kafka-partitions", "kafka", true},
		{"redis-persistence", "redis", true},
		{"k8s-pods", "", false},
	}
	for _, tt := range tests {
		g, ok := reg.GuideForSection(tt.section)
		if g != tt.guide || ok != tt.ok {
			t.Errorf("GuideForSection(%q) = (%q, %v), want (%q, %v)", tt.section, g, ok, tt.guide, tt.ok)
		}
	}

	guides := reg.Guides()
	if len(guides) != 2 || guides[0].ID != "kafka" || guides[1].ID != "redis" {
		t.Fatalf("Guides() = %+v", guides)
	}

	s, owner, ok := reg.Section("kafka-topics")
	if !ok || owner != "kafka" || s.Title != "Topics" {
		t.Errorf("Section() = %+v, %q, %v", s, owner, ok)
	}
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	t.Parallel()

	reg, err := Parse([]byte(testRegistry), "guides.cue")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	g, _ := reg.Guide("kafka")
	g.Sections[0].ID = "mutated"
	again, _ := reg.Guide("kafka")
	if again.Sections[0].ID != "kafka-topics" {
		t.Error("Guide() exposes internal state")
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		guides []Guide
		want   error
	}{
		{
			name:   "duplicate guide",
			guides: []Guide{{ID: "kafka", Title: "A"}, {ID: "kafka", Title: "B"}},
			want:   ErrDuplicateGuide,
		},
		{
			name: "section owned twice",
			guides: []Guide{
				{ID: "kafka", Title: "Kafka", Sections: []Section{{ID: "shared"}}},
				{ID: "redis", Title: "Redis", Sections: []Section{{ID: "shared"}}},
			},
			want: ErrSectionOwnedTwice,
		},
		{
			name:   "invalid guide id",
			guides: []Guide{{ID: "Not Valid", Title: "x"}},
			want:   glossary.ErrInvalidGuideID,
		},
		{
			name:   "invalid section id",
			guides: []Guide{{ID: "kafka", Title: "x", Sections: []Section{{ID: "has space"}}}},
			want:   glossary.ErrInvalidSectionID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.guides)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseFS_SchemaError(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"guides.cue": {Data: []byte(`guides: [{id: "kafka"}]`)}}
	_, err := ParseFS(fsys, "guides.cue")
	if err == nil {
		t.Fatal("expected error for guide without title")
	}
	if !strings.Contains(err.Error(), "guides.cue") {
		t.Errorf("error should name the file, got %v", err)
	}
}

func TestResolverFunc(t *testing.T) {
	t.Parallel()

	var r SectionResolver = ResolverFunc(func(id glossary.SectionID) (glossary.GuideID, bool) {
		return "webhooks", id == "webhooks-retries"
	})
	if g, ok := r.GuideForSection("webhooks-retries"); !ok || g != "webhooks" {
		t.Errorf("GuideForSection() = %q, %v", g, ok)
	}

	var nilReg *Registry
	if _, ok := nilReg.GuideForSection("x"); ok {
		t.Error("nil registry should resolve nothing")
	}
}
