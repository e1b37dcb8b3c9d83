// SPDX-License-Identifier: MPL-2.0

package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/diagnostic"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/index"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/loader"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/metrics"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/present"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/guides"
)

type staticSource struct {
	snap atomic.Pointer[loader.Snapshot]
}

func (s *staticSource) Current() *loader.Snapshot { return s.snap.Load() }

func testSnapshot(t *testing.T) *loader.Snapshot {
	t.Helper()

	reg, err := guides.New([]guides.Guide{
		{ID: "kafka", Title: "Apache Kafka", Sections: []guides.Section{{ID: "kafka-topics"}}},
		{ID: "redis", Title: "Redis", Sections: []guides.Section{{ID: "redis-pubsub"}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	res := index.BuildCategories([]glossary.Category{
		{Label: "Kafka Core", Terms: []glossary.Term{
			{Name: "Topic", Definition: "A named <code>log</code>.", PrimaryReference: "kafka-topic", Section: "kafka-topics"},
			{Name: "Partition", Definition: "An ordered shard of a topic.", PrimaryReference: "kafka-partition", Section: "kafka-topics"},
		}},
		{Label: "Redis Basics", Terms: []glossary.Term{
			{Name: "Channel", Definition: "A pub/sub destination.", PrimaryReference: "redis-channel", Section: "redis-pubsub", Guides: []glossary.GuideID{"webhooks"}},
		}},
	}, reg)
	return &loader.Snapshot{
		Index:       res.Index,
		Registry:    reg,
		Diagnostics: []diagnostic.Diagnostic{diagnostic.Warnf(diagnostic.CodeSectionUnresolved, "x.glossary.cue", "section %q has no guide", "gone")},
		Took:        time.Millisecond,
	}
}

func newTestServer(t *testing.T, opts ...Option) (*Server, *staticSource) {
	t.Helper()

	src := &staticSource{}
	src.snap.Store(testSnapshot(t))
	opts = append([]Option{WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	return New(src, opts...), src
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func TestGlossary_Filters(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		wantTotal  int
		wantGroups []glossary.CategoryLabel
	}{
		{"everything", "/api/glossary", 3, []glossary.CategoryLabel{"Kafka Core", "Redis Basics"}},
		{"text in definition", "/api/glossary?q=SHARD", 1, []glossary.CategoryLabel{"Kafka Core"}},
		{"markup not searchable", "/api/glossary?q=code", 0, nil},
		{"category", "/api/glossary?category=Redis+Basics", 1, []glossary.CategoryLabel{"Redis Basics"}},
		{"category all", "/api/glossary?category=all", 3, []glossary.CategoryLabel{"Kafka Core", "Redis Basics"}},
		{"explicit guide", "/api/glossary?guide=webhooks", 1, []glossary.CategoryLabel{"Redis Basics"}},
		{"inferred guide", "/api/glossary?guide=kafka", 2, []glossary.CategoryLabel{"Kafka Core"}},
		{"conjunction", "/api/glossary?category=Kafka+Core&guide=redis", 0, nil},
		{"unknown category", "/api/glossary?category=Nope", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := get(t, s.Handler(), tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			resp := decode[GlossaryResponse](t, rec)
			if resp.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", resp.Total, tt.wantTotal)
			}
			var labels []glossary.CategoryLabel
			for _, g := range resp.Categories {
				if len(g.Terms) == 0 {
					t.Errorf("category %q returned without terms", g.Category)
				}
				labels = append(labels, g.Category)
			}
			if strings.Join(toStrings(labels), "|") != strings.Join(toStrings(tt.wantGroups), "|") {
				t.Errorf("categories = %v, want %v", labels, tt.wantGroups)
			}
			if resp.Empty != (tt.wantTotal == 0) {
				t.Errorf("empty = %v", resp.Empty)
			}
			if resp.Empty && resp.Message != present.EmptyMessage {
				t.Errorf("message = %q", resp.Message)
			}
		})
	}
}

func toStrings(labels []glossary.CategoryLabel) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.String()
	}
	return out
}

func TestGlossary_EmptyIsArray(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	rec := get(t, s.Handler(), "/api/glossary?q=nothing-matches")
	if !strings.Contains(rec.Body.String(), `"categories":[]`) {
		t.Errorf("empty result should encode as [], got %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"message":"No terms match your search."`) {
		t.Errorf("missing empty-state message: %s", rec.Body.String())
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	resp := decode[CategoriesResponse](t, get(t, s.Handler(), "/api/glossary/categories?guide=kafka&category=Kafka+Core"))
	if resp.Active != "Kafka Core" {
		t.Errorf("active = %q", resp.Active)
	}
	if len(resp.Categories) != 2 || resp.Categories[0].Count != 2 || resp.Categories[1].Count != 0 {
		t.Errorf("counts = %+v", resp.Categories)
	}
}

func TestGuides(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	resp := decode[GuidesResponse](t, get(t, s.Handler(), "/api/glossary/guides"))
	want := []GuideSummary{
		{ID: "kafka", Title: "Apache Kafka", Sections: 1, Terms: 2, Registered: true},
		{ID: "redis", Title: "Redis", Sections: 1, Terms: 1, Registered: true},
		{ID: "webhooks", Terms: 1},
	}
	if len(resp.Guides) != len(want) {
		t.Fatalf("guides = %+v", resp.Guides)
	}
	for i := range want {
		if resp.Guides[i] != want[i] {
			t.Errorf("guides[%d] = %+v, want %+v", i, resp.Guides[i], want[i])
		}
	}
}

func TestGuide(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/api/glossary/guides/kafka")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[GuideResponse](t, rec)
	if resp.Guide == nil || resp.Guide.Title != "Apache Kafka" || len(resp.Terms) != 2 {
		t.Errorf("unexpected guide response: %+v", resp)
	}

	resp = decode[GuideResponse](t, get(t, s.Handler(), "/api/glossary/guides/webhooks"))
	if resp.Guide != nil || len(resp.Terms) != 1 {
		t.Errorf("unregistered guide with terms: %+v", resp)
	}

	rec = get(t, s.Handler(), "/api/glossary/guides/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown guide status = %d", rec.Code)
	}
	if decode[ErrorResponse](t, rec).Code != "guide_not_found" {
		t.Errorf("unexpected error body %s", rec.Body.String())
	}
}

func TestRelated(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/api/glossary/related?category=Kafka+Core&term=Topic")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[RelatedResponse](t, rec)
	if len(resp.Related) != 1 || resp.Related[0].Term != "Partition" {
		t.Errorf("related = %+v", resp.Related)
	}

	tests := []struct {
		target string
		status int
	}{
		{"/api/glossary/related?term=Topic", http.StatusBadRequest},
		{"/api/glossary/related?category=Kafka+Core&term=Topic&limit=0", http.StatusBadRequest},
		{"/api/glossary/related?category=Kafka+Core&term=Nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := get(t, s.Handler(), tt.target); rec.Code != tt.status {
			t.Errorf("GET %s status = %d, want %d", tt.target, rec.Code, tt.status)
		}
	}
}

func TestDiagnosticsAndHealth(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)

	d := decode[DiagnosticsResponse](t, get(t, s.Handler(), "/api/diagnostics"))
	if d.Errors != 0 || d.Warnings != 1 || d.Diagnostics[0].Code != diagnostic.CodeSectionUnresolved {
		t.Errorf("diagnostics = %+v", d)
	}

	h := decode[HealthResponse](t, get(t, s.Handler(), "/api/health"))
	if h.Status != "ok" || h.Stats.Terms != 3 || h.Stats.Categories != 2 {
		t.Errorf("health = %+v", h)
	}
}

func TestNotReady(t *testing.T) {
	t.Parallel()

	s := New(&staticSource{}, WithLogger(slog.New(slog.DiscardHandler)))
	rec := get(t, s.Handler(), "/api/glossary")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestReloadSwapsSnapshot(t *testing.T) {
	t.Parallel()

	s, src := newTestServer(t)
	if got := decode[GlossaryResponse](t, get(t, s.Handler(), "/api/glossary")).Total; got != 3 {
		t.Fatalf("total before reload = %d", got)
	}

	src.snap.Store(&loader.Snapshot{Index: index.Empty()})
	resp := decode[GlossaryResponse](t, get(t, s.Handler(), "/api/glossary"))
	if resp.Total != 0 || !resp.Empty {
		t.Errorf("after reload = %+v", resp)
	}
}

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/api/health")
	if len(rec.Header().Get(HeaderCorrelationID)) != 36 {
		t.Errorf("expected a generated uuid, got %q", rec.Header().Get(HeaderCorrelationID))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/glossary/guides/nope", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Header().Get(HeaderCorrelationID) != "req-123" {
		t.Errorf("incoming id not echoed: %q", rec.Header().Get(HeaderCorrelationID))
	}
	if decode[ErrorResponse](t, rec).CorrelationID != "req-123" {
		t.Errorf("error body missing correlation id: %s", rec.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, WithRateLimit(0.001, 1))

	if rec := get(t, s.Handler(), "/api/glossary"); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	rec := get(t, s.Handler(), "/api/glossary")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
	if rec := get(t, s.Handler(), "/api/health"); rec.Code != http.StatusOK {
		t.Errorf("health should bypass the limiter, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := metrics.New("test", "go1.25")
	s, _ := newTestServer(t, WithMetrics(m))

	get(t, s.Handler(), "/api/glossary")
	get(t, s.Handler(), "/api/glossary?q=none")
	get(t, s.Handler(), "/api/glossary/guides/kafka")

	if got := testutil.ToFloat64(m.QueriesTotal.WithLabelValues("empty")); got != 1 {
		t.Errorf("empty queries = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/glossary/guides/{id}", "200")); got != 1 {
		t.Errorf("guide requests = %v, want 1", got)
	}

	rec := get(t, s.Handler(), "/metrics")
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "glossary_http_requests_total") {
		t.Error("/metrics does not expose request counters")
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	h := recoveryMiddleware(slog.New(slog.DiscardHandler))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := get(t, h, "/api/glossary")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
