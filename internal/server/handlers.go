// SPDX-License-Identifier: MPL-2.0

package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/diagnostic"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/index"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/loader"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/present"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/query"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/guides"
)

const (
	defaultRelatedLimit = 5
	maxRelatedLimit     = 50
)

type (
	// GlossaryResponse is the body of GET /api/glossary.
	GlossaryResponse struct {
		Categories []index.Group         `json:"categories"`
		Total      int                   `json:"total"`
		Empty      bool                  `json:"empty"`
		Message    string                `json:"message,omitempty"`
		Filter     query.Filter          `json:"filter"`
		Counts     []query.CategoryCount `json:"counts"`
	}

	// CategoriesResponse is the body of GET /api/glossary/categories.
	CategoriesResponse struct {
		Active     string                `json:"active"`
		Categories []query.CategoryCount `json:"categories"`
	}

	// GuideSummary is one entry of GET /api/glossary/guides.
	GuideSummary struct {
		ID         glossary.GuideID `json:"id"`
		Title      string           `json:"title,omitempty"`
		Sections   int              `json:"sections"`
		Terms      int              `json:"terms"`
		Registered bool             `json:"registered"`
	}

	// GuidesResponse is the body of GET /api/glossary/guides.
	GuidesResponse struct {
		Guides []GuideSummary `json:"guides"`
	}

	// GuideResponse is the body of GET /api/glossary/guides/{id}.
	GuideResponse struct {
		Guide      *guides.Guide      `json:"guide,omitempty"`
		ID         glossary.GuideID   `json:"id"`
		Terms      []glossary.TermRef `json:"terms"`
		Categories []index.Group      `json:"categories"`
	}

	// RelatedResponse is the body of GET /api/glossary/related.
	RelatedResponse struct {
		Term    glossary.TermRef   `json:"term"`
		Guides  []glossary.GuideID `json:"guides"`
		Related []glossary.TermRef `json:"related"`
	}

	// DiagnosticsResponse is the body of GET /api/diagnostics.
	DiagnosticsResponse struct {
		Errors      int                     `json:"errors"`
		Warnings    int                     `json:"warnings"`
		Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
	}

	// HealthResponse is the body of GET /api/health.
	HealthResponse struct {
		Status string      `json:"status"`
		Stats  index.Stats `json:"stats"`
		Took   string      `json:"last_build_duration"`
	}
)

// snapshot returns the current snapshot, or writes 503 when none is loaded.
func (s *Server) snapshot(w http.ResponseWriter) (*loader.Snapshot, bool) {
	snap := s.source.Current()
	if snap == nil || snap.Index == nil {
		WriteErrorWithCode(w, http.StatusServiceUnavailable, "Glossary index is not loaded", "not_ready")
		return nil, false
	}
	return snap, true
}

func filterFromRequest(r *http.Request) query.Filter {
	q := r.URL.Query()
	return query.Filter{
		Text:     q.Get("q"),
		Category: q.Get("category"),
		Guide:    glossary.GuideID(strings.TrimSpace(q.Get("guide"))),
	}
}

func (s *Server) handleGlossary(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	f := filterFromRequest(r)
	groups := query.Run(snap.Index, f)
	total := query.Total(groups)
	s.metrics.ObserveQuery(total > 0)

	resp := GlossaryResponse{
		Categories: groups,
		Total:      total,
		Empty:      total == 0,
		Filter:     f,
		Counts:     query.Counts(snap.Index, f),
	}
	if resp.Empty {
		resp.Message = present.EmptyMessage
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	f := filterFromRequest(r)
	st := present.State{Search: f.Text, Category: f.Category, Guide: f.Guide}
	WriteJSON(w, http.StatusOK, CategoriesResponse{
		Active:     st.ActiveCategory(),
		Categories: query.Counts(snap.Index, f),
	})
}

func (s *Server) handleGuides(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	out := []GuideSummary{}
	seen := make(map[glossary.GuideID]bool)
	for _, g := range snap.Registry.Guides() {
		seen[g.ID] = true
		out = append(out, GuideSummary{
			ID:         g.ID,
			Title:      g.Title,
			Sections:   len(g.Sections),
			Terms:      len(snap.Index.TermsForGuide(g.ID)),
			Registered: true,
		})
	}
	for _, id := range snap.Index.Guides() {
		if !seen[id] {
			out = append(out, GuideSummary{ID: id, Terms: len(snap.Index.TermsForGuide(id))})
		}
	}
	WriteJSON(w, http.StatusOK, GuidesResponse{Guides: out})
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	id := glossary.GuideID(r.PathValue("id"))
	refs := snap.Index.TermsForGuide(id)
	g, registered := snap.Registry.Guide(id)
	if !registered && len(refs) == 0 {
		WriteErrorWithCode(w, http.StatusNotFound, "Guide '"+id.String()+"' not found", "guide_not_found")
		return
	}

	resp := GuideResponse{
		ID:         id,
		Terms:      refs,
		Categories: query.Run(snap.Index, query.Filter{Guide: id}),
	}
	if resp.Terms == nil {
		resp.Terms = []glossary.TermRef{}
	}
	if registered {
		resp.Guide = &g
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	q := r.URL.Query()
	ref := glossary.TermRef{
		Category: glossary.CategoryLabel(q.Get("category")),
		Term:     glossary.TermName(q.Get("term")),
	}
	if strings.TrimSpace(ref.Category.String()) == "" || strings.TrimSpace(ref.Term.String()) == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "Both 'category' and 'term' are required", "missing_parameter")
		return
	}

	limit := defaultRelatedLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteErrorWithCode(w, http.StatusBadRequest, "'limit' must be a positive integer", "invalid_parameter")
			return
		}
		limit = min(n, maxRelatedLimit)
	}

	e, found := snap.Index.Term(ref)
	if !found {
		WriteErrorWithCode(w, http.StatusNotFound, "Term '"+ref.Term.String()+"' not found in '"+ref.Category.String()+"'", "term_not_found")
		return
	}

	related := snap.Index.Related(ref, limit)
	if related == nil {
		related = []glossary.TermRef{}
	}
	WriteJSON(w, http.StatusOK, RelatedResponse{
		Term:    glossary.TermRef{Category: ref.Category.Normalize(), Term: e.Name},
		Guides:  e.Guides,
		Related: related,
	})
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	resp := DiagnosticsResponse{Diagnostics: snap.Diagnostics}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []diagnostic.Diagnostic{}
	}
	for _, d := range snap.Diagnostics {
		if d.Severity == diagnostic.SeverityError {
			resp.Errors++
		} else {
			resp.Warnings++
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Stats:  snap.Index.Stats(),
		Took:   snap.Took.String(),
	})
}
