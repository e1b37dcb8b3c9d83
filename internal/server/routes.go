// SPDX-License-Identifier: MPL-2.0

package server

import "net/http"

const (
	pathGlossary    = "/api/glossary"
	pathCategories  = "/api/glossary/categories"
	pathGuides      = "/api/glossary/guides"
	pathGuide       = "/api/glossary/guides/{id}"
	pathRelated     = "/api/glossary/related"
	pathDiagnostics = "/api/diagnostics"
	pathHealth      = "/api/health"
	pathMetrics     = "/metrics"
)

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+pathGlossary, s.handleGlossary)
	mux.HandleFunc("GET "+pathCategories, s.handleCategories)
	mux.HandleFunc("GET "+pathGuides, s.handleGuides)
	mux.HandleFunc("GET "+pathGuide, s.handleGuide)
	mux.HandleFunc("GET "+pathRelated, s.handleRelated)
	mux.HandleFunc("GET "+pathDiagnostics, s.handleDiagnostics)
	mux.HandleFunc("GET "+pathHealth, s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET "+pathMetrics, s.metrics.Handler())
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		WriteErrorWithCode(w, http.StatusNotFound, "Not found", "not_found")
	})
}
