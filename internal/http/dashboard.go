package httpserver

import (
	"bytes"
	"net/http"

	"github.com/Clark-Hu/movies-dashboard/internal/dashboard"
	"github.com/Clark-Hu/movies-dashboard/internal/export"
	"github.com/Clark-Hu/movies-dashboard/internal/logging"
)

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, toOptionsResponse(s.dashboard.Options()))
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	q, err := buildOverviewQuery(r.URL.Query())
	if err != nil {
		s.respondQueryError(w, err)
		return
	}
	overview, err := s.dashboard.Overview(q)
	if err != nil {
		s.respondQueryError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toOverviewResponse(overview))
}

func (s *Server) handleExplore(w http.ResponseWriter, r *http.Request) {
	q, err := buildExploreQuery(r.URL.Query())
	if err != nil {
		s.respondQueryError(w, err)
		return
	}
	result, err := s.dashboard.Explore(q)
	if err != nil {
		s.respondQueryError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toExploreResponse(result))
}

// handleExportCSV streams the advanced-page rows in dataset order, ignoring sort.
// An empty selection has nothing to download and returns the warning instead.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	q, err := buildExploreQuery(r.URL.Query())
	if err != nil {
		s.respondQueryError(w, err)
		return
	}
	view, err := s.dashboard.ExploreView(q)
	if err != nil {
		s.respondQueryError(w, err)
		return
	}
	if view.Len() == 0 {
		s.respondError(w, http.StatusNotFound, "EMPTY_RESULT", dashboard.EmptyWarning)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, view); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("csv export failed")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export movies")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
