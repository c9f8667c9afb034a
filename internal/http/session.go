package httpserver

import (
	"net/http"

	"github.com/Clark-Hu/movies-dashboard/internal/dashboard"
	"github.com/Clark-Hu/movies-dashboard/internal/logging"
	"github.com/Clark-Hu/movies-dashboard/internal/session"
	"github.com/Clark-Hu/movies-dashboard/internal/validation"
)

// SessionCookie carries the caller's session id.
const SessionCookie = "dashboard_session"

// sessionID returns the caller's session id, issuing a new cookie when the
// request has none or an unrecognised one.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && session.ValidID(c.Value) {
		return c.Value
	}
	id := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   s.cfg.SessionTTLSecs,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	visit, err := s.nav.Current(r.Context(), id)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("load session")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load session")
		return
	}
	s.respondJSON(w, http.StatusOK, toSessionResponse(visit))
}

func (s *Server) handleSwitchPage(w http.ResponseWriter, r *http.Request) {
	var req sessionPageRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		s.respondQueryError(w, verr)
		return
	}
	page, err := dashboard.ParsePage(req.Page)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	id := s.sessionID(w, r)
	visit, err := s.nav.Switch(r.Context(), id, page)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("switch page")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update session")
		return
	}
	s.respondJSON(w, http.StatusOK, toSessionResponse(visit))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(SessionCookie)
	if err == nil && session.ValidID(c.Value) {
		if err := s.nav.Forget(r.Context(), c.Value); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("delete session")
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete session")
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
