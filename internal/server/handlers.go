package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/session"
)

type actionRequest struct {
	Action     string `json:"action"`
	ScenarioID string `json:"scenario_id,omitempty"`
	Text       string `json:"text,omitempty"`
	Target     string `json:"target,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"sessions":  s.sessions.Len(),
		"scenarios": s.catalog.Len(),
	})
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Match(r.Header.Get("Accept-Language"))
	all := s.catalog.All()
	out := make([]scenarioView, 0, len(all))
	for _, sc := range all {
		out = append(out, newScenarioView(sc, lang, false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	lang := i18n.Match(r.Header.Get("Accept-Language"))
	writeJSON(w, http.StatusOK, newScenarioView(sc, lang, true))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Match(r.Header.Get("Accept-Language"))
	id, ctl := s.sessions.Create(session.WithLanguage(lang))
	s.logger.Logger(r.Context()).Info("session created", zap.String("session_id", id), zap.String("language", string(lang)))
	writeJSON(w, http.StatusCreated, newStateView(id, ctl.Snapshot(), s.catalog))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctl, ok := s.sessions.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, newStateView(id, ctl.Snapshot(), s.catalog))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(chi.URLParam(r, "id")) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	ctl, ok := s.sessions.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	action, err := session.ParseAction(req.Action, req.ScenarioID, req.Text, req.Target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Submits call the feedback service; cap them server-wide before the
	// session's dispatch lock is taken.
	if _, isSubmit := action.(session.Submit); isSubmit {
		if err := s.inflight.Acquire(ctx, 1); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "request cancelled while waiting for capacity"})
			return
		}
		defer s.inflight.Release(1)
	}

	if err := ctl.Dispatch(ctx, action); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateView(id, ctl.Snapshot(), s.catalog))
}

// statusFor maps domain errors onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrPrecondition), errors.Is(err, session.ErrInvalidAction):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Logger(r.Context()).Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
