// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/goldinfc/scorebook/internal/domain/model"
	"github.com/goldinfc/scorebook/internal/domain/scoring"
	"github.com/goldinfc/scorebook/internal/domain/standings"
)

// SessionsHandler handles session storage and per-session derived
// views. Date path segments land on their week's Sunday, so any day
// of a week addresses that week's session.
type SessionsHandler struct {
	deps     Dependencies
	adminPIN string
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps Dependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// HandleList handles GET /sessions requests.
func (h *SessionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	dates, err := h.deps.SessionDates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dates": dates})
}

// Handle routes /sessions/{date} and its derived sub-resources:
// GET or PUT /sessions/{date}, GET /sessions/{date}/standings,
// GET /sessions/{date}/scores.
func (h *SessionsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/sessions/")
	parts := strings.Split(rest, "/")
	if len(parts) == 0 || parts[0] == "" || len(parts) > 2 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	date := parts[0]

	if len(parts) == 2 {
		switch {
		case parts[1] == "standings" && r.Method == http.MethodGet:
			h.handleStandings(w, r, date)
		case parts[1] == "scores" && r.Method == http.MethodGet:
			h.handleScores(w, r, date)
		case parts[1] == "select" && r.Method == http.MethodPost:
			h.handleSelect(w, r, date)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, date)
	case http.MethodPut:
		h.handlePut(w, r, date)
	default:
		http.NotFound(w, r)
	}
}

type sessionResponse struct {
	Date    string        `json:"date"`
	Session model.Session `json:"session"`
}

func (h *SessionsHandler) handleGet(w http.ResponseWriter, r *http.Request, date string) {
	key, sess, err := h.deps.Session(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Date: key, Session: sess})
}

func (h *SessionsHandler) handlePut(w http.ResponseWriter, r *http.Request, date string) {
	if !checkAdminPIN(w, r, h.adminPIN) {
		return
	}
	var sess model.Session
	if err := json.NewDecoder(r.Body).Decode(&sess); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	key, err := h.deps.PutSession(r.Context(), date, sess)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	_, stored, err := h.deps.Session(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Date: key, Session: stored})
}

// handleSelect makes a date the current play date, creating its
// session when absent.
func (h *SessionsHandler) handleSelect(w http.ResponseWriter, r *http.Request, date string) {
	if !checkAdminPIN(w, r, h.adminPIN) {
		return
	}
	key, err := h.deps.SetSessionDate(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"sessionDate": key})
}

type standingsResponse struct {
	Date  string               `json:"date"`
	Table []standings.Row      `json:"table"`
	Bonus map[model.TeamID]int `json:"bonus"`
}

func (h *SessionsHandler) handleStandings(w http.ResponseWriter, r *http.Request, date string) {
	table, bonus, err := h.deps.Standings(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, standingsResponse{
		Date:  model.NormalizeDate(date),
		Table: table,
		Bonus: bonus,
	})
}

type scoresResponse struct {
	Date    string           `json:"date"`
	Records []scoring.Record `json:"records"`
}

func (h *SessionsHandler) handleScores(w http.ResponseWriter, r *http.Request, date string) {
	records, err := h.deps.SessionScores(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, scoresResponse{
		Date:    model.NormalizeDate(date),
		Records: records,
	})
}
