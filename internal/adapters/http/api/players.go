// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/goldinfc/scorebook/internal/domain/model"
)

// PlayersHandler handles the global player list.
type PlayersHandler struct {
	deps     Dependencies
	adminPIN string
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// Handle routes GET and PUT /players.
func (h *PlayersHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handlePut(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *PlayersHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	players, err := h.deps.Players(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *PlayersHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	if !checkAdminPIN(w, r, h.adminPIN) {
		return
	}
	var players []model.Player
	if err := json.NewDecoder(r.Body).Decode(&players); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := h.deps.PutPlayers(r.Context(), players); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	updated, err := h.deps.Players(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
