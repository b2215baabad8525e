// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/goldinfc/scorebook/internal/domain/ranking"
)

// RankingsHandler handles leaderboard requests.
type RankingsHandler struct {
	deps Dependencies
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps Dependencies) *RankingsHandler {
	return &RankingsHandler{deps: deps}
}

// HandleBoard handles GET /rankings?category=... requests. The time
// filter parameters match /aggregate.
func (h *RankingsHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	cat, ok := ranking.ParseCategory(r.URL.Query().Get("category"))
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	f := filterFromQuery(r)
	board, err := h.deps.RankingBoard(r.Context(), cat, f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": cat,
		"filter":   f,
		"entries":  board,
	})
}
