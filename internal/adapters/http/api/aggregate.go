// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/goldinfc/scorebook/internal/domain/aggregate"
)

// AggregateHandler handles cross-session aggregate requests.
type AggregateHandler struct {
	deps Dependencies
}

// NewAggregateHandler creates a new aggregate handler.
func NewAggregateHandler(deps Dependencies) *AggregateHandler {
	return &AggregateHandler{deps: deps}
}

// filterFromQuery builds an aggregate filter from query parameters.
// Every parameter is optional; omitted bounds default inside the
// engine, and an unknown mode falls back to "all".
func filterFromQuery(r *http.Request) aggregate.Filter {
	q := r.URL.Query()
	mode := aggregate.Mode(q.Get("mode"))
	switch mode {
	case aggregate.ModeAll, aggregate.ModeSeason, aggregate.ModeRange:
	default:
		mode = aggregate.ModeAll
	}
	return aggregate.Filter{
		Mode:   mode,
		Season: q.Get("season"),
		Start:  q.Get("start"),
		End:    q.Get("end"),
	}
}

// HandleAggregate handles GET /aggregate requests.
func (h *AggregateHandler) HandleAggregate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	f := filterFromQuery(r)
	records, err := h.deps.Aggregate(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"filter":  f,
		"records": records,
	})
}

// HandleSeasons handles GET /seasons requests, listing available
// half-year season ids newest first.
func (h *AggregateHandler) HandleSeasons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	seasons, err := h.deps.Seasons(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"seasons": seasons})
}
