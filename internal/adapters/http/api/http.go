// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/goldinfc/scorebook/internal/domain/aggregate"
	"github.com/goldinfc/scorebook/internal/domain/model"
	"github.com/goldinfc/scorebook/internal/domain/ranking"
	"github.com/goldinfc/scorebook/internal/domain/scoring"
	"github.com/goldinfc/scorebook/internal/domain/standings"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to implementations in other
// packages.
type Dependencies interface {
	Players(ctx context.Context) ([]model.Player, error)
	PutPlayers(ctx context.Context, players []model.Player) error

	SessionDates(ctx context.Context) ([]string, error)
	Session(ctx context.Context, date string) (string, model.Session, error)
	PutSession(ctx context.Context, date string, s model.Session) (string, error)
	SetSessionDate(ctx context.Context, date string) (string, error)

	Standings(ctx context.Context, date string) ([]standings.Row, map[model.TeamID]int, error)
	SessionScores(ctx context.Context, date string) ([]scoring.Record, error)
	Aggregate(ctx context.Context, f aggregate.Filter) ([]aggregate.Record, error)
	RankingBoard(ctx context.Context, cat ranking.Category, f aggregate.Filter) ([]ranking.Entry, error)
	Seasons(ctx context.Context) ([]string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	adminPIN string

	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	playersHandler   *PlayersHandler
	sessionsHandler  *SessionsHandler
	aggregateHandler *AggregateHandler
	rankingsHandler  *RankingsHandler
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithAdminPIN gates mutating routes behind the X-Admin-Pin header.
// Empty leaves them open.
func WithAdminPIN(pin string) ServerOption {
	return func(s *Server) {
		s.adminPIN = pin
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		playersHandler:   NewPlayersHandler(deps),
		sessionsHandler:  NewSessionsHandler(deps),
		aggregateHandler: NewAggregateHandler(deps),
		rankingsHandler:  NewRankingsHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.playersHandler.adminPIN = s.adminPIN
	s.sessionsHandler.adminPIN = s.adminPIN
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.Handle, "players"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandleList, "sessions"))
	mux.HandleFunc("/sessions/", MetricsMiddleware(s.sessionsHandler.Handle, "sessions"))
	mux.HandleFunc("/aggregate", MetricsMiddleware(s.aggregateHandler.HandleAggregate, "aggregate"))
	mux.HandleFunc("/seasons", MetricsMiddleware(s.aggregateHandler.HandleSeasons, "seasons"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleBoard, "rankings"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
