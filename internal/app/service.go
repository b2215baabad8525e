// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goldinfc/scorebook/internal/adapters/repository"
	"github.com/goldinfc/scorebook/internal/domain/aggregate"
	"github.com/goldinfc/scorebook/internal/domain/collation"
	"github.com/goldinfc/scorebook/internal/domain/model"
	"github.com/goldinfc/scorebook/internal/domain/ranking"
	"github.com/goldinfc/scorebook/internal/domain/scoring"
	"github.com/goldinfc/scorebook/internal/domain/standings"
	"github.com/goldinfc/scorebook/pkg/logger"
	"github.com/goldinfc/scorebook/pkg/metrics"
)

// standingsMemo is the cached shape for one session's standings.
type standingsMemo struct {
	table []standings.Row
	bonus map[model.TeamID]int
}

// Service wires the snapshot store to the pure engine and memoizes
// derived results per snapshot version.
type Service struct {
	mu sync.RWMutex

	store      repository.Store
	engine     *scoring.Engine
	aggregator *aggregate.Aggregator
	cache      *memo

	dbPath         string
	locale         string
	boardRankLimit int
	bonusOpts      []standings.BonusOption

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets a pre-built snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDBPath points the default sqlite store at a file. Ignored when
// WithStore is given; empty keeps the snapshot in memory.
func WithDBPath(path string) Option {
	return func(s *Service) {
		s.dbPath = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithBoardRankLimit caps ranking boards at this many ranks.
func WithBoardRankLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.boardRankLimit = limit
		}
	}
}

// WithCollatorLocale selects the locale for name ordering.
func WithCollatorLocale(locale string) Option {
	return func(s *Service) {
		if locale != "" {
			s.locale = locale
		}
	}
}

// WithBonusSchedules overrides the rank->bonus schedules.
func WithBonusSchedules(fourTeam, threeTeam []int) Option {
	return func(s *Service) {
		s.bonusOpts = []standings.BonusOption{
			standings.WithFourTeamSchedule(fourTeam),
			standings.WithThreeTeamSchedule(threeTeam),
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		locale:         "ko",
		boardRankLimit: ranking.DefaultRankLimit,
		cache:          newMemo(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the engine and the snapshot store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	collator := collation.New(s.locale)
	s.engine = scoring.New(
		scoring.WithCollator(collator),
		scoring.WithLogger(s.logger.Named("scoring")),
		scoring.WithBonusOptions(s.bonusOpts...),
	)
	s.aggregator = aggregate.New(
		aggregate.WithEngine(s.engine),
		aggregate.WithCollator(collator),
	)

	if s.store == nil {
		if s.dbPath != "" {
			store, err := repository.NewSQLiteStore(ctx, s.dbPath, model.Snapshot{},
				repository.WithLogger(s.logger.Named("store")))
			if err != nil {
				return fmt.Errorf("start service: %w", err)
			}
			s.store = store
			s.logger.Info(ctx, "using sqlite store", logger.String("path", s.dbPath))
		} else {
			s.store = repository.NewMemoryStore(model.Snapshot{})
			s.logger.Info(ctx, "using in-memory store")
		}
	}

	s.started = true
	s.publishSnapshotMetrics(ctx)
	s.logger.Info(ctx, "scorebook service started",
		logger.Int("boardRankLimit", s.boardRankLimit),
		logger.String("collatorLocale", s.locale),
	)
	return nil
}

// Stop releases the snapshot store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error(context.Background(), "store close failed", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "scorebook service stopped")
}

// Players returns the global player list.
func (s *Service) Players(ctx context.Context) ([]model.Player, error) {
	snap, _, err := s.store.Snapshot(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}
	return snap.Players, nil
}

// PutPlayers replaces the global player list.
func (s *Service) PutPlayers(ctx context.Context, players []model.Player) error {
	if _, err := s.store.PutPlayers(ctx, players); err != nil {
		metrics.RecordStoreError()
		return err
	}
	s.publishSnapshotMetrics(ctx)
	return nil
}

// SessionDates lists stored session keys in ascending order.
func (s *Service) SessionDates(ctx context.Context) ([]string, error) {
	snap, _, err := s.store.Snapshot(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}
	return snap.SessionDates(), nil
}

// Session returns the session at date's Sunday, empty when absent.
func (s *Service) Session(ctx context.Context, date string) (string, model.Session, error) {
	snap, _, err := s.store.Snapshot(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return "", model.Session{}, err
	}
	key := model.NormalizeDate(date)
	sess, _ := snap.Session(key)
	return key, sess, nil
}

// PutSession stores a session and returns the Sunday key it landed on.
func (s *Service) PutSession(ctx context.Context, date string, sess model.Session) (string, error) {
	key, _, err := s.store.PutSession(ctx, date, sess)
	if err != nil {
		metrics.RecordStoreError()
		return "", err
	}
	s.publishSnapshotMetrics(ctx)
	return key, nil
}

// SetSessionDate selects the current play date.
func (s *Service) SetSessionDate(ctx context.Context, date string) (string, error) {
	key, _, err := s.store.SetSessionDate(ctx, date)
	if err != nil {
		metrics.RecordStoreError()
		return "", err
	}
	s.publishSnapshotMetrics(ctx)
	return key, nil
}

// Standings computes (or recalls) a session's table and bonus map.
func (s *Service) Standings(ctx context.Context, date string) ([]standings.Row, map[model.TeamID]int, error) {
	snap, version, err := s.store.Snapshot(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, nil, err
	}
	key := model.NormalizeDate(date)

	memoKey := "standings|" + key
	if v, ok := s.cache.get(version, memoKey); ok {
		cached := v.(standingsMemo)
		return cached.table, cached.bonus, nil
	}
	metrics.RecordMemoMiss()

	start := time.Now()
	sess, _ := snap.Session(key)
	table := standings.Table(sess.Matches, sess.ActiveTeams())
	bonus := standings.Bonus(table, s.bonusOpts...)
	metrics.RecordRecompute("standings", float64(time.Since(start).Milliseconds()))

	s.cache.put(version, memoKey, standingsMemo{table: table, bonus: bonus})
	return table, bonus, nil
}

// SessionScores computes (or recalls) a session's score records.
func (s *Service) SessionScores(ctx context.Context, date string) ([]scoring.Record, error) {
	snap, version, err := s.store.Snapshot(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}
	key := model.NormalizeDate(date)

	memoKey := "scores|" + key
	if v, ok := s.cache.get(version, memoKey); ok {
		return v.([]scoring.Record), nil
	}
	metrics.RecordMemoMiss()

	start := time.Now()
	sess, _ := snap.Session(key)
	records := s.engine.SessionScores(sess, snap.Players)
	metrics.RecordRecompute("scores", float64(time.Since(start).Milliseconds()))

	s.cache.put(version, memoKey, records)
	return records, nil
}

// Aggregate computes (or recalls) cross-session totals for a filter.
func (s *Service) Aggregate(ctx context.Context, f aggregate.Filter) ([]aggregate.Record, error) {
	snap, version, err := s.store.Snapshot(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}

	memoKey := fmt.Sprintf("aggregate|%s|%s|%s|%s", f.Mode, f.Season, f.Start, f.End)
	if v, ok := s.cache.get(version, memoKey); ok {
		return v.([]aggregate.Record), nil
	}
	metrics.RecordMemoMiss()

	start := time.Now()
	records := s.aggregator.Totals(snap, f)
	metrics.RecordRecompute("aggregate", float64(time.Since(start).Milliseconds()))

	s.cache.put(version, memoKey, records)
	return records, nil
}

// RankingBoard derives one category's leaderboard under a filter.
func (s *Service) RankingBoard(ctx context.Context, cat ranking.Category, f aggregate.Filter) ([]ranking.Entry, error) {
	snap, version, err := s.store.Snapshot(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}

	memoKey := fmt.Sprintf("board|%s|%s|%s|%s|%s", cat, f.Mode, f.Season, f.Start, f.End)
	if v, ok := s.cache.get(version, memoKey); ok {
		return v.([]ranking.Entry), nil
	}
	metrics.RecordMemoMiss()

	aggs, err := s.Aggregate(ctx, f)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	board := ranking.Board(aggs, snap.Players, cat, s.boardRankLimit)
	metrics.RecordRecompute("board", float64(time.Since(start).Milliseconds()))

	s.cache.put(version, memoKey, board)
	return board, nil
}

// Seasons lists available half-year season ids, newest first.
func (s *Service) Seasons(ctx context.Context) ([]string, error) {
	snap, _, err := s.store.Snapshot(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}
	return aggregate.Seasons(snap.SessionsByDate), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	limit := s.boardRankLimit
	s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        started,
		"boardRankLimit": limit,
	}
	if !started {
		return stats
	}

	snap, version, err := s.store.Snapshot(context.Background())
	if err != nil {
		stats["storeError"] = err.Error()
		return stats
	}
	stats["snapshotVersion"] = version
	stats["players"] = len(snap.Players)
	stats["sessions"] = len(snap.SessionsByDate)
	stats["sessionDate"] = snap.SessionDate
	return stats
}

func (s *Service) publishSnapshotMetrics(ctx context.Context) {
	snap, version, err := s.store.Snapshot(ctx)
	if err != nil {
		return
	}
	metrics.UpdateSnapshot(version, len(snap.SessionsByDate), len(snap.Players))
}
