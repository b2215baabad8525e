// Package aggregate sums per-session score records over a filtered
// window of dates and derives per-player averages.
package aggregate

import (
	"math"
	"sort"

	"golang.org/x/text/collate"

	"github.com/goldinfc/scorebook/internal/domain/collation"
	"github.com/goldinfc/scorebook/internal/domain/model"
	"github.com/goldinfc/scorebook/internal/domain/scoring"
)

// Record is one player's totals over the selected sessions.
// SessionsPresent counts sessions where the player was on any roster,
// whether or not they recorded anything.
type Record struct {
	PlayerID        string  `json:"playerId"`
	Name            string  `json:"name"`
	Goals           int     `json:"goals"`
	Assists         int     `json:"assists"`
	CleanSheets     int     `json:"cleanSheets"`
	DefenseBonus    int     `json:"defenseBonus"`
	TeamBonus       int     `json:"teamBonus"`
	Total           int     `json:"total"`
	SessionsPresent int     `json:"sessionsPresent"`
	Average         float64 `json:"average"`
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithCollator sets the collator used for name tie-breaks.
func WithCollator(c *collate.Collator) Option {
	return func(a *Aggregator) {
		if c != nil {
			a.collator = c
		}
	}
}

// WithEngine sets the per-session scoring engine.
func WithEngine(e *scoring.Engine) Option {
	return func(a *Aggregator) {
		if e != nil {
			a.engine = e
		}
	}
}

// Aggregator folds per-session scores into cross-session totals.
// Like the scoring engine it is pure configuration; no call mutates
// its inputs or retains state between invocations.
type Aggregator struct {
	engine   *scoring.Engine
	collator *collate.Collator
}

// New creates an Aggregator with default configuration.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		engine:   scoring.New(),
		collator: collation.New("ko"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Totals aggregates every session admitted by the filter, sorted by
// total descending with names collated ascending. A player's average
// is their total over sessions present, rounded to two decimals, or
// zero when they were never present.
func (a *Aggregator) Totals(snapshot model.Snapshot, f Filter) []Record {
	acc := map[string]*Record{}

	for _, date := range SelectDates(snapshot.SessionsByDate, f) {
		session := snapshot.SessionsByDate[date]

		present := map[string]bool{}
		for _, t := range model.AllTeams() {
			for _, pid := range session.Roster(t) {
				present[pid] = true
			}
		}

		for _, rec := range a.engine.SessionScores(session, snapshot.Players) {
			b, ok := acc[rec.PlayerID]
			if !ok {
				b = &Record{PlayerID: rec.PlayerID, Name: rec.Name}
				acc[rec.PlayerID] = b
			}
			b.Goals += rec.Goals
			b.Assists += rec.Assists
			b.CleanSheets += rec.CleanSheets
			b.DefenseBonus += rec.DefenseBonus
			b.TeamBonus += rec.TeamBonus
			b.Total += rec.Total
			if present[rec.PlayerID] {
				b.SessionsPresent++
			}
		}
	}

	out := make([]Record, 0, len(acc))
	for _, b := range acc {
		if b.SessionsPresent > 0 {
			b.Average = round2(float64(b.Total) / float64(b.SessionsPresent))
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return a.collator.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
