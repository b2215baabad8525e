// Package scoring turns one session's matches, rosters, and stat
// entries into a score record per player.
package scoring

import (
	"context"
	"sort"

	"golang.org/x/text/collate"

	"github.com/goldinfc/scorebook/internal/domain/collation"
	"github.com/goldinfc/scorebook/internal/domain/model"
	"github.com/goldinfc/scorebook/internal/domain/position"
	"github.com/goldinfc/scorebook/internal/domain/standings"
	"github.com/goldinfc/scorebook/pkg/logger"
)

// Fixed point values.
const (
	defenseBonusPoints     = 2
	keeperSplitTopBonus    = 4
	keeperSplitSecondBonus = 2
)

// Record is one player's derived score for one session.
type Record struct {
	PlayerID     string       `json:"playerId"`
	Name         string       `json:"name"`
	Team         model.TeamID `json:"team,omitempty"`
	Goals        int          `json:"goals"`
	Assists      int          `json:"assists"`
	CleanSheets  int          `json:"cleanSheets"`
	DefenseBonus int          `json:"defenseBonus"`
	TeamBonus    int          `json:"teamBonus"`
	Total        int          `json:"total"`
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCollator sets the collator used for name tie-breaks.
func WithCollator(c *collate.Collator) Option {
	return func(e *Engine) {
		if c != nil {
			e.collator = c
		}
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithBonusOptions forwards schedule overrides to the bonus allocator.
func WithBonusOptions(opts ...standings.BonusOption) Option {
	return func(e *Engine) {
		e.bonusOpts = opts
	}
}

// Engine computes session score records. It holds only configuration,
// never state: every call reads its inputs and returns fresh values,
// so equal snapshots always produce equal results.
type Engine struct {
	collator  *collate.Collator
	log       logger.Logger
	bonusOpts []standings.BonusOption
}

// New creates an Engine with default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		collator: collation.New("ko"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type statTotals struct {
	goals       int
	assists     int
	cleanSheets int
}

// SessionScores computes one record per player appearing in any roster
// or any stat entry of the session, sorted by total descending with
// names collated ascending. Players with no recorded activity still
// appear with zero fields.
func (e *Engine) SessionScores(session model.Session, players []model.Player) []Record {
	totals := map[string]*statTotals{}
	add := func(pid string) *statTotals {
		t, ok := totals[pid]
		if !ok {
			t = &statTotals{}
			totals[pid] = t
		}
		return t
	}

	// Goals and assists from manual stat entries, clean sheets from
	// the recorded keepers of shutout matches.
	for _, m := range session.Matches {
		for key, line := range session.MatchStats[m.ID] {
			pid, ok := e.resolve(key, players)
			if !ok {
				continue
			}
			t := add(pid)
			t.goals += line.Goals
			t.assists += line.Assists
		}
		if m.AwayGoals == 0 && m.HomeKeeper != "" {
			if pid, ok := e.resolve(m.HomeKeeper, players); ok {
				add(pid).cleanSheets++
			}
		}
		if m.HomeGoals == 0 && m.AwayKeeper != "" {
			if pid, ok := e.resolve(m.AwayKeeper, players); ok {
				add(pid).cleanSheets++
			}
		}
	}

	// Every rostered player gets a row even with no recorded activity.
	for _, t := range model.AllTeams() {
		for _, pid := range session.Roster(t) {
			add(pid)
		}
	}

	active := session.ActiveTeams()
	table := standings.Table(session.Matches, active)
	bonusByTeam := standings.Bonus(table, e.bonusOpts...)
	hasMatches := len(session.Matches) > 0

	keeperWins := e.keeperWins(session, players)
	teamKeepers := map[model.TeamID][]string{}
	for _, t := range active {
		teamKeepers[t] = position.Keepers(session.Roster(t), session, players)
	}

	out := make([]Record, 0, len(totals))
	for pid, t := range totals {
		team := teamOf(pid, session, active)

		defense := 0
		if team != "" && session.DefenseAwards[team] == pid {
			defense = defenseBonusPoints
		}

		teamBonus := 0
		if team != "" && hasMatches {
			base := bonusByTeam[team]
			if position.IsKeeper(pid, session, players) && len(teamKeepers[team]) >= 2 {
				teamBonus = e.splitKeeperBonus(pid, teamKeepers[team], keeperWins, totals, players)
			} else {
				teamBonus = base
			}
		}

		rec := Record{
			PlayerID:     pid,
			Name:         nameOf(pid, players),
			Team:         team,
			Goals:        t.goals,
			Assists:      t.assists,
			CleanSheets:  t.cleanSheets,
			DefenseBonus: defense,
			TeamBonus:    teamBonus,
		}
		rec.Total = rec.Goals + rec.Assists + rec.CleanSheets + rec.DefenseBonus + rec.TeamBonus
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return e.collator.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// keeperWins counts, per resolved keeper id, the matches in which that
// keeper was the recorded keeper of the winning side.
func (e *Engine) keeperWins(session model.Session, players []model.Player) map[string]int {
	wins := map[string]int{}
	for _, m := range session.Matches {
		switch {
		case m.HomeGoals > m.AwayGoals && m.HomeKeeper != "":
			if pid, ok := e.resolve(m.HomeKeeper, players); ok {
				wins[pid]++
			}
		case m.AwayGoals > m.HomeGoals && m.AwayKeeper != "":
			if pid, ok := e.resolve(m.AwayKeeper, players); ok {
				wins[pid]++
			}
		}
	}
	return wins
}

// splitKeeperBonus resolves the team bonus among a team that fields
// two or more keepers: rank by wins, then clean sheets, then collated
// name. A full tie between the top two pays both the top bonus;
// otherwise the top keeper takes 4 and the runner-up 2.
func (e *Engine) splitKeeperBonus(pid string, keepers []string, wins map[string]int, totals map[string]*statTotals, players []model.Player) int {
	cs := func(id string) int {
		if t, ok := totals[id]; ok {
			return t.cleanSheets
		}
		return 0
	}

	ranked := append([]string(nil), keepers...)
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if wins[a] != wins[b] {
			return wins[a] > wins[b]
		}
		if cs(a) != cs(b) {
			return cs(a) > cs(b)
		}
		return e.collator.CompareString(nameOf(a, players), nameOf(b, players)) < 0
	})

	top, second := ranked[0], ranked[1]
	if wins[top] == wins[second] && cs(top) == cs(second) {
		if pid == top || pid == second {
			return keeperSplitTopBonus
		}
		return 0
	}
	switch pid {
	case top:
		return keeperSplitTopBonus
	case second:
		return keeperSplitSecondBonus
	}
	return 0
}

// resolve wraps resolveKey with ambiguity logging. Ambiguous keys are
// flagged, never rejected.
func (e *Engine) resolve(key string, players []model.Player) (string, bool) {
	pid, candidates, ok := resolveKey(key, players)
	if ok && len(candidates) > 1 && e.log != nil {
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			names = append(names, c.Name)
		}
		e.log.Warn(context.Background(), "ambiguous stat key; using first match",
			logger.String("key", key),
			logger.Any("candidates", names),
		)
	}
	return pid, ok
}

// teamOf returns the first active team whose roster lists the player,
// or empty when the player is not rostered.
func teamOf(pid string, session model.Session, active []model.TeamID) model.TeamID {
	for _, t := range active {
		for _, id := range session.Roster(t) {
			if id == pid {
				return t
			}
		}
	}
	return ""
}

func nameOf(pid string, players []model.Player) string {
	for _, p := range players {
		if p.ID == pid {
			return p.Name
		}
	}
	return "?"
}
