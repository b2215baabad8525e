// Package ranking derives top-N leaderboards per stat category from a
// cross-session aggregate.
package ranking

import (
	"sort"

	"github.com/goldinfc/scorebook/internal/domain/aggregate"
	"github.com/goldinfc/scorebook/internal/domain/model"
)

// DefaultRankLimit caps boards at five ranks (not five rows: a five-way
// tie at rank 1 yields five rows).
const DefaultRankLimit = 5

// Category names a rankable stat.
type Category string

const (
	Goals        Category = "goals"
	Assists      Category = "assists"
	CleanSheets  Category = "cleanSheets"
	DefenseBonus Category = "defenseBonus"
	TeamBonus    Category = "teamBonus"
	Total        Category = "total"
)

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case Goals, Assists, CleanSheets, DefenseBonus, TeamBonus, Total:
		return Category(s), true
	}
	return "", false
}

// Entry is one board row.
type Entry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Value    int    `json:"value"`
}

// Board extracts the leaderboard for one category. The clean-sheet
// board is restricted to players whose global position is keeper.
// Zero-value entries never appear, even when that leaves the board
// empty. Ties share a dense competition rank: each distinct lower
// value takes the 1-based position of its first holder, so the rank
// sequence can skip values after a tie (1, 1, 3).
func Board(aggs []aggregate.Record, players []model.Player, cat Category, rankLimit int) []Entry {
	if rankLimit <= 0 {
		rankLimit = DefaultRankLimit
	}

	rows := make([]aggregate.Record, 0, len(aggs))
	for _, rec := range aggs {
		if cat == CleanSheets && !isGlobalKeeper(rec.PlayerID, players) {
			continue
		}
		if value(rec, cat) > 0 {
			rows = append(rows, rec)
		}
	}
	// Stable keeps the aggregate's own (total, name) order for ties.
	sort.SliceStable(rows, func(i, j int) bool {
		return value(rows[i], cat) > value(rows[j], cat)
	})

	out := make([]Entry, 0, len(rows))
	rank := 1
	prev := -1
	for i, rec := range rows {
		v := value(rec, cat)
		if i > 0 && v < prev {
			rank = i + 1
		}
		if rank > rankLimit {
			break
		}
		out = append(out, Entry{Rank: rank, PlayerID: rec.PlayerID, Name: rec.Name, Value: v})
		prev = v
	}
	return out
}

func value(rec aggregate.Record, cat Category) int {
	switch cat {
	case Goals:
		return rec.Goals
	case Assists:
		return rec.Assists
	case CleanSheets:
		return rec.CleanSheets
	case DefenseBonus:
		return rec.DefenseBonus
	case TeamBonus:
		return rec.TeamBonus
	default:
		return rec.Total
	}
}

func isGlobalKeeper(pid string, players []model.Player) bool {
	for _, p := range players {
		if p.ID == pid {
			return p.Pos == model.PositionKeeper
		}
	}
	return false
}
