// Package standings folds a session's matches into a ranked table and
// maps that table to the per-team bonus schedule.
package standings

import (
	"sort"

	"github.com/goldinfc/scorebook/internal/domain/model"
)

// Points awarded per match result.
const (
	winPoints  = 3
	drawPoints = 1
)

// Row is one team's line in the session table.
type Row struct {
	Team         model.TeamID `json:"team"`
	Points       int          `json:"points"`
	GoalsFor     int          `json:"goalsFor"`
	GoalsAgainst int          `json:"goalsAgainst"`
	GoalDiff     int          `json:"goalDiff"`
	Wins         int          `json:"wins"`
	Draws        int          `json:"draws"`
	Losses       int          `json:"losses"`
}

// Table folds matches into one row per active team, sorted by
// (points, goal difference, goals for) descending with remaining ties
// broken by ascending team identifier. Matches that reference a team
// outside the active set are skipped, not rejected.
func Table(matches []model.Match, active []model.TeamID) []Row {
	rows := make(map[model.TeamID]*Row, len(active))
	for _, t := range active {
		rows[t] = &Row{Team: t}
	}

	for _, m := range matches {
		home, hok := rows[m.Home]
		away, aok := rows[m.Away]
		if !hok || !aok {
			continue
		}
		home.GoalsFor += m.HomeGoals
		home.GoalsAgainst += m.AwayGoals
		away.GoalsFor += m.AwayGoals
		away.GoalsAgainst += m.HomeGoals

		switch {
		case m.HomeGoals > m.AwayGoals:
			home.Points += winPoints
			home.Wins++
			away.Losses++
		case m.HomeGoals < m.AwayGoals:
			away.Points += winPoints
			away.Wins++
			home.Losses++
		default:
			home.Points += drawPoints
			away.Points += drawPoints
			home.Draws++
			away.Draws++
		}
	}

	out := make([]Row, 0, len(active))
	for _, t := range active {
		r := rows[t]
		r.GoalDiff = r.GoalsFor - r.GoalsAgainst
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	return out
}
