package model

import (
	"sort"

	"github.com/google/uuid"
)

// EmptySession returns a session with zeroed defaults and empty
// rosters for every team slot.
func EmptySession() Session {
	return Session{
		Rosters: map[TeamID][]string{
			TeamA: {}, TeamB: {}, TeamC: {}, TeamD: {},
		},
		Matches:           []Match{},
		MatchStats:        map[string]map[string]StatLine{},
		DefenseAwards:     map[TeamID]string{},
		PositionOverrides: map[string]Position{},
	}
}

// NormalizePosition coerces any stored role string to a Position.
// Everything that is not recognizably a keeper is a field player.
func NormalizePosition(raw string) Position {
	switch raw {
	case string(PositionKeeper), "keeper", "gk":
		return PositionKeeper
	}
	return PositionField
}

// NormalizePlayer fills missing ids and defaults a blank name.
func NormalizePlayer(p Player) Player {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Name == "" {
		p.Name = "?"
	}
	p.Pos = NormalizePosition(string(p.Pos))
	return p
}

// NormalizeSession defaults every missing or malformed field of a
// loaded session so downstream code can assume a well-formed shape.
// Match sequence numbers are backfilled in list order when absent or
// non-positive, and goals are clamped to non-negative values.
func NormalizeSession(s Session) Session {
	out := EmptySession()

	for _, t := range AllTeams() {
		if ids := s.Roster(t); ids != nil {
			roster := make([]string, 0, len(ids))
			for _, id := range ids {
				if id != "" {
					roster = append(roster, id)
				}
			}
			out.Rosters[t] = roster
		}
	}

	seq := 1
	for _, m := range s.Matches {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if !IsTeamID(string(m.Home)) {
			m.Home = TeamA
		}
		if !IsTeamID(string(m.Away)) {
			m.Away = TeamB
		}
		if m.HomeGoals < 0 {
			m.HomeGoals = 0
		}
		if m.AwayGoals < 0 {
			m.AwayGoals = 0
		}
		if m.Seq <= 0 {
			m.Seq = seq
		}
		seq++
		out.Matches = append(out.Matches, m)
	}

	for mid, row := range s.MatchStats {
		if mid == "" || row == nil {
			continue
		}
		safe := make(map[string]StatLine, len(row))
		for key, line := range row {
			if key == "" {
				continue
			}
			if line.Goals < 0 {
				line.Goals = 0
			}
			if line.Assists < 0 {
				line.Assists = 0
			}
			safe[key] = line
		}
		out.MatchStats[mid] = safe
	}

	for _, t := range AllTeams() {
		if pid, ok := s.DefenseAwards[t]; ok && pid != "" {
			out.DefenseAwards[t] = pid
		}
	}

	out.HasFourthTeam = s.HasFourthTeam

	for pid, pos := range s.PositionOverrides {
		if pid == "" {
			continue
		}
		out.PositionOverrides[pid] = NormalizePosition(string(pos))
	}

	out.TeamNames = s.TeamNames
	out.Notes = s.Notes
	out.Formations = s.Formations
	out.RosterConfirmed = s.RosterConfirmed
	return out
}

// NormalizeSnapshot defaults a loaded snapshot: players get ids,
// team slots get display names, session keys land on their Sunday,
// and the selected date always has a session. The result shares no
// mutable state with the input, so it doubles as a deep copy.
func NormalizeSnapshot(s Snapshot) Snapshot {
	out := Snapshot{
		Players:        make([]Player, 0, len(s.Players)),
		TeamNames:      map[TeamID]string{},
		SessionsByDate: map[string]Session{},
	}

	for _, p := range s.Players {
		out.Players = append(out.Players, NormalizePlayer(p))
	}

	defaults := map[TeamID]string{TeamA: "Team A", TeamB: "Team B", TeamC: "Team C", TeamD: "Team D"}
	for _, t := range AllTeams() {
		name := s.TeamNames[t]
		if name == "" {
			name = defaults[t]
		}
		out.TeamNames[t] = name
	}

	for key, sess := range s.SessionsByDate {
		out.SessionsByDate[NormalizeDate(key)] = NormalizeSession(sess)
	}

	out.SessionDate = NormalizeDate(s.SessionDate)
	if _, ok := out.SessionsByDate[out.SessionDate]; !ok {
		out.SessionsByDate[out.SessionDate] = EmptySession()
	}
	return out
}

// SessionDates returns the snapshot's session keys in ascending
// date order.
func (s Snapshot) SessionDates() []string {
	dates := make([]string, 0, len(s.SessionsByDate))
	for k := range s.SessionsByDate {
		dates = append(dates, k)
	}
	sort.Strings(dates)
	return dates
}
