// Package model contains the league records passed between layers.
package model

// TeamID identifies one of the fixed team slots.
type TeamID string

// Team slot identifiers. D only participates when a session enables it.
const (
	TeamA TeamID = "A"
	TeamB TeamID = "B"
	TeamC TeamID = "C"
	TeamD TeamID = "D"
)

// AllTeams returns every team slot in identifier order.
func AllTeams() []TeamID {
	return []TeamID{TeamA, TeamB, TeamC, TeamD}
}

// ActiveTeams returns the ordered active team set for a session:
// A/B/C, extended with D when the session fields a fourth team.
func ActiveTeams(hasFourthTeam bool) []TeamID {
	if hasFourthTeam {
		return []TeamID{TeamA, TeamB, TeamC, TeamD}
	}
	return []TeamID{TeamA, TeamB, TeamC}
}

// IsTeamID reports whether s names a known team slot.
func IsTeamID(s string) bool {
	switch TeamID(s) {
	case TeamA, TeamB, TeamC, TeamD:
		return true
	}
	return false
}

// Position is a player's role on the pitch.
type Position string

const (
	PositionField  Position = "FIELD"
	PositionKeeper Position = "GK"
)

// Player is a global identity that persists across sessions.
// Pos is the default role; a session may shadow it for one date.
type Player struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Active bool     `json:"active"`
	Pos    Position `json:"pos"`
}

// Match is one game inside a session. Keeper fields hold the player
// key recorded for each side; legacy data may store a name instead of
// an id, so they are resolved by the scoring layer, not here.
type Match struct {
	ID         string `json:"id"`
	Seq        int    `json:"seq"`
	Home       TeamID `json:"home"`
	Away       TeamID `json:"away"`
	HomeGoals  int    `json:"homeGoals"`
	AwayGoals  int    `json:"awayGoals"`
	HomeKeeper string `json:"homeKeeper,omitempty"`
	AwayKeeper string `json:"awayKeeper,omitempty"`
}

// StatLine is one manually entered per-match stat entry. The map key
// addressing it may be a player id or a legacy name-derived key.
type StatLine struct {
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
}

// Session is the unit of a single play date. Roster membership is
// session-scoped: a player may be on team A one week and C the next.
//
// TeamNames, Notes, Formations and RosterConfirmed are display-only
// fields carried through persistence; the engine never reads them.
type Session struct {
	Rosters           map[TeamID][]string            `json:"rosters"`
	Matches           []Match                        `json:"matches"`
	MatchStats        map[string]map[string]StatLine `json:"matchStats"`
	DefenseAwards     map[TeamID]string              `json:"defenseAwards"`
	HasFourthTeam     bool                           `json:"hasFourthTeam"`
	PositionOverrides map[string]Position            `json:"positionOverrides"`

	TeamNames       map[TeamID]string `json:"teamNames,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Formations      map[TeamID]string `json:"formations,omitempty"`
	RosterConfirmed map[TeamID]bool   `json:"rosterConfirmed,omitempty"`
}

// ActiveTeams returns the session's ordered active team set.
func (s Session) ActiveTeams() []TeamID {
	return ActiveTeams(s.HasFourthTeam)
}

// Roster returns the roster for a team; nil when the session carries
// no roster map at all.
func (s Session) Roster(t TeamID) []string {
	if s.Rosters == nil {
		return nil
	}
	return s.Rosters[t]
}

// Snapshot is the full persisted state handed to the engine:
// the global player list, display names for team slots, every session
// keyed by its Sunday-normalized ISO date, and the selected date.
type Snapshot struct {
	Players        []Player           `json:"players"`
	TeamNames      map[TeamID]string  `json:"teamNames"`
	SessionsByDate map[string]Session `json:"sessionsByDate"`
	SessionDate    string             `json:"sessionDate"`
}

// PlayerByID returns the player record for id, if present.
func (s Snapshot) PlayerByID(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Session returns the session stored under the Sunday key for date.
// Missing sessions come back empty rather than as an error.
func (s Snapshot) Session(date string) (Session, bool) {
	key := NormalizeDate(date)
	sess, ok := s.SessionsByDate[key]
	if !ok {
		return EmptySession(), false
	}
	return sess, true
}
