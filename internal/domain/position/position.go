// Package position resolves a player's effective role for one date.
package position

import "github.com/goldinfc/scorebook/internal/domain/model"

// Resolve returns the position a player plays on the session's date.
// Precedence: the session's override, else the player's global role,
// else field when the player record is missing entirely.
func Resolve(playerID string, session model.Session, players []model.Player) model.Position {
	if ov, ok := session.PositionOverrides[playerID]; ok {
		return ov
	}
	for _, p := range players {
		if p.ID == playerID {
			return p.Pos
		}
	}
	return model.PositionField
}

// IsKeeper reports whether the player keeps goal on this date.
func IsKeeper(playerID string, session model.Session, players []model.Player) bool {
	return Resolve(playerID, session, players) == model.PositionKeeper
}

// Keepers returns the subset of roster ids whose effective position is
// keeper, preserving roster order.
func Keepers(roster []string, session model.Session, players []model.Player) []string {
	var out []string
	for _, pid := range roster {
		if IsKeeper(pid, session, players) {
			out = append(out, pid)
		}
	}
	return out
}
