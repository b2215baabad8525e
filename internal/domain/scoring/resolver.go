package scoring

import (
	"regexp"
	"strings"

	"github.com/goldinfc/scorebook/internal/domain/model"
)

// Stat entries accumulated over years of hand-entered data address
// players three different ways: a real player id, a label with an id
// embedded somewhere inside it, or a bare name that may carry a role
// suffix like "(GK)". The resolver tries each strategy in a fixed
// order and the first hit wins; a key that resolves nowhere simply
// contributes nothing.
var (
	idTokenPattern   = regexp.MustCompile(`(?i)[a-z0-9]{6,}`)
	roleWordPattern  = regexp.MustCompile(`(?i)(골키퍼|GK|필드|FIELD|GOALKEEPER)`)
	trailingParens   = regexp.MustCompile(`\s*\(.*?\)\s*$`)
	decorationRunes  = regexp.MustCompile(`[🧤🧱🛡⚽🎯■□]+`)
	innerWhitespace  = regexp.MustCompile(`\s+`)
)

// normalizeNameKey strips role labels, trailing parentheticals, and
// decorations from a hand-entered key, leaving a comparable name.
func normalizeNameKey(key string) string {
	s := strings.TrimSpace(key)
	s = trailingParens.ReplaceAllString(s, "")
	s = roleWordPattern.ReplaceAllString(s, "")
	s = decorationRunes.ReplaceAllString(s, "")
	s = innerWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// resolveKey maps a stat-entry key to a player id. The second return
// lists every player matched by the final containment strategy; more
// than one entry there means the key was ambiguous and the first match
// (player-list order) was chosen.
func resolveKey(key string, players []model.Player) (string, []model.Player, bool) {
	k := strings.TrimSpace(key)
	if k == "" {
		return "", nil, false
	}

	for _, p := range players {
		if p.ID == k {
			return p.ID, nil, true
		}
	}

	if token := idTokenPattern.FindString(k); token != "" {
		for _, p := range players {
			if p.ID == token {
				return p.ID, nil, true
			}
		}
	}

	nk := normalizeNameKey(k)
	if nk == "" {
		return "", nil, false
	}

	for _, p := range players {
		if p.Name == nk {
			return p.ID, nil, true
		}
	}

	// Containment either way covers keys like "김한진 GK" as well as
	// truncated entries. Names that are substrings of each other can
	// mis-resolve here; that ordering is kept for compatibility with
	// existing data and surfaced to the caller instead of changed.
	var contained []model.Player
	for _, p := range players {
		if p.Name != "" && (strings.Contains(nk, p.Name) || strings.Contains(p.Name, nk)) {
			contained = append(contained, p)
		}
	}
	if len(contained) > 0 {
		return contained[0].ID, contained, true
	}

	return "", nil, false
}
