package standings

import "github.com/goldinfc/scorebook/internal/domain/model"

// Default bonus schedules keyed by final rank position.
var (
	defaultFourTeamSchedule  = []int{4, 3, 2, 1}
	defaultThreeTeamSchedule = []int{4, 2, 1}
)

// BonusOption adjusts the bonus schedules.
type BonusOption func(*bonusConfig)

type bonusConfig struct {
	fourTeam  []int
	threeTeam []int
}

// WithFourTeamSchedule overrides the schedule used when four teams
// are active.
func WithFourTeamSchedule(schedule []int) BonusOption {
	return func(c *bonusConfig) {
		if len(schedule) > 0 {
			c.fourTeam = schedule
		}
	}
}

// WithThreeTeamSchedule overrides the schedule used when at most
// three teams are active.
func WithThreeTeamSchedule(schedule []int) BonusOption {
	return func(c *bonusConfig) {
		if len(schedule) > 0 {
			c.threeTeam = schedule
		}
	}
}

// Bonus maps a sorted session table to per-team bonus points. The
// lookup is keyed purely by rank position; Table has already broken
// every tie, so each team holds a distinct rank. Four active teams pay
// 4/3/2/1, three or fewer pay 4/2/1 (a two-team table pays 4/2).
func Bonus(table []Row, opts ...BonusOption) map[model.TeamID]int {
	cfg := bonusConfig{
		fourTeam:  defaultFourTeamSchedule,
		threeTeam: defaultThreeTeamSchedule,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	schedule := cfg.threeTeam
	if len(table) >= 4 {
		schedule = cfg.fourTeam
	}

	out := make(map[model.TeamID]int, len(table))
	for i, row := range table {
		if i < len(schedule) {
			out[row.Team] = schedule[i]
		} else {
			out[row.Team] = 0
		}
	}
	return out
}
