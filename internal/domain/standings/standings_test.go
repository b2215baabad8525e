package standings_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/goldinfc/scorebook/internal/domain/model"
	"github.com/goldinfc/scorebook/internal/domain/standings"
)

func TestTable(t *testing.T) {
	Convey("Given a three-team session", t, func() {
		active := model.ActiveTeams(false)

		Convey("When A beats B 3-2 and B draws C 1-1", func() {
			matches := []model.Match{
				{ID: "m1", Seq: 1, Home: model.TeamA, Away: model.TeamB, HomeGoals: 3, AwayGoals: 2},
				{ID: "m2", Seq: 2, Home: model.TeamB, Away: model.TeamC, HomeGoals: 1, AwayGoals: 1},
			}
			table := standings.Table(matches, active)

			Convey("Then the table ranks A, C, B", func() {
				So(table, ShouldHaveLength, 3)
				So(table[0].Team, ShouldEqual, model.TeamA)
				So(table[1].Team, ShouldEqual, model.TeamC)
				So(table[2].Team, ShouldEqual, model.TeamB)
			})

			Convey("Then every row carries its record", func() {
				So(table[0], ShouldResemble, standings.Row{
					Team: model.TeamA, Points: 3, GoalsFor: 3, GoalsAgainst: 2, GoalDiff: 1, Wins: 1,
				})
				So(table[1], ShouldResemble, standings.Row{
					Team: model.TeamC, Points: 1, GoalsFor: 1, GoalsAgainst: 1, GoalDiff: 0, Draws: 1,
				})
				So(table[2], ShouldResemble, standings.Row{
					Team: model.TeamB, Points: 1, GoalsFor: 3, GoalsAgainst: 4, GoalDiff: -1, Draws: 1, Losses: 1,
				})
			})

			Convey("Then points and results stay in balance", func() {
				totalPoints, played := 0, 0
				for _, r := range table {
					totalPoints += r.Points
					played += r.Wins + r.Draws + r.Losses
				}
				// One decisive match pays 3, one draw pays 2; each match
				// counts once per side.
				So(totalPoints, ShouldEqual, 5)
				So(played, ShouldEqual, 4)
			})
		})

		Convey("When no matches were played", func() {
			table := standings.Table(nil, active)

			Convey("Then identical records fall back to team id order", func() {
				So(table[0].Team, ShouldEqual, model.TeamA)
				So(table[1].Team, ShouldEqual, model.TeamB)
				So(table[2].Team, ShouldEqual, model.TeamC)
			})
		})

		Convey("When a match references an inactive team", func() {
			matches := []model.Match{
				{ID: "m1", Home: model.TeamA, Away: model.TeamD, HomeGoals: 5, AwayGoals: 0},
				{ID: "m2", Home: model.TeamB, Away: model.TeamC, HomeGoals: 2, AwayGoals: 0},
			}
			table := standings.Table(matches, active)

			Convey("Then that match is skipped entirely", func() {
				So(table[0].Team, ShouldEqual, model.TeamB)
				So(table[0].GoalsFor, ShouldEqual, 2)
				for _, r := range table {
					if r.Team == model.TeamA {
						So(r.Points, ShouldEqual, 0)
						So(r.GoalsFor, ShouldEqual, 0)
					}
				}
			})
		})
	})

	Convey("Given a four-team session with equal points", t, func() {
		matches := []model.Match{
			{ID: "m1", Home: model.TeamA, Away: model.TeamB, HomeGoals: 2, AwayGoals: 2},
			{ID: "m2", Home: model.TeamC, Away: model.TeamD, HomeGoals: 0, AwayGoals: 0},
		}
		table := standings.Table(matches, model.ActiveTeams(true))

		Convey("Then goals for breaks the goal-difference tie", func() {
			So(table[0].Team, ShouldEqual, model.TeamA)
			So(table[1].Team, ShouldEqual, model.TeamB)
			So(table[2].Team, ShouldEqual, model.TeamC)
			So(table[3].Team, ShouldEqual, model.TeamD)
		})
	})
}

func TestBonus(t *testing.T) {
	Convey("Given a ranked three-team table", t, func() {
		table := []standings.Row{
			{Team: model.TeamA}, {Team: model.TeamC}, {Team: model.TeamB},
		}

		Convey("Then ranks pay 4, 2, 1", func() {
			bonus := standings.Bonus(table)
			So(bonus[model.TeamA], ShouldEqual, 4)
			So(bonus[model.TeamC], ShouldEqual, 2)
			So(bonus[model.TeamB], ShouldEqual, 1)
		})
	})

	Convey("Given a ranked four-team table", t, func() {
		table := []standings.Row{
			{Team: model.TeamB}, {Team: model.TeamA}, {Team: model.TeamD}, {Team: model.TeamC},
		}
		bonus := standings.Bonus(table)

		Convey("Then ranks pay 4, 3, 2, 1", func() {
			So(bonus[model.TeamB], ShouldEqual, 4)
			So(bonus[model.TeamA], ShouldEqual, 3)
			So(bonus[model.TeamD], ShouldEqual, 2)
			So(bonus[model.TeamC], ShouldEqual, 1)
		})

		Convey("Then the schedule pays out ten in total", func() {
			sum := 0
			for _, v := range bonus {
				sum += v
			}
			So(sum, ShouldEqual, 10)
		})
	})

	Convey("Given schedule overrides", t, func() {
		table := []standings.Row{
			{Team: model.TeamA}, {Team: model.TeamB}, {Team: model.TeamC},
		}
		bonus := standings.Bonus(table, standings.WithThreeTeamSchedule([]int{5, 3, 1}))

		So(bonus[model.TeamA], ShouldEqual, 5)
		So(bonus[model.TeamB], ShouldEqual, 3)
		So(bonus[model.TeamC], ShouldEqual, 1)
	})

	Convey("Given a two-team table", t, func() {
		table := []standings.Row{{Team: model.TeamA}, {Team: model.TeamB}}
		bonus := standings.Bonus(table)

		Convey("Then only the first two schedule slots pay", func() {
			So(bonus[model.TeamA], ShouldEqual, 4)
			So(bonus[model.TeamB], ShouldEqual, 2)
		})
	})
}
