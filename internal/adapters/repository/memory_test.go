package repository_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/goldinfc/scorebook/internal/adapters/repository"
	"github.com/goldinfc/scorebook/internal/domain/model"
)

func seedSnapshot() model.Snapshot {
	return model.Snapshot{
		Players: []model.Player{
			{ID: "p1", Name: "Kim", Active: true, Pos: model.PositionKeeper},
		},
		SessionDate: "2025-03-02",
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a seeded memory store", t, func() {
		store := repository.NewMemoryStore(seedSnapshot())

		Convey("Then the snapshot comes back normalized at version one", func() {
			snap, version, err := store.Snapshot(ctx)
			So(err, ShouldBeNil)
			So(version, ShouldEqual, 1)
			So(snap.Players, ShouldHaveLength, 1)
			So(snap.SessionsByDate, ShouldContainKey, "2025-03-02")
			So(snap.TeamNames[model.TeamA], ShouldEqual, "Team A")
		})

		Convey("When a session is stored under a weekday date", func() {
			sess := model.EmptySession()
			sess.Rosters[model.TeamA] = []string{"p1"}
			key, version, err := store.PutSession(ctx, "2025-03-05", sess)

			Convey("Then the key lands on the Sunday and the version bumps", func() {
				So(err, ShouldBeNil)
				So(key, ShouldEqual, "2025-03-09")
				So(version, ShouldEqual, 2)

				snap, _, err := store.Snapshot(ctx)
				So(err, ShouldBeNil)
				So(snap.SessionsByDate["2025-03-09"].Rosters[model.TeamA], ShouldResemble, []string{"p1"})
			})
		})

		Convey("When the player list is replaced", func() {
			_, err := store.PutPlayers(ctx, []model.Player{{Name: "Lee", Active: true}})
			So(err, ShouldBeNil)

			snap, version, err := store.Snapshot(ctx)
			So(err, ShouldBeNil)
			So(version, ShouldEqual, 2)
			So(snap.Players, ShouldHaveLength, 1)

			Convey("Then the new player got an id on the way in", func() {
				So(snap.Players[0].ID, ShouldNotBeEmpty)
				So(snap.Players[0].Name, ShouldEqual, "Lee")
			})
		})

		Convey("When the session date moves to a new week", func() {
			key, _, err := store.SetSessionDate(ctx, "2025-04-02")
			So(err, ShouldBeNil)
			So(key, ShouldEqual, "2025-04-06")

			snap, _, err := store.Snapshot(ctx)
			So(err, ShouldBeNil)

			Convey("Then the selected week gains an empty session", func() {
				So(snap.SessionDate, ShouldEqual, "2025-04-06")
				So(snap.SessionsByDate, ShouldContainKey, "2025-04-06")
			})
		})

		Convey("When a caller mutates a returned snapshot", func() {
			snap, _, err := store.Snapshot(ctx)
			So(err, ShouldBeNil)
			snap.Players[0].Name = "changed"

			again, _, err := store.Snapshot(ctx)
			So(err, ShouldBeNil)

			Convey("Then the store is unaffected", func() {
				So(again.Players[0].Name, ShouldEqual, "Kim")
			})
		})

		Convey("When the store is closed", func() {
			So(store.Close(), ShouldBeNil)

			_, _, err := store.Snapshot(ctx)
			So(err, ShouldEqual, repository.ErrClosed)

			_, _, err = store.PutSession(ctx, "2025-03-02", model.EmptySession())
			So(err, ShouldEqual, repository.ErrClosed)
		})
	})
}
