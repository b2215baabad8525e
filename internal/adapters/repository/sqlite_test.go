package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/goldinfc/scorebook/internal/adapters/repository"
	"github.com/goldinfc/scorebook/internal/domain/model"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a sqlite store on a fresh file", t, func() {
		// Each branch re-runs this closure; a fresh directory per run
		// keeps version numbers deterministic.
		path := filepath.Join(t.TempDir(), "league.db")
		store, err := repository.NewSQLiteStore(ctx, path, seedSnapshot())
		So(err, ShouldBeNil)

		Convey("Then the seed is persisted at version one", func() {
			snap, version, err := store.Snapshot(ctx)
			So(err, ShouldBeNil)
			So(version, ShouldEqual, 1)
			So(snap.Players, ShouldHaveLength, 1)
			So(store.Close(), ShouldBeNil)
		})

		Convey("When state is written and the store reopened", func() {
			sess := model.EmptySession()
			sess.Rosters[model.TeamB] = []string{"p1"}
			sess.Matches = []model.Match{
				{ID: "m1", Seq: 1, Home: model.TeamA, Away: model.TeamB, HomeGoals: 1, AwayGoals: 2},
			}
			key, version, err := store.PutSession(ctx, "2025-03-04", sess)
			So(err, ShouldBeNil)
			So(key, ShouldEqual, "2025-03-09")
			So(version, ShouldEqual, 2)

			_, err = store.PutPlayers(ctx, []model.Player{
				{ID: "p1", Name: "Kim", Active: true, Pos: model.PositionKeeper},
				{ID: "p2", Name: "Lee", Active: true, Pos: model.PositionField},
			})
			So(err, ShouldBeNil)
			So(store.Close(), ShouldBeNil)

			reopened, err := repository.NewSQLiteStore(ctx, path, model.Snapshot{})
			So(err, ShouldBeNil)
			defer func() { So(reopened.Close(), ShouldBeNil) }()

			Convey("Then the reopened store carries the written state", func() {
				snap, version, err := reopened.Snapshot(ctx)
				So(err, ShouldBeNil)
				So(version, ShouldEqual, 3)
				So(snap.Players, ShouldHaveLength, 2)
				So(snap.SessionsByDate["2025-03-09"].Rosters[model.TeamB], ShouldResemble, []string{"p1"})
				So(snap.SessionsByDate["2025-03-09"].Matches, ShouldHaveLength, 1)
			})

			Convey("Then the seed of a non-empty database is ignored", func() {
				snap, _, err := reopened.Snapshot(ctx)
				So(err, ShouldBeNil)
				So(snap.SessionDate, ShouldEqual, "2025-03-02")
			})
		})

		Convey("When the store is closed", func() {
			So(store.Close(), ShouldBeNil)

			_, _, err := store.Snapshot(ctx)
			So(err, ShouldEqual, repository.ErrClosed)

			Convey("Then closing again is a no-op", func() {
				So(store.Close(), ShouldBeNil)
			})
		})
	})

	Convey("Given an empty sqlite path", t, func() {
		_, err := repository.NewSQLiteStore(ctx, "  ", model.Snapshot{})
		So(err, ShouldWrap, repository.ErrOpenStore)
	})
}

func TestSQLiteStorePersistFailure(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store whose database is locked by another writer", t, func() {
		path := filepath.Join(t.TempDir(), "league.db")
		store, err := repository.NewSQLiteStore(ctx, path, seedSnapshot())
		So(err, ShouldBeNil)
		defer func() { So(store.Close(), ShouldBeNil) }()

		blocker, err := sql.Open("sqlite", path)
		So(err, ShouldBeNil)
		defer func() { So(blocker.Close(), ShouldBeNil) }()

		// Pin one connection and take the write lock on it.
		conn, err := blocker.Conn(ctx)
		So(err, ShouldBeNil)
		defer func() { So(conn.Close(), ShouldBeNil) }()
		_, err = conn.ExecContext(ctx, "BEGIN IMMEDIATE")
		So(err, ShouldBeNil)

		Convey("When a write fails to persist", func() {
			sess := model.EmptySession()
			sess.Rosters[model.TeamA] = []string{"ghost"}
			_, _, err := store.PutSession(ctx, "2025-03-02", sess)
			So(err, ShouldWrap, repository.ErrPersist)

			_, err = conn.ExecContext(ctx, "ROLLBACK")
			So(err, ShouldBeNil)

			Convey("Then the cached state rolls back with the version", func() {
				snap, version, err := store.Snapshot(ctx)
				So(err, ShouldBeNil)
				So(version, ShouldEqual, 1)
				So(snap.SessionsByDate["2025-03-02"].Rosters[model.TeamA], ShouldNotContain, "ghost")
			})

			Convey("Then a later write still goes through cleanly", func() {
				key, version, err := store.PutSession(ctx, "2025-03-02", sess)
				So(err, ShouldBeNil)
				So(key, ShouldEqual, "2025-03-02")
				So(version, ShouldEqual, 2)
			})
		})
	})
}
