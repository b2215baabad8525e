package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/goldinfc/scorebook/internal/adapters/http/api"
	"github.com/goldinfc/scorebook/internal/adapters/repository"
	service "github.com/goldinfc/scorebook/internal/app"
	"github.com/goldinfc/scorebook/internal/domain/model"
	"github.com/goldinfc/scorebook/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func leagueSeed() model.Snapshot {
	players := []model.Player{
		{ID: "a1", Name: "Ahn", Active: true, Pos: model.PositionField},
		{ID: "b1", Name: "Bae", Active: true, Pos: model.PositionField},
		{ID: "c1", Name: "Cho", Active: true, Pos: model.PositionField},
	}
	sess := model.EmptySession()
	sess.Rosters[model.TeamA] = []string{"a1"}
	sess.Rosters[model.TeamB] = []string{"b1"}
	sess.Rosters[model.TeamC] = []string{"c1"}
	sess.Matches = []model.Match{
		{ID: "m1", Seq: 1, Home: model.TeamA, Away: model.TeamB, HomeGoals: 3, AwayGoals: 2},
		{ID: "m2", Seq: 2, Home: model.TeamB, Away: model.TeamC, HomeGoals: 1, AwayGoals: 1},
	}
	sess.MatchStats = map[string]map[string]model.StatLine{
		"m1": {"a1": {Goals: 2, Assists: 1}},
	}
	return model.Snapshot{
		Players:        players,
		SessionsByDate: map[string]model.Session{"2025-03-02": sess},
		SessionDate:    "2025-03-02",
	}
}

// newTestMux builds a mux backed by a started service over the seed.
func newTestMux(t *testing.T, pin string) *http.ServeMux {
	t.Helper()
	svc := service.New(service.WithStore(repository.NewMemoryStore(leagueSeed())))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc, api.WithAdminPIN(pin)).Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given the API over a started service", t, func() {
		mux := newTestMux(t, "")

		Convey("Then /healthz reports ok", func() {
			rec := do(mux, http.MethodGet, "/healthz", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body map[string]string
			decode(t, rec, &body)
			So(body["status"], ShouldEqual, "ok")
		})

		Convey("Then /stats reports the service state", func() {
			rec := do(mux, http.MethodGet, "/stats", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body map[string]any
			decode(t, rec, &body)
			So(body["started"], ShouldEqual, true)
			So(body["sessionDate"], ShouldEqual, "2025-03-02")
		})

		Convey("Then /metrics serves the Prometheus registry", func() {
			rec := do(mux, http.MethodGet, "/metrics", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestPlayersEndpoint(t *testing.T) {
	Convey("Given the API without a PIN", t, func() {
		mux := newTestMux(t, "")

		Convey("Then GET /players lists the roster", func() {
			rec := do(mux, http.MethodGet, "/players", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var players []model.Player
			decode(t, rec, &players)
			So(players, ShouldHaveLength, 3)
		})

		Convey("Then PUT /players replaces and normalizes", func() {
			rec := do(mux, http.MethodPut, "/players", `[{"name":"Doh","active":true,"pos":"GK"}]`, nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var players []model.Player
			decode(t, rec, &players)
			So(players, ShouldHaveLength, 1)
			So(players[0].ID, ShouldNotBeEmpty)
			So(players[0].Pos, ShouldEqual, model.PositionKeeper)
		})

		Convey("Then PUT /players rejects malformed JSON", func() {
			rec := do(mux, http.MethodPut, "/players", `{notjson`, nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestAdminPINGate(t *testing.T) {
	Convey("Given the API with a PIN", t, func() {
		mux := newTestMux(t, "4321")

		Convey("Then mutations without the header are forbidden", func() {
			rec := do(mux, http.MethodPut, "/players", `[]`, nil)
			So(rec.Code, ShouldEqual, http.StatusForbidden)
		})

		Convey("Then a wrong PIN is forbidden", func() {
			rec := do(mux, http.MethodPut, "/players", `[]`, map[string]string{"X-Admin-Pin": "0000"})
			So(rec.Code, ShouldEqual, http.StatusForbidden)
		})

		Convey("Then the right PIN passes", func() {
			rec := do(mux, http.MethodPut, "/players", `[]`, map[string]string{"X-Admin-Pin": "4321"})
			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then reads stay open", func() {
			rec := do(mux, http.MethodGet, "/players", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestSessionEndpoints(t *testing.T) {
	Convey("Given the API over one stored session", t, func() {
		mux := newTestMux(t, "")

		Convey("Then GET /sessions lists stored weeks", func() {
			rec := do(mux, http.MethodGet, "/sessions", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Dates []string `json:"dates"`
			}
			decode(t, rec, &body)
			So(body.Dates, ShouldResemble, []string{"2025-03-02"})
		})

		Convey("Then a weekday URL reads its week's session", func() {
			rec := do(mux, http.MethodGet, "/sessions/2025-02-25", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Date    string        `json:"date"`
				Session model.Session `json:"session"`
			}
			decode(t, rec, &body)
			So(body.Date, ShouldEqual, "2025-03-02")
			So(body.Session.Matches, ShouldHaveLength, 2)
		})

		Convey("Then PUT /sessions/{date} stores under the Sunday", func() {
			rec := do(mux, http.MethodPut, "/sessions/2025-03-12", `{"hasFourthTeam":false}`, nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Date string `json:"date"`
			}
			decode(t, rec, &body)
			So(body.Date, ShouldEqual, "2025-03-16")
		})

		Convey("Then GET /sessions/{date}/standings ranks the teams", func() {
			rec := do(mux, http.MethodGet, "/sessions/2025-03-02/standings", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Date  string `json:"date"`
				Table []struct {
					Team   string `json:"team"`
					Points int    `json:"points"`
				} `json:"table"`
				Bonus map[string]int `json:"bonus"`
			}
			decode(t, rec, &body)
			So(body.Table, ShouldHaveLength, 3)
			So(body.Table[0].Team, ShouldEqual, "A")
			So(body.Bonus["A"], ShouldEqual, 4)
			So(body.Bonus["C"], ShouldEqual, 2)
			So(body.Bonus["B"], ShouldEqual, 1)
		})

		Convey("Then GET /sessions/{date}/scores returns score records", func() {
			rec := do(mux, http.MethodGet, "/sessions/2025-03-02/scores", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Records []struct {
					PlayerID string `json:"playerId"`
					Total    int    `json:"total"`
				} `json:"records"`
			}
			decode(t, rec, &body)
			So(body.Records, ShouldHaveLength, 3)
			So(body.Records[0].PlayerID, ShouldEqual, "a1")
			So(body.Records[0].Total, ShouldEqual, 7)
		})

		Convey("Then POST /sessions/{date}/select moves the play date", func() {
			rec := do(mux, http.MethodPost, "/sessions/2025-04-02/select", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body map[string]string
			decode(t, rec, &body)
			So(body["sessionDate"], ShouldEqual, "2025-04-06")
		})

		Convey("Then an overlong session path is rejected", func() {
			rec := do(mux, http.MethodGet, "/sessions/2025-03-02/scores/extra", "", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestAggregateEndpoints(t *testing.T) {
	Convey("Given the API over one stored session", t, func() {
		mux := newTestMux(t, "")

		Convey("Then GET /aggregate sums the league", func() {
			rec := do(mux, http.MethodGet, "/aggregate?mode=all", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Records []struct {
					PlayerID string `json:"playerId"`
					Total    int    `json:"total"`
				} `json:"records"`
			}
			decode(t, rec, &body)
			So(body.Records[0].PlayerID, ShouldEqual, "a1")
			So(body.Records[0].Total, ShouldEqual, 7)
		})

		Convey("Then an unknown mode falls back to all", func() {
			rec := do(mux, http.MethodGet, "/aggregate?mode=bogus", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Filter struct {
					Mode string `json:"mode"`
				} `json:"filter"`
			}
			decode(t, rec, &body)
			So(body.Filter.Mode, ShouldEqual, "all")
		})

		Convey("Then GET /seasons lists half-years", func() {
			rec := do(mux, http.MethodGet, "/seasons", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Seasons []string `json:"seasons"`
			}
			decode(t, rec, &body)
			So(body.Seasons, ShouldResemble, []string{"2025-1"})
		})

		Convey("Then GET /rankings needs a valid category", func() {
			rec := do(mux, http.MethodGet, "/rankings?category=goals", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Entries []struct {
					Rank     int    `json:"rank"`
					PlayerID string `json:"playerId"`
					Value    int    `json:"value"`
				} `json:"entries"`
			}
			decode(t, rec, &body)
			So(body.Entries, ShouldHaveLength, 1)
			So(body.Entries[0].PlayerID, ShouldEqual, "a1")
			So(body.Entries[0].Value, ShouldEqual, 2)

			bad := do(mux, http.MethodGet, "/rankings?category=ownGoals", "", nil)
			So(bad.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
