package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/matchday-cli/internal/dataset"
	"github.com/sells-group/matchday-cli/internal/model"
	"github.com/sells-group/matchday-cli/internal/pipeline"
	"github.com/sells-group/matchday-cli/internal/store"
)

// newTestServer backs the router with a populated SQLite store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(ctx))

	matches := []model.Match{
		{
			Season:   "2015/16",
			Date:     time.Date(2015, time.October, 17, 0, 0, 0, 0, time.UTC),
			Referee:  "M Dean",
			HomeTeam: "Arsenal",
			AwayTeam: "Everton",
			Result:   model.ResultHomeWin,
			Home:     model.SideStats{Goals: 3, Shots: 10, ShotsOnTarget: 6},
			Away:     model.SideStats{Goals: 1, Shots: 5, ShotsOnTarget: 2},
		},
		{
			Season:   "2015/16",
			Date:     time.Date(2015, time.October, 24, 0, 0, 0, 0, time.UTC),
			Referee:  "A Taylor",
			HomeTeam: "Everton",
			AwayTeam: "Arsenal",
			Result:   model.ResultDraw,
			Home:     model.SideStats{Goals: 1, Shots: 8, ShotsOnTarget: 3},
			Away:     model.SideStats{Goals: 1, Shots: 12, ShotsOnTarget: 5},
		},
	}
	out, err := pipeline.Run(ctx, matches, pipeline.Options{})
	require.NoError(t, err)

	imp, err := st.CreateImport(ctx, "matches.csv", dataset.LoadStats{Rows: 2, Loaded: 2})
	require.NoError(t, err)
	require.NoError(t, st.SaveOutput(ctx, imp.ID, out))

	srv := httptest.NewServer(newRouter(st))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	status := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Standings(t *testing.T) {
	srv := newTestServer(t)

	var standings []pipeline.StandingsEntry
	status := getJSON(t, srv.URL+"/api/standings?season=2015/16", &standings)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, standings, 2)
	assert.Equal(t, "Arsenal", standings[0].Team)
	assert.Equal(t, 4, standings[0].Points)
	assert.Equal(t, "Everton", standings[1].Team)
	assert.Equal(t, 1, standings[1].Points)
}

func TestRouter_Seasons(t *testing.T) {
	srv := newTestServer(t)

	var seasons []pipeline.SeasonSummary
	status := getJSON(t, srv.URL+"/api/seasons", &seasons)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, seasons, 1)
	assert.Equal(t, "2015/16", seasons[0].Season)
	assert.Equal(t, 2, seasons[0].Matches)
}

func TestRouter_TeamRows(t *testing.T) {
	srv := newTestServer(t)

	var rows []model.TeamMatchRow
	status := getJSON(t, srv.URL+"/api/teams/Arsenal/rows", &rows)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "Arsenal", r.Team)
	}
}

func TestRouter_TeamRows_UnknownTeam(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	status := getJSON(t, srv.URL+"/api/teams/Chelsea/rows", &body)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body["error"], "Chelsea")
}

func TestRouter_Imports(t *testing.T) {
	srv := newTestServer(t)

	var imports []store.Import
	status := getJSON(t, srv.URL+"/api/imports", &imports)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, imports, 1)
	assert.Equal(t, "matches.csv", imports[0].Source)
}
