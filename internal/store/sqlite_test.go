package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/matchday-cli/internal/dataset"
	"github.com/sells-group/matchday-cli/internal/model"
	"github.com/sells-group/matchday-cli/internal/pipeline"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testOutput(t *testing.T) *pipeline.Output {
	t.Helper()
	matches := []model.Match{
		{
			Season:   "2015/16",
			Date:     time.Date(2015, time.October, 17, 0, 0, 0, 0, time.UTC),
			Referee:  "M Dean",
			HomeTeam: "Arsenal",
			AwayTeam: "Everton",
			Result:   model.ResultHomeWin,
			Home:     model.SideStats{Goals: 3, Shots: 10, ShotsOnTarget: 6, Corners: 5, Fouls: 9, Yellows: 1},
			Away:     model.SideStats{Goals: 1, Shots: 5, ShotsOnTarget: 2, Corners: 3, Fouls: 14, Yellows: 2, Reds: 1},
		},
		{
			Season:   "2016/17",
			Date:     time.Date(2016, time.August, 13, 0, 0, 0, 0, time.UTC),
			HomeTeam: "Everton",
			AwayTeam: "Leeds",
			Result:   model.ResultDraw,
			Home:     model.SideStats{Goals: 1, Shots: 9, ShotsOnTarget: 4},
			Away:     model.SideStats{Goals: 1, Shots: 11, ShotsOnTarget: 3},
		},
	}
	out, err := pipeline.Run(context.Background(), matches, pipeline.Options{})
	require.NoError(t, err)
	return out
}

func TestSQLite_CreateAndListImports(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	imp, err := st.CreateImport(ctx, "matches.csv", dataset.LoadStats{Rows: 10, Loaded: 9, Skipped: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, imp.ID)

	imports, err := st.ListImports(ctx)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, "matches.csv", imports[0].Source)
	assert.Equal(t, 9, imports[0].Loaded)
	assert.Equal(t, 1, imports[0].Skipped)
}

func TestSQLite_SaveAndLoadOutput(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	out := testOutput(t)

	imp, err := st.CreateImport(ctx, "matches.csv", dataset.LoadStats{Rows: 2, Loaded: 2})
	require.NoError(t, err)
	require.NoError(t, st.SaveOutput(ctx, imp.ID, out))

	derived, err := st.LoadDerived(ctx, "")
	require.NoError(t, err)
	require.Len(t, derived, 2)
	// Stored rows round-trip exactly, date order preserved.
	assert.Equal(t, out.Derived[0], derived[0])
	assert.Equal(t, out.Derived[1], derived[1])

	rows, err := st.LoadTeamRows(ctx, RowFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestSQLite_LoadDerived_SeasonFilter(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	imp, err := st.CreateImport(ctx, "matches.csv", dataset.LoadStats{})
	require.NoError(t, err)
	require.NoError(t, st.SaveOutput(ctx, imp.ID, testOutput(t)))

	derived, err := st.LoadDerived(ctx, "2015/16")
	require.NoError(t, err)
	require.Len(t, derived, 1)
	assert.Equal(t, "Arsenal", derived[0].HomeTeam)
}

func TestSQLite_LoadTeamRows_Filters(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	imp, err := st.CreateImport(ctx, "matches.csv", dataset.LoadStats{})
	require.NoError(t, err)
	require.NoError(t, st.SaveOutput(ctx, imp.ID, testOutput(t)))

	rows, err := st.LoadTeamRows(ctx, RowFilter{Team: "Everton"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "Everton", r.Team)
	}

	rows, err = st.LoadTeamRows(ctx, RowFilter{Team: "Everton", Season: "2015/16"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.VenueAway, rows[0].Venue)
	assert.Equal(t, 0, rows[0].Points)

	rows, err = st.LoadTeamRows(ctx, RowFilter{Team: "Chelsea"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSQLite_LoadEmpty(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	derived, err := st.LoadDerived(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, derived)

	imports, err := st.ListImports(ctx)
	require.NoError(t, err)
	assert.Empty(t, imports)
}
