package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/matchday-cli/internal/model"
	"github.com/sells-group/matchday-cli/internal/pipeline"
)

func chartFixture(t *testing.T) *pipeline.Output {
	t.Helper()
	matches := []model.Match{
		{
			Season:   "2015/16",
			Date:     time.Date(2015, time.October, 17, 0, 0, 0, 0, time.UTC),
			Referee:  "M Dean",
			HomeTeam: "Arsenal",
			AwayTeam: "Everton",
			Result:   model.ResultHomeWin,
			Home:     model.SideStats{Goals: 3, Shots: 10, ShotsOnTarget: 6, Yellows: 1},
			Away:     model.SideStats{Goals: 1, Shots: 5, ShotsOnTarget: 2, Yellows: 2, Reds: 1},
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
	out, err := pipeline.Run(context.Background(), matches, pipeline.Options{})
	require.NoError(t, err)
	return out
}

func TestCharts_RendersAllSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Charts(&buf, chartFixture(t), ""))

	html := buf.String()
	assert.Contains(t, html, "Match Analytics")
	assert.Contains(t, html, "Total points by team")
	assert.Contains(t, html, "Goals scored vs conceded")
	assert.Contains(t, html, "Season point progression")
	assert.Contains(t, html, "Away win rate")
	assert.Contains(t, html, "competitiveness by season")
	assert.Contains(t, html, "Card averages by referee")
	assert.Contains(t, html, "Arsenal")
	assert.Contains(t, html, "M Dean")
}

func TestCharts_SeasonFilter(t *testing.T) {
	var buf bytes.Buffer
	// A season with no rows still renders a page, just with empty series.
	require.NoError(t, Charts(&buf, chartFixture(t), "1999/00"))
	assert.Contains(t, buf.String(), "Total points by team")
}

func TestChartsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.html")
	require.NoError(t, ChartsFile(path, chartFixture(t), ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Season point progression")
}

func TestChartsFile_BadPath(t *testing.T) {
	err := ChartsFile(filepath.Join(t.TempDir(), "missing", "charts.html"), chartFixture(t), "")
	assert.Error(t, err)
}
