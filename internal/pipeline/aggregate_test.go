package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/matchday-cli/internal/model"
)

// fixtureMatches is a tiny two-season fixture list:
//
//	2015/16: Arsenal 3-1 Everton, Everton 0-0 Arsenal, Leeds 1-2 Arsenal
//	2016/17: Everton 2-0 Leeds
func fixtureMatches() []model.Match {
	mk := func(day int, season, home, away string, hg, ag int, referee string) model.Match {
		result := model.ResultDraw
		if hg > ag {
			result = model.ResultHomeWin
		} else if hg < ag {
			result = model.ResultAwayWin
		}
		return model.Match{
			Season:   season,
			Date:     time.Date(2015, time.October, day, 0, 0, 0, 0, time.UTC),
			Referee:  referee,
			HomeTeam: home,
			AwayTeam: away,
			Result:   result,
			Home:     model.SideStats{Goals: hg, Shots: hg * 3, ShotsOnTarget: hg * 2, Fouls: 10, Yellows: 1},
			Away:     model.SideStats{Goals: ag, Shots: ag*3 + 1, ShotsOnTarget: ag * 2, Fouls: 12, Yellows: 2, Reds: 1},
		}
	}
	return []model.Match{
		mk(1, "2015/16", "Arsenal", "Everton", 3, 1, "M Dean"),
		mk(8, "2015/16", "Everton", "Arsenal", 0, 0, "M Dean"),
		mk(15, "2015/16", "Leeds", "Arsenal", 1, 2, "A Taylor"),
		mk(22, "2016/17", "Everton", "Leeds", 2, 0, "A Taylor"),
	}
}

func fixtureOutput(t *testing.T) *Output {
	t.Helper()
	out, err := Run(context.Background(), fixtureMatches(), Options{})
	require.NoError(t, err)
	return out
}

func TestStandings_PointsAndOrder(t *testing.T) {
	out := fixtureOutput(t)

	standings := Standings(out.TeamRows, "2015/16")
	require.Len(t, standings, 3)

	// Arsenal: W3-1, D0-0, W2-1 away = 7 points.
	assert.Equal(t, "Arsenal", standings[0].Team)
	assert.Equal(t, 7, standings[0].Points)
	assert.Equal(t, 3, standings[0].Played)
	assert.Equal(t, 2, standings[0].Wins)
	assert.Equal(t, 1, standings[0].Draws)
	assert.Equal(t, 5, standings[0].GoalsFor)
	assert.Equal(t, 2, standings[0].GoalsAgainst)
	assert.Equal(t, 3, standings[0].GoalDiff)

	// Everton (1 pt) beats Leeds (0 pts).
	assert.Equal(t, "Everton", standings[1].Team)
	assert.Equal(t, 1, standings[1].Points)
	assert.Equal(t, "Leeds", standings[2].Team)
	assert.Equal(t, 0, standings[2].Points)
}

func TestStandings_NoSeasonFilter(t *testing.T) {
	out := fixtureOutput(t)

	standings := Standings(out.TeamRows, "")
	require.Len(t, standings, 3)

	var totalPoints, totalPlayed int
	for _, e := range standings {
		totalPoints += e.Points
		totalPlayed += e.Played
	}
	// 3 decisive matches and 1 draw: 3+3+3+2 points, 8 team-matches.
	assert.Equal(t, 11, totalPoints)
	assert.Equal(t, 8, totalPlayed)
}

func TestHomeAwaySplits(t *testing.T) {
	out := fixtureOutput(t)

	splits := HomeAwaySplits(out.TeamRows, "2015/16")
	byTeam := make(map[string]HomeAwaySplit)
	for _, s := range splits {
		byTeam[s.Team] = s
	}

	arsenal := byTeam["Arsenal"]
	assert.Equal(t, 3, arsenal.HomePoints)
	assert.Equal(t, 4, arsenal.AwayPoints)
	assert.Equal(t, 2, arsenal.AwayPlayed)
	assert.Equal(t, 1, arsenal.AwayWins)
	assert.InDelta(t, 50.0, arsenal.AwayWinRate, 0.0001)

	leeds := byTeam["Leeds"]
	assert.Zero(t, leeds.AwayPlayed)
	assert.Zero(t, leeds.AwayWinRate) // no away matches, no division
}

func TestSeasonSummaries(t *testing.T) {
	out := fixtureOutput(t)

	summaries := SeasonSummaries(out.Derived)
	require.Len(t, summaries, 2)
	assert.Equal(t, "2015/16", summaries[0].Season)
	assert.Equal(t, "2016/17", summaries[1].Season)

	s1 := summaries[0]
	assert.Equal(t, 3, s1.Matches)
	assert.Equal(t, 7, s1.Goals)
	assert.InDelta(t, 7.0/3.0, s1.GoalsPerMatch, 0.0001)
	assert.InDelta(t, 100.0/3.0, s1.HomeWinPct, 0.0001)
	assert.InDelta(t, 100.0/3.0, s1.DrawPct, 0.0001)
	assert.InDelta(t, 100.0/3.0, s1.AwayWinPct, 0.0001)
	// Competitiveness: |2| + |0| + |-1| over 3 matches.
	assert.InDelta(t, 1.0, s1.MeanCompetitiveness, 0.0001)
}

func TestPointProgression(t *testing.T) {
	out := fixtureOutput(t)

	progression := PointProgression(out.TeamRows, "2015/16")
	require.Len(t, progression, 6) // 3 matches × 2 rows

	var arsenal []ProgressionPoint
	for _, p := range progression {
		if p.Team == "Arsenal" {
			arsenal = append(arsenal, p)
		}
	}
	require.Len(t, arsenal, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{arsenal[0].Matchday, arsenal[1].Matchday, arsenal[2].Matchday})
	assert.Equal(t, 3, arsenal[0].Cumulative)
	assert.Equal(t, 4, arsenal[1].Cumulative)
	assert.Equal(t, 7, arsenal[2].Cumulative)
}

func TestRefereeSummaries(t *testing.T) {
	out := fixtureOutput(t)

	summaries := RefereeSummaries(out.Derived)
	require.Len(t, summaries, 2)

	byRef := make(map[string]RefereeSummary)
	for _, s := range summaries {
		byRef[s.Referee] = s
	}
	dean := byRef["M Dean"]
	assert.Equal(t, 2, dean.Matches)
	// Every fixture match has 3 yellows and 1 red in total.
	assert.InDelta(t, 3.0, dean.MeanYellows, 0.0001)
	assert.InDelta(t, 1.0, dean.MeanReds, 0.0001)
	assert.InDelta(t, 5.0, dean.MeanDiscipline, 0.0001)
}

func TestRefereeSummaries_SkipsUnnamed(t *testing.T) {
	matches := fixtureMatches()
	matches[0].Referee = ""
	out, err := Run(context.Background(), matches, Options{})
	require.NoError(t, err)

	for _, s := range RefereeSummaries(out.Derived) {
		assert.NotEmpty(t, s.Referee)
	}
}

func TestDisciplineTable(t *testing.T) {
	out := fixtureOutput(t)

	entries := DisciplineTable(out.TeamRows, "2015/16")
	require.Len(t, entries, 3)

	byTeam := make(map[string]DisciplineEntry)
	for _, e := range entries {
		byTeam[e.Team] = e
	}
	// Arsenal: home once (1Y), away twice (2Y 1R each).
	arsenal := byTeam["Arsenal"]
	assert.Equal(t, 5, arsenal.Yellows)
	assert.Equal(t, 2, arsenal.Reds)
	assert.Equal(t, 9, arsenal.Points)
	assert.InDelta(t, float64(arsenal.Fouls)/7.0, arsenal.FoulsPerCard, 0.0001)
}
