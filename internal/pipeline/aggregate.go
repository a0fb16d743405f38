package pipeline

import (
	"sort"

	"github.com/sells-group/matchday-cli/internal/model"
)

// StandingsEntry holds one team's aggregated record.
type StandingsEntry struct {
	Team         string `json:"team"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

// HomeAwaySplit holds a team's venue-split record.
type HomeAwaySplit struct {
	Team        string  `json:"team"`
	HomePoints  int     `json:"home_points"`
	AwayPoints  int     `json:"away_points"`
	AwayPlayed  int     `json:"away_played"`
	AwayWins    int     `json:"away_wins"`
	AwayWinRate float64 `json:"away_win_rate"` // percentage
}

// SeasonSummary holds league-wide figures for one season.
type SeasonSummary struct {
	Season              string  `json:"season"`
	Matches             int     `json:"matches"`
	Goals               int     `json:"goals"`
	GoalsPerMatch       float64 `json:"goals_per_match"`
	HomeWinPct          float64 `json:"home_win_pct"`
	DrawPct             float64 `json:"draw_pct"`
	AwayWinPct          float64 `json:"away_win_pct"`
	MeanCompetitiveness float64 `json:"mean_competitiveness"`
}

// ProgressionPoint is one step of a team's cumulative points over a season.
type ProgressionPoint struct {
	Team       string `json:"team"`
	Season     string `json:"season"`
	Matchday   int    `json:"matchday"`
	Points     int    `json:"points"` // points earned this match
	Cumulative int    `json:"cumulative"`
}

// RefereeSummary holds per-referee card averages.
type RefereeSummary struct {
	Referee        string  `json:"referee"`
	Matches        int     `json:"matches"`
	MeanYellows    float64 `json:"mean_yellows"`
	MeanReds       float64 `json:"mean_reds"`
	MeanDiscipline float64 `json:"mean_discipline"`
}

// DisciplineEntry holds a team's aggregated card record.
type DisciplineEntry struct {
	Team         string  `json:"team"`
	Yellows      int     `json:"yellows"`
	Reds         int     `json:"reds"`
	Points       int     `json:"points"` // disciplinary points
	Fouls        int     `json:"fouls"`
	FoulsPerCard float64 `json:"fouls_per_card"`
}

// Standings aggregates team rows into a sorted league table. Season filters
// to one season when non-empty. Tiebreak order: points, goal difference,
// goals for, then name.
func Standings(rows []model.TeamMatchRow, season string) []StandingsEntry {
	byTeam := make(map[string]*StandingsEntry)
	for _, r := range rows {
		if season != "" && r.Season != season {
			continue
		}
		e, ok := byTeam[r.Team]
		if !ok {
			e = &StandingsEntry{Team: r.Team}
			byTeam[r.Team] = e
		}
		e.Played++
		e.Wins += r.Win
		e.Draws += r.Draw
		e.Losses += r.Loss
		e.GoalsFor += r.Goals
		e.GoalsAgainst += r.GoalsConceded
		e.Points += r.Points
	}

	entries := make([]StandingsEntry, 0, len(byTeam))
	for _, e := range byTeam {
		e.GoalDiff = e.GoalsFor - e.GoalsAgainst
		entries = append(entries, *e)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	return entries
}

// HomeAwaySplits computes per-team venue splits, sorted by away win rate.
func HomeAwaySplits(rows []model.TeamMatchRow, season string) []HomeAwaySplit {
	byTeam := make(map[string]*HomeAwaySplit)
	for _, r := range rows {
		if season != "" && r.Season != season {
			continue
		}
		s, ok := byTeam[r.Team]
		if !ok {
			s = &HomeAwaySplit{Team: r.Team}
			byTeam[r.Team] = s
		}
		switch r.Venue {
		case model.VenueHome:
			s.HomePoints += r.Points
		case model.VenueAway:
			s.AwayPoints += r.Points
			s.AwayPlayed++
			if r.Won() {
				s.AwayWins++
			}
		}
	}

	splits := make([]HomeAwaySplit, 0, len(byTeam))
	for _, s := range byTeam {
		s.AwayWinRate = Rate(s.AwayWins, s.AwayPlayed)
		splits = append(splits, *s)
	}
	sort.Slice(splits, func(i, j int) bool {
		if splits[i].AwayWinRate != splits[j].AwayWinRate {
			return splits[i].AwayWinRate > splits[j].AwayWinRate
		}
		return splits[i].Team < splits[j].Team
	})
	return splits
}

// SeasonSummaries aggregates derived matches per season, sorted by season.
func SeasonSummaries(derived []model.DerivedMatch) []SeasonSummary {
	bySeason := make(map[string]*SeasonSummary)
	homeWins := make(map[string]int)
	draws := make(map[string]int)
	awayWins := make(map[string]int)
	compSum := make(map[string]int)

	for _, d := range derived {
		s, ok := bySeason[d.Season]
		if !ok {
			s = &SeasonSummary{Season: d.Season}
			bySeason[d.Season] = s
		}
		s.Matches++
		s.Goals += d.TotalGoals
		compSum[d.Season] += d.Competitiveness
		switch d.Result {
		case model.ResultHomeWin:
			homeWins[d.Season]++
		case model.ResultDraw:
			draws[d.Season]++
		case model.ResultAwayWin:
			awayWins[d.Season]++
		}
	}

	summaries := make([]SeasonSummary, 0, len(bySeason))
	for season, s := range bySeason {
		if s.Matches > 0 {
			s.GoalsPerMatch = float64(s.Goals) / float64(s.Matches)
			s.MeanCompetitiveness = float64(compSum[season]) / float64(s.Matches)
		}
		s.HomeWinPct = Rate(homeWins[season], s.Matches)
		s.DrawPct = Rate(draws[season], s.Matches)
		s.AwayWinPct = Rate(awayWins[season], s.Matches)
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Season < summaries[j].Season })
	return summaries
}

// PointProgression computes each team's cumulative points over one season,
// in match-date order.
func PointProgression(rows []model.TeamMatchRow, season string) []ProgressionPoint {
	filtered := make([]model.TeamMatchRow, 0, len(rows))
	for _, r := range rows {
		if season == "" || r.Season == season {
			filtered = append(filtered, r)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Date.Before(filtered[j].Date) })

	cumulative := make(map[string]int)
	matchday := make(map[string]int)
	progression := make([]ProgressionPoint, 0, len(filtered))
	for _, r := range filtered {
		cumulative[r.Team] += r.Points
		matchday[r.Team]++
		progression = append(progression, ProgressionPoint{
			Team:       r.Team,
			Season:     r.Season,
			Matchday:   matchday[r.Team],
			Points:     r.Points,
			Cumulative: cumulative[r.Team],
		})
	}
	return progression
}

// RefereeSummaries computes per-referee card averages over derived matches,
// sorted by mean disciplinary points, strictest first. Matches without a
// recorded referee are excluded.
func RefereeSummaries(derived []model.DerivedMatch) []RefereeSummary {
	type totals struct {
		matches    int
		yellows    int
		reds       int
		discipline int
	}
	byRef := make(map[string]*totals)
	for _, d := range derived {
		if d.Referee == "" {
			continue
		}
		t, ok := byRef[d.Referee]
		if !ok {
			t = &totals{}
			byRef[d.Referee] = t
		}
		t.matches++
		t.yellows += d.Home.Yellows + d.Away.Yellows
		t.reds += d.Home.Reds + d.Away.Reds
		t.discipline += d.HomeMetrics.DisciplinaryPoints + d.AwayMetrics.DisciplinaryPoints
	}

	summaries := make([]RefereeSummary, 0, len(byRef))
	for ref, t := range byRef {
		n := float64(t.matches)
		summaries = append(summaries, RefereeSummary{
			Referee:        ref,
			Matches:        t.matches,
			MeanYellows:    float64(t.yellows) / n,
			MeanReds:       float64(t.reds) / n,
			MeanDiscipline: float64(t.discipline) / n,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].MeanDiscipline != summaries[j].MeanDiscipline {
			return summaries[i].MeanDiscipline > summaries[j].MeanDiscipline
		}
		return summaries[i].Referee < summaries[j].Referee
	})
	return summaries
}

// DisciplineTable aggregates per-team cards and fouls, most disciplinary
// points first.
func DisciplineTable(rows []model.TeamMatchRow, season string) []DisciplineEntry {
	byTeam := make(map[string]*DisciplineEntry)
	for _, r := range rows {
		if season != "" && r.Season != season {
			continue
		}
		e, ok := byTeam[r.Team]
		if !ok {
			e = &DisciplineEntry{Team: r.Team}
			byTeam[r.Team] = e
		}
		e.Yellows += r.Yellows
		e.Reds += r.Reds
		e.Points += r.DisciplinaryPoints
		e.Fouls += r.Fouls
	}

	entries := make([]DisciplineEntry, 0, len(byTeam))
	for _, e := range byTeam {
		if cards := e.Yellows + e.Reds; cards > 0 {
			e.FoulsPerCard = float64(e.Fouls) / float64(cards)
		}
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Team < entries[j].Team
	})
	return entries
}
