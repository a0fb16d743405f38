package pipeline

import (
	"github.com/sells-group/matchday-cli/internal/model"
)

// Project splits one derived match into its two team-perspective rows, home
// first. The result label is carried unchanged on both rows; points are
// assigned separately by AssignPoints.
func Project(d model.DerivedMatch) (home, away model.TeamMatchRow) {
	home = sideRow(d, model.VenueHome, d.HomeTeam, d.AwayTeam, d.Home, d.Away, d.HomeMetrics)
	away = sideRow(d, model.VenueAway, d.AwayTeam, d.HomeTeam, d.Away, d.Home, d.AwayMetrics)
	return home, away
}

func sideRow(d model.DerivedMatch, venue model.Venue, team, opponent string, own, opp model.SideStats, metrics model.SideMetrics) model.TeamMatchRow {
	return model.TeamMatchRow{
		Team:     team,
		Opponent: opponent,
		Venue:    venue,
		Season:   d.Season,
		Date:     d.Date,
		Referee:  d.Referee,

		Goals:         own.Goals,
		GoalsConceded: opp.Goals,
		Shots:         own.Shots,
		ShotsOnTarget: own.ShotsOnTarget,
		Corners:       own.Corners,
		Fouls:         own.Fouls,
		Yellows:       own.Yellows,
		Reds:          own.Reds,

		DisciplinaryPoints: metrics.DisciplinaryPoints,
		ConversionRate:     metrics.ConversionRate,
		ShotAccuracy:       metrics.ShotAccuracy,

		ResultLabel: d.Result,
	}
}
