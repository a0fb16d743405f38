package pipeline

import (
	"github.com/sells-group/matchday-cli/internal/model"
)

// AssignPoints classifies one team row against its result label and venue.
// First matching condition wins: a home side with a home win or an away side
// with an away win takes 3 points, any draw takes 1, everything else 0.
// Exactly one of win/draw/loss is set.
func AssignPoints(r model.TeamMatchRow) model.TeamMatchRow {
	switch {
	case r.Venue == model.VenueHome && r.ResultLabel == model.ResultHomeWin:
		r.Points = 3
	case r.Venue == model.VenueAway && r.ResultLabel == model.ResultAwayWin:
		r.Points = 3
	case r.ResultLabel == model.ResultDraw:
		r.Points = 1
	default:
		r.Points = 0
	}

	r.Win, r.Draw, r.Loss = 0, 0, 0
	switch r.Points {
	case 3:
		r.Win = 1
	case 1:
		r.Draw = 1
	default:
		r.Loss = 1
	}
	return r
}
