// Package pipeline implements the match feature pipeline: per-match metric
// derivation, home/away projection into team rows, points assignment, and the
// aggregations the reports are built from.
package pipeline

import (
	"github.com/sells-group/matchday-cli/internal/model"
)

const pctMultiplier = 100.0

// Rate returns numerator/denominator as a percentage, or 0 when the
// denominator is zero. Zero shots means zero rate by policy, not an error.
func Rate(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return pctMultiplier * float64(numerator) / float64(denominator)
}

// DisciplinaryPoints weights cards: one point per yellow, two per red.
func DisciplinaryPoints(yellows, reds int) int {
	return yellows + 2*reds
}

// deriveSide computes the per-side metrics of one match.
func deriveSide(s model.SideStats) model.SideMetrics {
	return model.SideMetrics{
		ConversionRate:     Rate(s.Goals, s.Shots),
		ShotAccuracy:       Rate(s.ShotsOnTarget, s.Shots),
		DisciplinaryPoints: DisciplinaryPoints(s.Yellows, s.Reds),
	}
}

// Derive computes all derived columns for one match. Raw fields are copied
// through untouched.
func Derive(m model.Match) model.DerivedMatch {
	gd := m.Home.Goals - m.Away.Goals
	ci := gd
	if ci < 0 {
		ci = -ci
	}

	return model.DerivedMatch{
		Match: m,

		Month: int(m.Date.Month()),
		Year:  m.Date.Year(),

		HomeMetrics: deriveSide(m.Home),
		AwayMetrics: deriveSide(m.Away),

		TotalShots: m.Home.Shots + m.Away.Shots,
		TotalGoals: m.Home.Goals + m.Away.Goals,
		TotalCards: m.Home.Yellows + m.Home.Reds + m.Away.Yellows + m.Away.Reds,

		GoalDifference:  gd,
		Competitiveness: ci,
	}
}
