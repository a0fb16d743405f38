// Package model defines the match pipeline's data types: raw match records,
// derived per-match metrics, and the team-perspective rows fed to aggregation.
package model

import "time"

// Result is the full-time result category of a match.
type Result string

const (
	ResultHomeWin Result = "H"
	ResultDraw    Result = "D"
	ResultAwayWin Result = "A"
)

// Venue identifies which side of a fixture a team row represents.
type Venue string

const (
	VenueHome Venue = "home"
	VenueAway Venue = "away"
)

// SideStats holds the raw per-side statistics of one match.
type SideStats struct {
	Goals         int `json:"goals"`
	Shots         int `json:"shots"`
	ShotsOnTarget int `json:"shots_on_target"`
	Corners       int `json:"corners"`
	Fouls         int `json:"fouls"`
	Yellows       int `json:"yellows"`
	Reds          int `json:"reds"`
}

// Match is one fixture as read from the dataset. Raw fields are never
// overwritten after ingestion; derivation appends to a separate struct.
type Match struct {
	Season   string    `json:"season,omitempty"`
	Date     time.Time `json:"date"`
	Referee  string    `json:"referee,omitempty"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Result   Result    `json:"result"`
	Home     SideStats `json:"home"`
	Away     SideStats `json:"away"`
}

// SideMetrics holds the derived per-side metrics of one match.
type SideMetrics struct {
	ConversionRate     float64 `json:"conversion_rate"`
	ShotAccuracy       float64 `json:"shot_accuracy"`
	DisciplinaryPoints int     `json:"disciplinary_points"`
}

// DerivedMatch is a Match augmented with computed columns. Every derived
// field is a pure function of the embedded Match; there is no cross-row state.
type DerivedMatch struct {
	Match

	Month int `json:"month"`
	Year  int `json:"year"`

	HomeMetrics SideMetrics `json:"home_metrics"`
	AwayMetrics SideMetrics `json:"away_metrics"`

	TotalShots int `json:"total_shots"`
	TotalGoals int `json:"total_goals"`
	TotalCards int `json:"total_cards"`

	// GoalDifference is home minus away; Competitiveness is its absolute
	// value, so it is invariant under swapping the sides.
	GoalDifference  int `json:"goal_difference"`
	Competitiveness int `json:"competitiveness"`
}

// TeamMatchRow is one team's view of one match. Each DerivedMatch produces
// exactly two rows, one per venue. ResultLabel carries the original match
// result unchanged; Points interprets it relative to Venue.
type TeamMatchRow struct {
	Team     string    `json:"team"`
	Opponent string    `json:"opponent"`
	Venue    Venue     `json:"venue"`
	Season   string    `json:"season,omitempty"`
	Date     time.Time `json:"date"`
	Referee  string    `json:"referee,omitempty"`

	Goals         int `json:"goals"`
	GoalsConceded int `json:"goals_conceded"`
	Shots         int `json:"shots"`
	ShotsOnTarget int `json:"shots_on_target"`
	Corners       int `json:"corners"`
	Fouls         int `json:"fouls"`
	Yellows       int `json:"yellows"`
	Reds          int `json:"reds"`

	DisciplinaryPoints int     `json:"disciplinary_points"`
	ConversionRate     float64 `json:"conversion_rate"`
	ShotAccuracy       float64 `json:"shot_accuracy"`

	ResultLabel Result `json:"result_label"`

	Points int `json:"points"`
	Win    int `json:"win"`
	Draw   int `json:"draw"`
	Loss   int `json:"loss"`
}

// Won reports whether this row's team won its match.
func (r TeamMatchRow) Won() bool { return r.Win == 1 }
