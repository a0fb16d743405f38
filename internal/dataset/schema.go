package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/matchday-cli/internal/model"
)

// Column names follow the football-data.co.uk convention: FT = full time,
// H/A prefix = home/away, S = shots, ST = shots on target, C = corners,
// F = fouls, Y/R = yellow/red cards.
var requiredColumns = []string{
	"Date", "HomeTeam", "AwayTeam", "FTHG", "FTAG", "FTR",
	"HS", "AS", "HST", "AST", "HC", "AC", "HF", "AF", "HY", "AY", "HR", "AR",
}

var dateLayouts = []string{"02/01/2006", "02/01/06", "2006-01-02"}

// normalizeCol lowercases and trims a header cell for cross-format matching.
func normalizeCol(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapColumns builds a normalized column name → index map and verifies every
// required column is present.
func mapColumns(header []string) (map[string]int, error) {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[normalizeCol(col)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := m[normalizeCol(col)]; !ok {
			return nil, eris.Errorf("dataset: missing required column %q", col)
		}
	}
	return m, nil
}

// getCol gets a cell by normalized column name, or "" when absent.
func getCol(record []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[normalizeCol(name)]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseIntCell parses a required numeric stat cell.
func parseIntCell(record []string, colIdx map[string]int, name string) (int, error) {
	s := getCol(record, colIdx, name)
	if s == "" {
		return 0, eris.Errorf("dataset: empty cell %s", name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, eris.Wrapf(err, "dataset: parse %s", name)
	}
	return v, nil
}

// parseDate tries the known dataset date layouts in order.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("dataset: unrecognized date %q", s)
}

func parseResult(s string) (model.Result, error) {
	switch model.Result(strings.ToUpper(s)) {
	case model.ResultHomeWin:
		return model.ResultHomeWin, nil
	case model.ResultDraw:
		return model.ResultDraw, nil
	case model.ResultAwayWin:
		return model.ResultAwayWin, nil
	}
	return "", eris.Errorf("dataset: unrecognized result %q", s)
}

// parseMatch maps one data row onto the match schema. Required cells that
// fail to parse make the whole row invalid; the caller decides whether to
// skip or abort.
func parseMatch(record []string, colIdx map[string]int) (model.Match, error) {
	var m model.Match

	date, err := parseDate(getCol(record, colIdx, "Date"))
	if err != nil {
		return m, err
	}

	result, err := parseResult(getCol(record, colIdx, "FTR"))
	if err != nil {
		return m, err
	}

	home := getCol(record, colIdx, "HomeTeam")
	away := getCol(record, colIdx, "AwayTeam")
	if home == "" || away == "" {
		return m, eris.New("dataset: empty team name")
	}

	stats := map[string]*int{
		"FTHG": &m.Home.Goals, "FTAG": &m.Away.Goals,
		"HS": &m.Home.Shots, "AS": &m.Away.Shots,
		"HST": &m.Home.ShotsOnTarget, "AST": &m.Away.ShotsOnTarget,
		"HC": &m.Home.Corners, "AC": &m.Away.Corners,
		"HF": &m.Home.Fouls, "AF": &m.Away.Fouls,
		"HY": &m.Home.Yellows, "AY": &m.Away.Yellows,
		"HR": &m.Home.Reds, "AR": &m.Away.Reds,
	}
	for name, dst := range stats {
		v, err := parseIntCell(record, colIdx, name)
		if err != nil {
			return m, err
		}
		*dst = v
	}

	m.Date = date
	m.Result = result
	m.HomeTeam = home
	m.AwayTeam = away
	m.Season = getCol(record, colIdx, "Season")
	m.Referee = getCol(record, colIdx, "Referee")
	if m.Season == "" {
		m.Season = seasonFromDate(date)
	}

	return m, nil
}

// seasonFromDate labels a match with its season, e.g. "2015/16" for any date
// between August 2015 and July 2016. European seasons straddle the year end.
func seasonFromDate(t time.Time) string {
	start := t.Year()
	if t.Month() < time.August {
		start--
	}
	return fmt.Sprintf("%d/%02d", start, (start+1)%100)
}
