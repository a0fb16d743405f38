package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// Table is a rendered summary: a header and pre-formatted string rows.
// It renders either as a fixed-width text table or as CSV.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Render returns the table as fixed-width text.
func (t Table) Render() string {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		fmt.Fprintf(&b, "%s\n", t.Title)
	}
	for i, h := range t.Header {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%-*s", widths[i], h)
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteCSV writes the table as CSV, header first.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}

// StandingsTable renders a league table.
func StandingsTable(entries []StandingsEntry) Table {
	t := Table{
		Title:  "Standings",
		Header: []string{"Pos", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts"},
	}
	for i, e := range entries {
		t.Rows = append(t.Rows, []string{
			itoa(i + 1), e.Team,
			itoa(e.Played), itoa(e.Wins), itoa(e.Draws), itoa(e.Losses),
			itoa(e.GoalsFor), itoa(e.GoalsAgainst), itoa(e.GoalDiff), itoa(e.Points),
		})
	}
	return t
}

// SeasonTable renders per-season league-wide summaries.
func SeasonTable(summaries []SeasonSummary) Table {
	t := Table{
		Title:  "Seasons",
		Header: []string{"Season", "Matches", "Goals", "Goals/Match", "Home%", "Draw%", "Away%", "Competitiveness"},
	}
	for _, s := range summaries {
		t.Rows = append(t.Rows, []string{
			s.Season, itoa(s.Matches), itoa(s.Goals),
			ftoa(s.GoalsPerMatch), ftoa(s.HomeWinPct), ftoa(s.DrawPct), ftoa(s.AwayWinPct),
			ftoa(s.MeanCompetitiveness),
		})
	}
	return t
}

// AwayFormTable renders per-team venue splits.
func AwayFormTable(splits []HomeAwaySplit) Table {
	t := Table{
		Title:  "Away form",
		Header: []string{"Team", "HomePts", "AwayPts", "AwayP", "AwayW", "AwayWin%"},
	}
	for _, s := range splits {
		t.Rows = append(t.Rows, []string{
			s.Team, itoa(s.HomePoints), itoa(s.AwayPoints),
			itoa(s.AwayPlayed), itoa(s.AwayWins), ftoa(s.AwayWinRate),
		})
	}
	return t
}

// RefereeTable renders per-referee card averages.
func RefereeTable(summaries []RefereeSummary) Table {
	t := Table{
		Title:  "Referees",
		Header: []string{"Referee", "Matches", "Yellows/M", "Reds/M", "Discipline/M"},
	}
	for _, s := range summaries {
		t.Rows = append(t.Rows, []string{
			s.Referee, itoa(s.Matches),
			ftoa(s.MeanYellows), ftoa(s.MeanReds), ftoa(s.MeanDiscipline),
		})
	}
	return t
}

// DisciplineTableView renders per-team card totals.
func DisciplineTableView(entries []DisciplineEntry) Table {
	t := Table{
		Title:  "Discipline",
		Header: []string{"Team", "Y", "R", "DiscPts", "Fouls", "Fouls/Card"},
	}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			e.Team, itoa(e.Yellows), itoa(e.Reds), itoa(e.Points),
			itoa(e.Fouls), ftoa(e.FoulsPerCard),
		})
	}
	return t
}

// FormatReport generates the human-readable run summary printed by the run
// command: standings plus the season overview.
func FormatReport(out *Output, season string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Match Pipeline Report\n")
	fmt.Fprintf(&b, "Matches: %d\n", len(out.Derived))
	fmt.Fprintf(&b, "Team rows: %d\n", len(out.TeamRows))
	if season != "" {
		fmt.Fprintf(&b, "Season filter: %s\n", season)
	}
	b.WriteString("\n")

	b.WriteString(StandingsTable(Standings(out.TeamRows, season)).Render())
	b.WriteString("\n")
	b.WriteString(SeasonTable(SeasonSummaries(out.Derived)).Render())

	return b.String()
}

func itoa(v int) string { return fmt.Sprintf("%d", v) }

func ftoa(v float64) string { return fmt.Sprintf("%.2f", v) }
