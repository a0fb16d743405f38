// Package render draws the fixed chart set over pipeline output as a single
// self-contained HTML page.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rotisserie/eris"

	"github.com/sells-group/matchday-cli/internal/pipeline"
)

// progressionSeriesLimit caps how many teams the progression line chart
// shows, so a full league season stays readable.
const progressionSeriesLimit = 6

// Charts writes the full chart page for one pipeline run.
func Charts(w io.Writer, out *pipeline.Output, season string) error {
	standings := pipeline.Standings(out.TeamRows, season)
	splits := pipeline.HomeAwaySplits(out.TeamRows, season)
	seasons := pipeline.SeasonSummaries(out.Derived)
	progression := pipeline.PointProgression(out.TeamRows, season)
	referees := pipeline.RefereeSummaries(out.Derived)

	page := components.NewPage()
	page.SetPageTitle("Match Analytics")
	page.AddCharts(
		pointsChart(standings),
		goalsChart(standings),
		progressionChart(progression, standings),
		awayWinChart(splits),
		seasonChart(seasons),
		refereeChart(referees),
	)

	return eris.Wrap(page.Render(w), "render: charts page")
}

// ChartsFile renders the chart page to a file.
func ChartsFile(path string, out *pipeline.Output, season string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "render: create output file")
	}
	defer f.Close() //nolint:errcheck
	return Charts(f, out, season)
}

func pointsChart(standings []pipeline.StandingsEntry) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Total points by team"}))

	teams := make([]string, 0, len(standings))
	points := make([]opts.BarData, 0, len(standings))
	for _, e := range standings {
		teams = append(teams, e.Team)
		points = append(points, opts.BarData{Value: e.Points})
	}
	bar.SetXAxis(teams).AddSeries("Points", points)
	return bar
}

func goalsChart(standings []pipeline.StandingsEntry) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Goals scored vs conceded"}))

	teams := make([]string, 0, len(standings))
	scored := make([]opts.BarData, 0, len(standings))
	conceded := make([]opts.BarData, 0, len(standings))
	for _, e := range standings {
		teams = append(teams, e.Team)
		scored = append(scored, opts.BarData{Value: e.GoalsFor})
		conceded = append(conceded, opts.BarData{Value: e.GoalsAgainst})
	}
	bar.SetXAxis(teams).
		AddSeries("Scored", scored).
		AddSeries("Conceded", conceded)
	return bar
}

func progressionChart(progression []pipeline.ProgressionPoint, standings []pipeline.StandingsEntry) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Season point progression"}))

	// Standings are already sorted; chart the leaders only.
	include := make(map[string]bool)
	for i, e := range standings {
		if i >= progressionSeriesLimit {
			break
		}
		include[e.Team] = true
	}

	byTeam := make(map[string][]opts.LineData)
	maxMatchday := 0
	for _, p := range progression {
		if !include[p.Team] {
			continue
		}
		byTeam[p.Team] = append(byTeam[p.Team], opts.LineData{Value: p.Cumulative})
		if p.Matchday > maxMatchday {
			maxMatchday = p.Matchday
		}
	}

	matchdays := make([]string, maxMatchday)
	for i := range matchdays {
		matchdays[i] = itoa(i + 1)
	}
	line.SetXAxis(matchdays)
	for i, e := range standings {
		if i >= progressionSeriesLimit {
			break
		}
		line.AddSeries(e.Team, byTeam[e.Team])
	}
	return line
}

func awayWinChart(splits []pipeline.HomeAwaySplit) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Away win rate (%)"}))

	teams := make([]string, 0, len(splits))
	rates := make([]opts.BarData, 0, len(splits))
	for _, s := range splits {
		teams = append(teams, s.Team)
		rates = append(rates, opts.BarData{Value: s.AwayWinRate})
	}
	bar.SetXAxis(teams).AddSeries("Away win %", rates)
	return bar
}

func seasonChart(seasons []pipeline.SeasonSummary) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Goals per match and competitiveness by season"}))

	labels := make([]string, 0, len(seasons))
	goals := make([]opts.LineData, 0, len(seasons))
	comp := make([]opts.LineData, 0, len(seasons))
	for _, s := range seasons {
		labels = append(labels, s.Season)
		goals = append(goals, opts.LineData{Value: s.GoalsPerMatch})
		comp = append(comp, opts.LineData{Value: s.MeanCompetitiveness})
	}
	line.SetXAxis(labels).
		AddSeries("Goals/match", goals).
		AddSeries("Mean competitiveness", comp)
	return line
}

func refereeChart(referees []pipeline.RefereeSummary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Card averages by referee"}))

	names := make([]string, 0, len(referees))
	yellows := make([]opts.BarData, 0, len(referees))
	reds := make([]opts.BarData, 0, len(referees))
	for _, r := range referees {
		names = append(names, r.Referee)
		yellows = append(yellows, opts.BarData{Value: r.MeanYellows})
		reds = append(reds, opts.BarData{Value: r.MeanReds})
	}
	bar.SetXAxis(names).
		AddSeries("Yellows/match", yellows).
		AddSeries("Reds/match", reds)
	return bar
}

func itoa(v int) string {
	return fmt.Sprintf("%d", v)
}
