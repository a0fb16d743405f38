package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/matchday-cli/internal/pipeline"
)

var (
	reportInput  string
	reportSeason string
	reportFormat string
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report [standings|seasons|awayform|referees|discipline]",
	Short: "Print one summary table from the pipeline output",
	Long: `Runs the pipeline and prints a single summary table.

Tables:
  standings   league table (points, W/D/L, goals, goal difference)
  seasons     per-season totals, result percentages, competitiveness
  awayform    per-team home/away points split and away win rate
  referees    per-referee card and disciplinary-point averages
  discipline  per-team cards, disciplinary points, fouls per card`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out, _, err := runPipeline(ctx, reportInput)
		if err != nil {
			return err
		}

		switch args[0] {
		case "standings":
			standings := pipeline.Standings(out.TeamRows, reportSeason)
			return emitTable(pipeline.StandingsTable(standings), standings, reportFormat, reportOutput)
		case "seasons":
			seasons := pipeline.SeasonSummaries(out.Derived)
			return emitTable(pipeline.SeasonTable(seasons), seasons, reportFormat, reportOutput)
		case "awayform":
			splits := pipeline.HomeAwaySplits(out.TeamRows, reportSeason)
			return emitTable(pipeline.AwayFormTable(splits), splits, reportFormat, reportOutput)
		case "referees":
			referees := pipeline.RefereeSummaries(out.Derived)
			return emitTable(pipeline.RefereeTable(referees), referees, reportFormat, reportOutput)
		case "discipline":
			discipline := pipeline.DisciplineTable(out.TeamRows, reportSeason)
			return emitTable(pipeline.DisciplineTableView(discipline), discipline, reportFormat, reportOutput)
		}
		return eris.Errorf("unknown report %q", args[0])
	},
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportInput, "input", "", "dataset file (csv or xlsx)")
	f.StringVar(&reportSeason, "season", "", "filter to one season")
	f.StringVar(&reportFormat, "format", "table", "output format: table, csv, json or yaml")
	f.StringVar(&reportOutput, "output", "", "output file path (default: stdout)")
	rootCmd.AddCommand(reportCmd)
}
