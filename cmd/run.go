package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/matchday-cli/internal/pipeline"
)

var (
	runInput       string
	runSeason      string
	runFormat      string
	runOutput      string
	runConcurrency int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline and print the standings report",
	Long: `Loads the match dataset, derives per-match metrics, projects team rows
with points, and prints the standings plus a per-season overview.

Examples:
  # Full report to stdout
  matchday run --input matches.csv

  # One season, standings as CSV
  matchday run --input matches.csv --season 2015/16 --format csv --output standings.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := zap.L().With(zap.String("command", "run"))

		if runConcurrency > 0 {
			cfg.Pipeline.Concurrency = runConcurrency
		}
		out, stats, err := runPipeline(ctx, runInput)
		if err != nil {
			return err
		}
		log.Info("pipeline run finished",
			zap.Int("loaded", stats.Loaded),
			zap.Int("skipped", stats.Skipped),
		)

		if runFormat != "" && runFormat != "table" {
			standings := pipeline.Standings(out.TeamRows, runSeason)
			return emitTable(pipeline.StandingsTable(standings), standings, runFormat, runOutput)
		}

		fmt.Print(pipeline.FormatReport(out, runSeason))
		return nil
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runInput, "input", "", "dataset file (csv or xlsx)")
	f.StringVar(&runSeason, "season", "", "filter standings to one season")
	f.StringVar(&runFormat, "format", "table", "output format: table, csv, json or yaml")
	f.StringVar(&runOutput, "output", "", "output file path (default: stdout)")
	f.IntVar(&runConcurrency, "concurrency", 0, "parallel derivation workers (default: config pipeline.concurrency)")
	rootCmd.AddCommand(runCmd)
}
