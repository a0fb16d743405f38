package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/matchday-cli/internal/render"
)

var (
	chartsInput  string
	chartsSeason string
	chartsOutput string
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render the chart page from the pipeline output",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out, _, err := runPipeline(ctx, chartsInput)
		if err != nil {
			return err
		}

		if err := render.ChartsFile(chartsOutput, out, chartsSeason); err != nil {
			return err
		}

		zap.L().Info("charts rendered",
			zap.String("output", chartsOutput),
			zap.Int("matches", len(out.Derived)),
		)
		return nil
	},
}

func init() {
	f := chartsCmd.Flags()
	f.StringVar(&chartsInput, "input", "", "dataset file (csv or xlsx)")
	f.StringVar(&chartsSeason, "season", "", "filter charts to one season")
	f.StringVar(&chartsOutput, "output", "charts.html", "output HTML file")
	rootCmd.AddCommand(chartsCmd)
}
