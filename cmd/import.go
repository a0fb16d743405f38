package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/matchday-cli/internal/pipeline"
)

var (
	importInput  string
	importSeason string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Run the pipeline and persist its tables to the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out, stats, err := runPipeline(ctx, importInput)
		if err != nil {
			return err
		}
		if importSeason != "" {
			out = filterSeason(out, importSeason)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		imp, err := st.CreateImport(ctx, importInput, stats)
		if err != nil {
			return err
		}
		if err := st.SaveOutput(ctx, imp.ID, out); err != nil {
			return eris.Wrapf(err, "import %s", imp.ID)
		}

		zap.L().Info("import complete",
			zap.String("import_id", imp.ID),
			zap.Int("matches", len(out.Derived)),
			zap.Int("team_rows", len(out.TeamRows)),
			zap.Int("skipped", stats.Skipped),
		)
		return nil
	},
}

// filterSeason keeps only one season's matches and team rows.
func filterSeason(out *pipeline.Output, season string) *pipeline.Output {
	filtered := &pipeline.Output{}
	for _, d := range out.Derived {
		if d.Season == season {
			filtered.Derived = append(filtered.Derived, d)
		}
	}
	for _, r := range out.TeamRows {
		if r.Season == season {
			filtered.TeamRows = append(filtered.TeamRows, r)
		}
	}
	return filtered
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&importInput, "input", "", "dataset file (csv or xlsx)")
	f.StringVar(&importSeason, "season", "", "import only one season")
	_ = importCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(importCmd)
}
