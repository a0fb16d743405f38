package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/matchday-cli/internal/dataset"
	"github.com/sells-group/matchday-cli/internal/pipeline"
	"github.com/sells-group/matchday-cli/internal/store"
)

// runPipeline loads the dataset at path and runs the full feature pipeline.
// An empty path falls back to the configured dataset.
func runPipeline(ctx context.Context, path string) (*pipeline.Output, dataset.LoadStats, error) {
	format := cfg.Dataset.Format
	if path == "" {
		path = cfg.Dataset.Path
	}
	if path == "" {
		return nil, dataset.LoadStats{}, eris.New("no dataset: pass --input or set dataset.path")
	}

	matches, stats, err := dataset.Load(ctx, path, format)
	if err != nil {
		return nil, stats, err
	}

	out, err := pipeline.Run(ctx, matches, pipeline.Options{Concurrency: cfg.Pipeline.Concurrency})
	if err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

// openStore opens the configured store backend.
func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	}
	return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// emitTable writes one summary table in the requested format to the output
// path, or stdout when the path is empty. data is the typed aggregate behind
// the table, used for JSON output.
func emitTable(t pipeline.Table, data any, format, outputPath string) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrap(err, "create output file")
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch format {
	case "table", "":
		_, err := io.WriteString(w, t.Render())
		return eris.Wrap(err, "write table")
	case "csv":
		return t.WriteCSV(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(data), "write json")
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close() //nolint:errcheck
		return eris.Wrap(enc.Encode(data), "write yaml")
	}
	return eris.Errorf("--format must be table, csv, json or yaml (got %q)", format)
}
