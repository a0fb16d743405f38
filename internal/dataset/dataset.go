package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/matchday-cli/internal/model"
)

// LoadStats summarizes a dataset load.
type LoadStats struct {
	Rows    int `json:"rows"`
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// Load reads a match dataset, dispatching on file extension. Format is one of
// "auto", "csv", "xlsx"; "auto" uses the extension.
//
// Missing required columns abort the load; rows whose stat cells fail to
// parse are skipped and counted in LoadStats.
func Load(ctx context.Context, path, format string) ([]model.Match, LoadStats, error) {
	if format == "" || format == "auto" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx":
			format = "xlsx"
		default:
			format = "csv"
		}
	}

	switch format {
	case "csv":
		return LoadCSV(ctx, path)
	case "xlsx":
		return LoadXLSX(path)
	}
	return nil, LoadStats{}, eris.Errorf("dataset: unsupported format %q", format)
}

// LoadCSV reads a CSV match dataset from disk.
func LoadCSV(ctx context.Context, path string) ([]model.Match, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, eris.Wrap(err, "dataset: open csv")
	}
	defer f.Close() //nolint:errcheck

	headerCh := make(chan []string, 1)
	rowCh, errCh := streamCSV(ctx, f, csvOptions{
		HasHeader: true,
		HeaderCh:  headerCh,
		TrimSpace: true,
	})

	var (
		colIdx  map[string]int
		matches []model.Match
		stats   LoadStats
	)
	for record := range rowCh {
		if colIdx == nil {
			header, ok := <-headerCh
			if !ok {
				return nil, stats, eris.New("dataset: csv has no header row")
			}
			colIdx, err = mapColumns(header)
			if err != nil {
				return nil, stats, err
			}
		}
		appendRow(&matches, &stats, record, colIdx)
	}
	if err := <-errCh; err != nil {
		return nil, stats, err
	}

	// Header only arrives once a data row has been read; an empty file or a
	// header-only file still needs the column check.
	if colIdx == nil {
		select {
		case header := <-headerCh:
			if _, err := mapColumns(header); err != nil {
				return nil, stats, err
			}
		default:
			return nil, stats, eris.New("dataset: csv has no header row")
		}
	}

	logLoad(path, stats)
	return matches, stats, nil
}

// LoadXLSX reads an XLSX match dataset from disk.
func LoadXLSX(path string) ([]model.Match, LoadStats, error) {
	rows, err := readXLSX(path)
	if err != nil {
		return nil, LoadStats{}, err
	}
	if len(rows) == 0 {
		return nil, LoadStats{}, eris.New("dataset: xlsx has no header row")
	}

	colIdx, err := mapColumns(rows[0])
	if err != nil {
		return nil, LoadStats{}, err
	}

	var (
		matches []model.Match
		stats   LoadStats
	)
	for _, record := range rows[1:] {
		appendRow(&matches, &stats, record, colIdx)
	}

	logLoad(path, stats)
	return matches, stats, nil
}

func appendRow(matches *[]model.Match, stats *LoadStats, record []string, colIdx map[string]int) {
	stats.Rows++
	m, err := parseMatch(record, colIdx)
	if err != nil {
		stats.Skipped++
		zap.L().Debug("dataset: skipping row", zap.Int("row", stats.Rows), zap.Error(err))
		return
	}
	stats.Loaded++
	*matches = append(*matches, m)
}

func logLoad(path string, stats LoadStats) {
	zap.L().Info("dataset loaded",
		zap.String("path", path),
		zap.Int("rows", stats.Rows),
		zap.Int("loaded", stats.Loaded),
		zap.Int("skipped", stats.Skipped),
	)
}
