// Package store persists pipeline output so reports and the serve API can
// read tables without re-deriving them. Two backends: SQLite (default) and
// Postgres.
package store

import (
	"context"
	"time"

	"github.com/sells-group/matchday-cli/internal/dataset"
	"github.com/sells-group/matchday-cli/internal/model"
	"github.com/sells-group/matchday-cli/internal/pipeline"
)

// Import records one dataset load.
type Import struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Rows      int       `json:"rows"`
	Loaded    int       `json:"loaded"`
	Skipped   int       `json:"skipped"`
	CreatedAt time.Time `json:"created_at"`
}

// RowFilter narrows team-row queries. Empty fields match everything.
type RowFilter struct {
	Season string `json:"season,omitempty"`
	Team   string `json:"team,omitempty"`
}

// Store defines the persistence interface for pipeline output.
type Store interface {
	// Imports
	CreateImport(ctx context.Context, source string, stats dataset.LoadStats) (*Import, error)
	ListImports(ctx context.Context) ([]Import, error)

	// Tables
	SaveOutput(ctx context.Context, importID string, out *pipeline.Output) error
	LoadDerived(ctx context.Context, season string) ([]model.DerivedMatch, error)
	LoadTeamRows(ctx context.Context, filter RowFilter) ([]model.TeamMatchRow, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
