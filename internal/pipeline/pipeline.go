package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/matchday-cli/internal/model"
)

// Options configures a pipeline run.
type Options struct {
	// Concurrency bounds the parallel per-match derivation. Zero or one
	// means sequential. Every row transform is pure, so parallelism never
	// changes the output; order is preserved by indexed writes.
	Concurrency int
}

// Output holds the two tables the pipeline produces. TeamRows has exactly
// twice the length of Derived: home row at 2i, away row at 2i+1.
type Output struct {
	Derived  []model.DerivedMatch
	TeamRows []model.TeamMatchRow
}

// Run executes the full feature pipeline over a match table.
func Run(ctx context.Context, matches []model.Match, opts Options) (*Output, error) {
	start := time.Now()

	out := &Output{
		Derived:  make([]model.DerivedMatch, len(matches)),
		TeamRows: make([]model.TeamMatchRow, 2*len(matches)),
	}

	transform := func(i int) {
		d := Derive(matches[i])
		out.Derived[i] = d

		home, away := Project(d)
		out.TeamRows[2*i] = AssignPoints(home)
		out.TeamRows[2*i+1] = AssignPoints(away)
	}

	if opts.Concurrency > 1 {
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Concurrency)
		for i := range matches {
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				transform(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range matches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			transform(i)
		}
	}

	zap.L().Info("pipeline complete",
		zap.Int("matches", len(matches)),
		zap.Int("team_rows", len(out.TeamRows)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}
