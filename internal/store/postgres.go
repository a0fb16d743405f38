package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/matchday-cli/internal/dataset"
	"github.com/sells-group/matchday-cli/internal/model"
	"github.com/sells-group/matchday-cli/internal/pipeline"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS imports (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	rows       INTEGER NOT NULL,
	loaded     INTEGER NOT NULL,
	skipped    INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS matches (
	id              TEXT PRIMARY KEY,
	import_id       TEXT NOT NULL REFERENCES imports(id),
	season          TEXT NOT NULL,
	date            TEXT NOT NULL,
	referee         TEXT NOT NULL DEFAULT '',
	home_team       TEXT NOT NULL,
	away_team       TEXT NOT NULL,
	result          TEXT NOT NULL,
	home_goals      INTEGER NOT NULL,
	home_shots      INTEGER NOT NULL,
	home_sot        INTEGER NOT NULL,
	home_corners    INTEGER NOT NULL,
	home_fouls      INTEGER NOT NULL,
	home_yellows    INTEGER NOT NULL,
	home_reds       INTEGER NOT NULL,
	away_goals      INTEGER NOT NULL,
	away_shots      INTEGER NOT NULL,
	away_sot        INTEGER NOT NULL,
	away_corners    INTEGER NOT NULL,
	away_fouls      INTEGER NOT NULL,
	away_yellows    INTEGER NOT NULL,
	away_reds       INTEGER NOT NULL,
	month           INTEGER NOT NULL,
	year            INTEGER NOT NULL,
	home_conversion DOUBLE PRECISION NOT NULL,
	home_accuracy   DOUBLE PRECISION NOT NULL,
	home_discipline INTEGER NOT NULL,
	away_conversion DOUBLE PRECISION NOT NULL,
	away_accuracy   DOUBLE PRECISION NOT NULL,
	away_discipline INTEGER NOT NULL,
	total_shots     INTEGER NOT NULL,
	total_goals     INTEGER NOT NULL,
	total_cards     INTEGER NOT NULL,
	goal_diff       INTEGER NOT NULL,
	competitiveness INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS team_rows (
	id           TEXT PRIMARY KEY,
	import_id    TEXT NOT NULL REFERENCES imports(id),
	team         TEXT NOT NULL,
	opponent     TEXT NOT NULL,
	venue        TEXT NOT NULL,
	season       TEXT NOT NULL,
	date         TEXT NOT NULL,
	referee      TEXT NOT NULL DEFAULT '',
	goals        INTEGER NOT NULL,
	conceded     INTEGER NOT NULL,
	shots        INTEGER NOT NULL,
	sot          INTEGER NOT NULL,
	corners      INTEGER NOT NULL,
	fouls        INTEGER NOT NULL,
	yellows      INTEGER NOT NULL,
	reds         INTEGER NOT NULL,
	discipline   INTEGER NOT NULL,
	conversion   DOUBLE PRECISION NOT NULL,
	accuracy     DOUBLE PRECISION NOT NULL,
	result_label TEXT NOT NULL,
	points       INTEGER NOT NULL,
	win          INTEGER NOT NULL,
	draw         INTEGER NOT NULL,
	loss         INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_matches_season ON matches(season);
CREATE INDEX IF NOT EXISTS idx_team_rows_season ON team_rows(season);
CREATE INDEX IF NOT EXISTS idx_team_rows_team ON team_rows(team);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateImport(ctx context.Context, source string, stats dataset.LoadStats) (*Import, error) {
	imp := &Import{
		ID:        uuid.New().String(),
		Source:    source,
		Rows:      stats.Rows,
		Loaded:    stats.Loaded,
		Skipped:   stats.Skipped,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO imports (id, source, rows, loaded, skipped, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		imp.ID, imp.Source, imp.Rows, imp.Loaded, imp.Skipped, imp.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert import")
	}
	return imp, nil
}

func (s *PostgresStore) ListImports(ctx context.Context) ([]Import, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, source, rows, loaded, skipped, created_at FROM imports ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list imports")
	}
	defer rows.Close()

	var imports []Import
	for rows.Next() {
		var imp Import
		if err := rows.Scan(&imp.ID, &imp.Source, &imp.Rows, &imp.Loaded, &imp.Skipped, &imp.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan import")
		}
		imports = append(imports, imp)
	}
	return imports, eris.Wrap(rows.Err(), "postgres: iterate imports")
}

var matchColumns = []string{
	"id", "import_id", "season", "date", "referee", "home_team", "away_team", "result",
	"home_goals", "home_shots", "home_sot", "home_corners", "home_fouls", "home_yellows", "home_reds",
	"away_goals", "away_shots", "away_sot", "away_corners", "away_fouls", "away_yellows", "away_reds",
	"month", "year",
	"home_conversion", "home_accuracy", "home_discipline",
	"away_conversion", "away_accuracy", "away_discipline",
	"total_shots", "total_goals", "total_cards", "goal_diff", "competitiveness",
}

var teamRowColumns = []string{
	"id", "import_id", "team", "opponent", "venue", "season", "date", "referee",
	"goals", "conceded", "shots", "sot", "corners", "fouls", "yellows", "reds",
	"discipline", "conversion", "accuracy", "result_label", "points", "win", "draw", "loss",
}

// SaveOutput bulk-inserts both tables using the COPY protocol.
func (s *PostgresStore) SaveOutput(ctx context.Context, importID string, out *pipeline.Output) error {
	matchRows := make([][]any, 0, len(out.Derived))
	for _, d := range out.Derived {
		matchRows = append(matchRows, []any{
			uuid.New().String(), importID, d.Season, d.Date.Format(time.RFC3339), d.Referee,
			d.HomeTeam, d.AwayTeam, string(d.Result),
			d.Home.Goals, d.Home.Shots, d.Home.ShotsOnTarget, d.Home.Corners, d.Home.Fouls, d.Home.Yellows, d.Home.Reds,
			d.Away.Goals, d.Away.Shots, d.Away.ShotsOnTarget, d.Away.Corners, d.Away.Fouls, d.Away.Yellows, d.Away.Reds,
			d.Month, d.Year,
			d.HomeMetrics.ConversionRate, d.HomeMetrics.ShotAccuracy, d.HomeMetrics.DisciplinaryPoints,
			d.AwayMetrics.ConversionRate, d.AwayMetrics.ShotAccuracy, d.AwayMetrics.DisciplinaryPoints,
			d.TotalShots, d.TotalGoals, d.TotalCards, d.GoalDifference, d.Competitiveness,
		})
	}
	if _, err := s.pool.CopyFrom(ctx, pgx.Identifier{"matches"}, matchColumns, pgx.CopyFromRows(matchRows)); err != nil {
		return eris.Wrap(err, "postgres: copy matches")
	}

	teamRows := make([][]any, 0, len(out.TeamRows))
	for _, r := range out.TeamRows {
		teamRows = append(teamRows, []any{
			uuid.New().String(), importID, r.Team, r.Opponent, string(r.Venue), r.Season,
			r.Date.Format(time.RFC3339), r.Referee,
			r.Goals, r.GoalsConceded, r.Shots, r.ShotsOnTarget, r.Corners, r.Fouls, r.Yellows, r.Reds,
			r.DisciplinaryPoints, r.ConversionRate, r.ShotAccuracy, string(r.ResultLabel),
			r.Points, r.Win, r.Draw, r.Loss,
		})
	}
	if _, err := s.pool.CopyFrom(ctx, pgx.Identifier{"team_rows"}, teamRowColumns, pgx.CopyFromRows(teamRows)); err != nil {
		return eris.Wrap(err, "postgres: copy team rows")
	}
	return nil
}

func (s *PostgresStore) LoadDerived(ctx context.Context, season string) ([]model.DerivedMatch, error) {
	query := `SELECT season, date, referee, home_team, away_team, result,
		home_goals, home_shots, home_sot, home_corners, home_fouls, home_yellows, home_reds,
		away_goals, away_shots, away_sot, away_corners, away_fouls, away_yellows, away_reds,
		month, year,
		home_conversion, home_accuracy, home_discipline,
		away_conversion, away_accuracy, away_discipline,
		total_shots, total_goals, total_cards, goal_diff, competitiveness
	FROM matches`
	var args []any
	if season != "" {
		query += ` WHERE season = $1`
		args = append(args, season)
	}
	query += ` ORDER BY date`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load matches")
	}
	defer rows.Close()

	var derived []model.DerivedMatch
	for rows.Next() {
		var (
			d      model.DerivedMatch
			date   string
			result string
		)
		if err := rows.Scan(
			&d.Season, &date, &d.Referee, &d.HomeTeam, &d.AwayTeam, &result,
			&d.Home.Goals, &d.Home.Shots, &d.Home.ShotsOnTarget, &d.Home.Corners, &d.Home.Fouls, &d.Home.Yellows, &d.Home.Reds,
			&d.Away.Goals, &d.Away.Shots, &d.Away.ShotsOnTarget, &d.Away.Corners, &d.Away.Fouls, &d.Away.Yellows, &d.Away.Reds,
			&d.Month, &d.Year,
			&d.HomeMetrics.ConversionRate, &d.HomeMetrics.ShotAccuracy, &d.HomeMetrics.DisciplinaryPoints,
			&d.AwayMetrics.ConversionRate, &d.AwayMetrics.ShotAccuracy, &d.AwayMetrics.DisciplinaryPoints,
			&d.TotalShots, &d.TotalGoals, &d.TotalCards, &d.GoalDifference, &d.Competitiveness,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan match")
		}
		d.Result = model.Result(result)
		if d.Date, err = time.Parse(time.RFC3339, date); err != nil {
			return nil, eris.Wrap(err, "postgres: parse match date")
		}
		derived = append(derived, d)
	}
	return derived, eris.Wrap(rows.Err(), "postgres: iterate matches")
}

func (s *PostgresStore) LoadTeamRows(ctx context.Context, filter RowFilter) ([]model.TeamMatchRow, error) {
	query := `SELECT team, opponent, venue, season, date, referee,
		goals, conceded, shots, sot, corners, fouls, yellows, reds,
		discipline, conversion, accuracy, result_label, points, win, draw, loss
	FROM team_rows WHERE 1=1`
	var args []any
	if filter.Season != "" {
		args = append(args, filter.Season)
		query += fmt.Sprintf(` AND season = $%d`, len(args))
	}
	if filter.Team != "" {
		args = append(args, filter.Team)
		query += fmt.Sprintf(` AND team = $%d`, len(args))
	}
	query += ` ORDER BY date`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load team rows")
	}
	defer rows.Close()

	var result []model.TeamMatchRow
	for rows.Next() {
		r, err := scanTeamRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, eris.Wrap(rows.Err(), "postgres: iterate team rows")
}
