package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/matchday-cli/internal/dataset"
	"github.com/sells-group/matchday-cli/internal/model"
	"github.com/sells-group/matchday-cli/internal/pipeline"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS imports (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	rows       INTEGER NOT NULL,
	loaded     INTEGER NOT NULL,
	skipped    INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
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
	home_conversion REAL NOT NULL,
	home_accuracy   REAL NOT NULL,
	home_discipline INTEGER NOT NULL,
	away_conversion REAL NOT NULL,
	away_accuracy   REAL NOT NULL,
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
	conversion   REAL NOT NULL,
	accuracy     REAL NOT NULL,
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

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateImport(ctx context.Context, source string, stats dataset.LoadStats) (*Import, error) {
	imp := &Import{
		ID:        uuid.New().String(),
		Source:    source,
		Rows:      stats.Rows,
		Loaded:    stats.Loaded,
		Skipped:   stats.Skipped,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO imports (id, source, rows, loaded, skipped, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		imp.ID, imp.Source, imp.Rows, imp.Loaded, imp.Skipped, imp.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert import")
	}
	return imp, nil
}

func (s *SQLiteStore) ListImports(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, rows, loaded, skipped, created_at FROM imports ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list imports")
	}
	defer rows.Close() //nolint:errcheck

	var imports []Import
	for rows.Next() {
		var imp Import
		if err := rows.Scan(&imp.ID, &imp.Source, &imp.Rows, &imp.Loaded, &imp.Skipped, &imp.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan import")
		}
		imports = append(imports, imp)
	}
	return imports, eris.Wrap(rows.Err(), "sqlite: iterate imports")
}

func (s *SQLiteStore) SaveOutput(ctx context.Context, importID string, out *pipeline.Output) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	matchStmt, err := tx.PrepareContext(ctx, `INSERT INTO matches (
		id, import_id, season, date, referee, home_team, away_team, result,
		home_goals, home_shots, home_sot, home_corners, home_fouls, home_yellows, home_reds,
		away_goals, away_shots, away_sot, away_corners, away_fouls, away_yellows, away_reds,
		month, year,
		home_conversion, home_accuracy, home_discipline,
		away_conversion, away_accuracy, away_discipline,
		total_shots, total_goals, total_cards, goal_diff, competitiveness
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare match insert")
	}
	defer matchStmt.Close() //nolint:errcheck

	for _, d := range out.Derived {
		if _, err := matchStmt.ExecContext(ctx,
			uuid.New().String(), importID, d.Season, d.Date.Format(time.RFC3339), d.Referee,
			d.HomeTeam, d.AwayTeam, string(d.Result),
			d.Home.Goals, d.Home.Shots, d.Home.ShotsOnTarget, d.Home.Corners, d.Home.Fouls, d.Home.Yellows, d.Home.Reds,
			d.Away.Goals, d.Away.Shots, d.Away.ShotsOnTarget, d.Away.Corners, d.Away.Fouls, d.Away.Yellows, d.Away.Reds,
			d.Month, d.Year,
			d.HomeMetrics.ConversionRate, d.HomeMetrics.ShotAccuracy, d.HomeMetrics.DisciplinaryPoints,
			d.AwayMetrics.ConversionRate, d.AwayMetrics.ShotAccuracy, d.AwayMetrics.DisciplinaryPoints,
			d.TotalShots, d.TotalGoals, d.TotalCards, d.GoalDifference, d.Competitiveness,
		); err != nil {
			return eris.Wrap(err, "sqlite: insert match")
		}
	}

	rowStmt, err := tx.PrepareContext(ctx, `INSERT INTO team_rows (
		id, import_id, team, opponent, venue, season, date, referee,
		goals, conceded, shots, sot, corners, fouls, yellows, reds,
		discipline, conversion, accuracy, result_label, points, win, draw, loss
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare team row insert")
	}
	defer rowStmt.Close() //nolint:errcheck

	for _, r := range out.TeamRows {
		if _, err := rowStmt.ExecContext(ctx,
			uuid.New().String(), importID, r.Team, r.Opponent, string(r.Venue), r.Season,
			r.Date.Format(time.RFC3339), r.Referee,
			r.Goals, r.GoalsConceded, r.Shots, r.ShotsOnTarget, r.Corners, r.Fouls, r.Yellows, r.Reds,
			r.DisciplinaryPoints, r.ConversionRate, r.ShotAccuracy, string(r.ResultLabel),
			r.Points, r.Win, r.Draw, r.Loss,
		); err != nil {
			return eris.Wrap(err, "sqlite: insert team row")
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit output")
}

func (s *SQLiteStore) LoadDerived(ctx context.Context, season string) ([]model.DerivedMatch, error) {
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
		query += ` WHERE season = ?`
		args = append(args, season)
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load matches")
	}
	defer rows.Close() //nolint:errcheck

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
			return nil, eris.Wrap(err, "sqlite: scan match")
		}
		d.Result = model.Result(result)
		if d.Date, err = time.Parse(time.RFC3339, date); err != nil {
			return nil, eris.Wrap(err, "sqlite: parse match date")
		}
		derived = append(derived, d)
	}
	return derived, eris.Wrap(rows.Err(), "sqlite: iterate matches")
}

func (s *SQLiteStore) LoadTeamRows(ctx context.Context, filter RowFilter) ([]model.TeamMatchRow, error) {
	query := `SELECT team, opponent, venue, season, date, referee,
		goals, conceded, shots, sot, corners, fouls, yellows, reds,
		discipline, conversion, accuracy, result_label, points, win, draw, loss
	FROM team_rows WHERE 1=1`
	var args []any
	if filter.Season != "" {
		query += ` AND season = ?`
		args = append(args, filter.Season)
	}
	if filter.Team != "" {
		query += ` AND team = ?`
		args = append(args, filter.Team)
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load team rows")
	}
	defer rows.Close() //nolint:errcheck

	var result []model.TeamMatchRow
	for rows.Next() {
		r, err := scanTeamRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, eris.Wrap(rows.Err(), "sqlite: iterate team rows")
}

// scanTeamRow scans one team_rows row; shared by both backends since the
// column order is identical.
func scanTeamRow(scan func(dest ...any) error) (model.TeamMatchRow, error) {
	var (
		r     model.TeamMatchRow
		venue string
		date  string
		label string
	)
	if err := scan(
		&r.Team, &r.Opponent, &venue, &r.Season, &date, &r.Referee,
		&r.Goals, &r.GoalsConceded, &r.Shots, &r.ShotsOnTarget, &r.Corners, &r.Fouls, &r.Yellows, &r.Reds,
		&r.DisciplinaryPoints, &r.ConversionRate, &r.ShotAccuracy, &label,
		&r.Points, &r.Win, &r.Draw, &r.Loss,
	); err != nil {
		return r, eris.Wrap(err, "store: scan team row")
	}
	r.Venue = model.Venue(venue)
	r.ResultLabel = model.Result(label)
	var err error
	if r.Date, err = time.Parse(time.RFC3339, date); err != nil {
		return r, eris.Wrap(err, "store: parse team row date")
	}
	return r, nil
}
