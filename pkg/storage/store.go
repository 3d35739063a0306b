// Package storage persists QSO records in SQLite. It is the
// persistence collaborator of the import/export core: callers hand it
// batches to insert and iterate records back out; no other package
// ever holds the database handle.
package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"

	"github.com/qsopipe/qsopipe/pkg/models"
	"github.com/qsopipe/qsopipe/pkg/qsoerrors"
)

// DBEnvVar overrides the database file location.
const DBEnvVar = "QSOPIPE_DB_PATH"

// Store wraps the SQLite database holding the logbook.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// DefaultPath resolves the database location: DBEnvVar when set,
// otherwise qsolog.sqlite3 under the user config directory.
func DefaultPath() (string, error) {
	if env := os.Getenv(DBEnvVar); env != "" {
		return env, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "resolve user config dir")
	}
	return filepath.Join(dir, "qsopipe", "qsolog.sqlite3"), nil
}

// Open opens (or creates) the database at path and ensures the schema
// exists. An empty path resolves via DefaultPath.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "ensure data dir")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "open database")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("log store opened", zap.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

func initSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS qsos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    call TEXT NOT NULL,
    start_at TEXT NOT NULL,
    band TEXT,
    mode TEXT,
    freq_mhz REAL,
    rst_sent TEXT,
    rst_rcvd TEXT,
    name TEXT,
    qth TEXT,
    grid TEXT,
    country TEXT,
    comment TEXT
);
CREATE INDEX IF NOT EXISTS idx_qsos_call ON qsos(call);
CREATE INDEX IF NOT EXISTS idx_qsos_start_at ON qsos(start_at);
CREATE INDEX IF NOT EXISTS idx_qsos_band ON qsos(band);
CREATE INDEX IF NOT EXISTS idx_qsos_grid ON qsos(grid);`
	if _, err := db.Exec(schema); err != nil {
		return qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "init schema")
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertBatch inserts records in a single transaction and returns the
// inserted count. A failed batch leaves the store unchanged.
func (s *Store) InsertBatch(ctx context.Context, qsos []models.QSO) (int, error) {
	if len(qsos) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "begin insert batch")
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO qsos (call, start_at, band, mode, freq_mhz, rst_sent, rst_rcvd, name, qth, grid, country, comment)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "prepare insert")
	}
	defer stmt.Close()

	for i := range qsos {
		q := &qsos[i]
		var freq interface{}
		if q.HasFreq() {
			freq = q.FreqMHz
		}
		if _, err := stmt.ExecContext(ctx,
			q.Call, q.StartAt.UTC().Format(time.RFC3339),
			nullable(q.Band), nullable(q.Mode), freq,
			nullable(q.RSTSent), nullable(q.RSTRcvd), nullable(q.Name),
			nullable(q.QTH), nullable(q.Grid), nullable(q.Country), nullable(q.Comment),
		); err != nil {
			return 0, qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "insert record").
				WithDetail("call", q.Call)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "commit insert batch")
	}

	s.logger.Debug("batch inserted", zap.Int("count", len(qsos)))
	return len(qsos), nil
}

// Filter narrows Search and Iterate. Call matches as a case-insensitive
// substring; the other fields match exactly. Zero values match all.
type Filter struct {
	Call  string
	Band  string
	Mode  string
	Grid  string
	Limit int
}

const selectColumns = `
SELECT id, call, start_at, band, mode, freq_mhz, rst_sent, rst_rcvd, name, qth, grid, country, comment
FROM qsos`

func (f Filter) build() (string, []interface{}) {
	query := selectColumns
	var clauses []string
	var args []interface{}

	if f.Call != "" {
		clauses = append(clauses, "call LIKE ?")
		args = append(args, "%"+f.Call+"%")
	}
	if f.Band != "" {
		clauses = append(clauses, "band = ?")
		args = append(args, f.Band)
	}
	if f.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, f.Mode)
	}
	if f.Grid != "" {
		clauses = append(clauses, "grid = ?")
		args = append(args, f.Grid)
	}

	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY start_at DESC, id DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}
	return query, args
}

// Search returns the records matching f, newest first.
func (s *Store) Search(ctx context.Context, f Filter) ([]models.QSO, error) {
	var out []models.QSO
	err := s.Iterate(ctx, f, func(q models.QSO) error {
		out = append(out, q)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Iterate streams the records matching f to fn, newest first, without
// materializing the full result. A non-nil error from fn stops the
// iteration and is returned unchanged.
func (s *Store) Iterate(ctx context.Context, f Filter, fn func(models.QSO) error) error {
	query, args := f.build()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "query records")
	}
	defer rows.Close()

	for rows.Next() {
		q, err := scanQSO(rows)
		if err != nil {
			return err
		}
		if err := fn(q); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "iterate records")
	}
	return nil
}

// Get returns one record by id; found is false when it does not exist.
func (s *Store) Get(ctx context.Context, id int64) (models.QSO, bool, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" WHERE id = ?", id)
	if err != nil {
		return models.QSO{}, false, qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "query record")
	}
	defer rows.Close()

	if !rows.Next() {
		return models.QSO{}, false, rows.Err()
	}
	q, err := scanQSO(rows)
	if err != nil {
		return models.QSO{}, false, err
	}
	return q, true, nil
}

// Count returns the total number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM qsos").Scan(&n); err != nil {
		return 0, qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "count records")
	}
	return n, nil
}

// Delete removes one record by id, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM qsos WHERE id = ?", id)
	if err != nil {
		return false, qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "delete record")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "delete record")
	}
	return n > 0, nil
}

func scanQSO(rows *sql.Rows) (models.QSO, error) {
	var (
		q       models.QSO
		startAt string
		band    sql.NullString
		mode    sql.NullString
		freq    sql.NullFloat64
		rstSent sql.NullString
		rstRcvd sql.NullString
		name    sql.NullString
		qth     sql.NullString
		grid    sql.NullString
		country sql.NullString
		comment sql.NullString
	)
	if err := rows.Scan(&q.ID, &q.Call, &startAt, &band, &mode, &freq,
		&rstSent, &rstRcvd, &name, &qth, &grid, &country, &comment); err != nil {
		return models.QSO{}, qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "scan record")
	}

	ts, err := time.Parse(time.RFC3339, startAt)
	if err != nil {
		return models.QSO{}, qsoerrors.Wrap(err, qsoerrors.ErrorTypeStorage, "parse stored start_at").
			WithDetail("value", startAt)
	}
	q.StartAt = ts.UTC()
	q.Band = band.String
	q.Mode = mode.String
	q.FreqMHz = freq.Float64
	q.RSTSent = rstSent.String
	q.RSTRcvd = rstRcvd.String
	q.Name = name.String
	q.QTH = qth.String
	q.Grid = grid.String
	q.Country = country.String
	q.Comment = comment.String
	return q, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
