package store

import (
	"database/sql"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"github.com/phm-tools/rulkit/core/report"
)

// SQLiteStore persists run summaries in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS run_summaries (
        run_id TEXT,
        model TEXT,
        started INTEGER,
        folds INTEGER,
        lives INTEGER,
        skipped INTEGER,
        mae REAL,
        rmse REAL,
        PRIMARY KEY(run_id, model)
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Add inserts the record, replacing any earlier summary of the same run
// and model.
func (s *SQLiteStore) Add(r report.Record) error {
	_, err := s.db.Exec(`INSERT INTO run_summaries (run_id, model, started, folds, lives, skipped, mae, rmse)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(run_id, model) DO UPDATE SET
            started = excluded.started,
            folds = excluded.folds,
            lives = excluded.lives,
            skipped = excluded.skipped,
            mae = excluded.mae,
            rmse = excluded.rmse`,
		r.RunID, r.Model, r.Started.Unix(), r.Folds, r.Lives, r.Skipped, r.MAE, r.RMSE)
	return err
}

// Query returns records started at or after since, oldest first. An empty
// model matches every model and a zero since matches every record.
func (s *SQLiteStore) Query(model string, since time.Time) ([]report.Record, error) {
	query := `SELECT run_id, model, started, folds, lives, skipped, mae, rmse
        FROM run_summaries WHERE 1=1`
	var args []any
	if model != "" {
		query += ` AND model = ?`
		args = append(args, model)
	}
	if !since.IsZero() {
		query += ` AND started >= ?`
		args = append(args, since.Unix())
	}
	query += ` ORDER BY started, model`
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []report.Record
	for rows.Next() {
		var r report.Record
		var ts int64
		// SQLite stores NaN aggregates as NULL.
		var mae, rmse sql.NullFloat64
		if err := rows.Scan(&r.RunID, &r.Model, &ts, &r.Folds, &r.Lives, &r.Skipped, &mae, &rmse); err != nil {
			return nil, err
		}
		r.Started = time.Unix(ts, 0).UTC()
		r.MAE, r.RMSE = math.NaN(), math.NaN()
		if mae.Valid {
			r.MAE = mae.Float64
		}
		if rmse.Valid {
			r.RMSE = rmse.Float64
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
