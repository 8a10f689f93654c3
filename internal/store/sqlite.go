package store

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// Schema for the provenance table. Applied by OpenSQLite; safe to re-run.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS extractions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	original_filename TEXT NOT NULL,
	output_filename TEXT NOT NULL,
	file_type TEXT NOT NULL,
	status TEXT NOT NULL,
	error_message TEXT,
	fields INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_original ON extractions(original_filename);
CREATE INDEX IF NOT EXISTS idx_extractions_status ON extractions(status) WHERE status != 'success';
`

// SQLiteRecorder keeps provenance in an embedded SQLite database. Suits the
// single-binary CLI deployment; Postgres covers the shared-server case.
type SQLiteRecorder struct {
	db     *sql.DB
	logger *slog.Logger
}

func OpenSQLite(path string, logger *slog.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("store.sqlite.open", "path", path)
	return &SQLiteRecorder{db: db, logger: logger}, nil
}

func (r *SQLiteRecorder) Record(ctx context.Context, p Provenance) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extractions
		 (original_filename, output_filename, file_type, status, error_message, fields, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.OriginalFilename, p.OutputFilename, p.FileType, p.Status, p.ErrorMessage,
		p.Fields, p.CreatedAt.Unix())
	return err
}

// Recent returns the newest n provenance rows, newest first.
func (r *SQLiteRecorder) Recent(ctx context.Context, n int) ([]Provenance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT original_filename, output_filename, file_type, status,
		        COALESCE(error_message, ''), fields, created_at
		 FROM extractions ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Provenance
	for rows.Next() {
		var p Provenance
		var ts int64
		if err := rows.Scan(&p.OriginalFilename, &p.OutputFilename, &p.FileType,
			&p.Status, &p.ErrorMessage, &p.Fields, &ts); err != nil {
			return nil, err
		}
		p.CreatedAt = timeFromUnix(ts)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

func timeFromUnix(ts int64) time.Time {
	return time.Unix(ts, 0).UTC()
}
