package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS extractions (
	id BIGSERIAL PRIMARY KEY,
	original_filename TEXT NOT NULL,
	output_filename TEXT NOT NULL,
	file_type TEXT NOT NULL,
	status TEXT NOT NULL,
	error_message TEXT,
	fields INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_original ON extractions(original_filename);
`

// PostgresConfig tunes the connection pool.
type PostgresConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	DialTimeout     time.Duration
}

// PostgresRecorder keeps provenance in a shared Postgres database.
type PostgresRecorder struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// OpenPostgres creates the pool, applies the schema, and pings to catch DSN
// issues early.
func OpenPostgres(ctx context.Context, cfg PostgresConfig, logger *slog.Logger) (*PostgresRecorder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "propdoc"

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("store.postgres.open", "max_conns", pc.MaxConns)
	return &PostgresRecorder{pool: pool, logger: logger}, nil
}

func (r *PostgresRecorder) Record(ctx context.Context, p Provenance) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO extractions
		 (original_filename, output_filename, file_type, status, error_message, fields, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.OriginalFilename, p.OutputFilename, p.FileType, p.Status, p.ErrorMessage,
		p.Fields, p.CreatedAt)
	return err
}

func (r *PostgresRecorder) Close() error {
	r.pool.Close()
	return nil
}
