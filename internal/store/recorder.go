package store

import (
	"context"
	"log/slog"
	"strings"
)

// OpenRecorder picks the provenance backend from the DSN: postgres URLs get
// the pool-backed recorder, anything else is treated as a SQLite path. An
// empty DSN disables provenance recording.
func OpenRecorder(ctx context.Context, dsn string, logger *slog.Logger) (Recorder, error) {
	switch {
	case dsn == "":
		return NopRecorder{}, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return OpenPostgres(ctx, PostgresConfig{DSN: dsn}, logger)
	default:
		return OpenSQLite(dsn, logger)
	}
}
