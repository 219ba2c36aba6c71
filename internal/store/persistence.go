package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-record-sync/internal/logger"
)

// NewLocalPersistence opens the backend selected by dsn:
//   - "", "memory" or ":memory:" keep everything in memory;
//   - a path ending in ".json", optionally prefixed with "file://", is an
//     in-memory store snapshotted to that file;
//   - "postgres://" and "postgresql://" URLs open PostgreSQL through pgx;
//   - anything else is the path of a SQLite database file.
//
// SQL backends are migrated before use.
func NewLocalPersistence(ctx context.Context, dsn string, log *logger.Logger) (LocalPersistence, error) {
	log.Info().Str("func", "NewLocalPersistence").Msg("opening local persistence...")

	switch {
	case dsn == "" || dsn == "memory" || dsn == ":memory:":
		return NewMemoryPersistence("")
	case strings.HasSuffix(dsn, ".json"):
		return NewMemoryPersistence(strings.TrimPrefix(dsn, "file://"))
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		db, err := NewConnectPostgres(ctx, dsn, log)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		return migrated(db, log)
	case strings.Contains(dsn, "://"):
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
	default:
		db, err := NewConnectSQLite(ctx, strings.TrimPrefix(dsn, "file:"), log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		return migrated(db, log)
	}
}

func migrated(db *DB, log *logger.Logger) (LocalPersistence, error) {
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return NewSQLPersistence(db, log), nil
}
