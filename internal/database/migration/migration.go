package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"propertyapi/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is checked before any step runs; when present the schema is current.
const sentinelTable = "public.listing_documents"

var steps = []migrationStep{
	{
		Name: "create_table_listing_documents",
		SQL: `CREATE TABLE IF NOT EXISTS listing_documents (
  name       TEXT        PRIMARY KEY,
  body       JSONB       NOT NULL DEFAULT '[]'::jsonb CHECK (jsonb_typeof(body) = 'array'),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_listing_documents_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_listing_documents_updated_at ON listing_documents (updated_at);`,
	},
}

// EnsureMigrated creates the listing document table when it does not exist yet.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logging.Logger, dbHost string) error {
	start := time.Now()
	base := func(extra map[string]any) map[string]any {
		f := map[string]any{"component": "database", "db_host": dbHost}
		for k, v := range extra {
			f[k] = v
		}
		return f
	}

	log.Info("db_migration_check", base(map[string]any{"status": "starting"}))

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists)
	if err != nil {
		log.Error("db_migration_failed", err, base(map[string]any{
			"status":      "error",
			"duration_ms": time.Since(start).Milliseconds(),
		}))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip", base(map[string]any{
			"status":      "success",
			"duration_ms": time.Since(start).Milliseconds(),
		}))
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed", err, base(map[string]any{
				"status":           "error",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}))
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step", base(map[string]any{
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}))
	}

	log.Info("db_migration_success", base(map[string]any{
		"status":      "success",
		"duration_ms": time.Since(start).Milliseconds(),
	}))

	return nil
}
