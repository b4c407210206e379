package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_candidates",
		SQL: `CREATE TABLE IF NOT EXISTS candidates (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id    TEXT        NOT NULL,
  user_id      TEXT        NOT NULL,
  traject_id   TEXT        NOT NULL DEFAULT '',
  status_phase TEXT        NOT NULL DEFAULT 'intake',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_candidates_tenant",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_candidates_tenant_id ON candidates (tenant_id);`,
	},
	{
		Name: "create_table_indicator_coverage",
		SQL: `CREATE TABLE IF NOT EXISTS indicator_coverage (
  candidate_id UUID        NOT NULL REFERENCES candidates (id),
  indicator_id TEXT        NOT NULL,
  covered      BOOLEAN     NOT NULL DEFAULT FALSE,
  evidence_ids JSONB       NOT NULL DEFAULT '[]',
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (candidate_id, indicator_id)
);`,
	},
	{
		Name: "create_table_evidence_items",
		SQL: `CREATE TABLE IF NOT EXISTS evidence_items (
  id                      UUID             PRIMARY KEY,
  tenant_id               TEXT             NOT NULL,
  candidate_id            UUID             NOT NULL REFERENCES candidates (id),
  uploaded_by_user_id     TEXT             NOT NULL,
  media_kind              TEXT             NOT NULL,
  storage_path            TEXT             NOT NULL DEFAULT '',
  description             TEXT             NOT NULL DEFAULT '',
  extracted_text          TEXT,
  mapped_indicators       JSONB            NOT NULL DEFAULT '[]',
  ai_generated_likelihood DOUBLE PRECISION NOT NULL DEFAULT 0,
  fraud_flags             JSONB            NOT NULL DEFAULT '[]',
  created_at              TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_evidence_candidate",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_evidence_items_candidate_id ON evidence_items (candidate_id);`,
	},
	{
		Name: "create_table_audit_log",
		SQL: `CREATE TABLE IF NOT EXISTS audit_log (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id   TEXT        NOT NULL,
  actor_id    TEXT        NOT NULL,
  action      TEXT        NOT NULL,
  target_type TEXT        NOT NULL,
  target_id   TEXT        NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_audit_log_tenant_created",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_audit_log_tenant_created ON audit_log (tenant_id, created_at);`,
	},
	{
		Name: "create_table_assessment_sessions",
		SQL: `CREATE TABLE IF NOT EXISTS assessment_sessions (
  id          UUID        PRIMARY KEY,
  tenant_id   TEXT        NOT NULL,
  candidate_id UUID       NOT NULL REFERENCES candidates (id),
  assessor_id TEXT        NOT NULL,
  notes       JSONB       NOT NULL DEFAULT '[]',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (tenant_id, candidate_id, assessor_id)
);`,
	},
}

// EnsureMigrated checks if the 'candidates' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.candidates') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
