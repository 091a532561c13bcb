package db

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaSQL is the schema of the tables owned by this tool.
//
// Only qc_log lives here. Forecast_Log sits in the same file but belongs to the
// forecasting app; this tool never creates or alters it.
//
// All statements are idempotent so EnsureSchema can run on every invocation.
// Tests load this via GetSchemaSQL() rather than declaring their own qc_log.
const SchemaSQL = `
-- QC submissions (append-only; duplicates are re-inspections)
CREATE TABLE IF NOT EXISTS qc_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project TEXT NOT NULL,
	builder TEXT NOT NULL,
	lot_number TEXT NOT NULL,
	install_date TEXT NOT NULL,
	submitted_by TEXT,
	timestamp TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_qc_log_key ON qc_log(project, builder, lot_number);
`

// ForecastTable is the name of the externally owned forecasting table.
const ForecastTable = "Forecast_Log"

// EnsureSchema creates the qc_log table if it is absent.
func EnsureSchema(ctx context.Context, database *sql.DB) error {
	if _, err := database.ExecContext(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("failed to create qc_log schema: %w", err)
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
