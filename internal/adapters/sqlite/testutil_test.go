// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// qc_log is loaded from db.GetSchemaSQL() so tests run against the authoritative
// schema. Forecast_Log belongs to the forecasting app; forecastLogSQL below is the
// subset of its columns this tool touches, and is the only table tests declare.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/qc/internal/db"
)

const forecastLogSQL = `
CREATE TABLE Forecast_Log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project TEXT,
	builder TEXT,
	lot_number TEXT,
	forecast_install TEXT,
	actual_install TEXT
)`

// setupTestDB creates an in-memory database with qc_log and Forecast_Log.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// every connection to :memory: is a fresh database
	testDB.SetMaxOpenConns(1)

	if _, err = testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	if _, err = testDB.Exec(forecastLogSQL); err != nil {
		t.Fatalf("failed to create Forecast_Log: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedForecast inserts a forecast row. A nil actualInstall stores NULL.
func seedForecast(t *testing.T, db *sql.DB, project, builder, lot string, actualInstall *string) int64 {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO Forecast_Log (project, builder, lot_number, forecast_install, actual_install) VALUES (?, ?, ?, '2025-09-01', ?)",
		project, builder, lot, actualInstall,
	)
	if err != nil {
		t.Fatalf("failed to seed forecast: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// actualInstall reads back a forecast row's actual_install.
func actualInstall(t *testing.T, db *sql.DB, id int64) sql.NullString {
	t.Helper()
	var v sql.NullString
	if err := db.QueryRow("SELECT actual_install FROM Forecast_Log WHERE id = ?", id).Scan(&v); err != nil {
		t.Fatalf("failed to read forecast row: %v", err)
	}
	return v
}

func strPtr(s string) *string { return &s }
