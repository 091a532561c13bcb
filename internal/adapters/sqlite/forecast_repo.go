package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/qc/internal/ports/secondary"
)

// ForecastRepository implements secondary.ForecastRepository against the
// forecasting app's Forecast_Log table.
type ForecastRepository struct {
	db *sql.DB
}

// NewForecastRepository creates a new SQLite forecast repository.
func NewForecastRepository(db *sql.DB) *ForecastRepository {
	return &ForecastRepository{db: db}
}

// SetActualInstall updates actual_install on rows matching key when it is null or stale.
func (r *ForecastRepository) SetActualInstall(ctx context.Context, key secondary.ForecastKey, installDate string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE Forecast_Log
		SET actual_install = ?
		WHERE project = ? AND builder = ? AND lot_number = ?
		  AND (actual_install IS NULL OR actual_install != ?)`,
		installDate, key.Project, key.Builder, key.LotNumber, installDate,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update forecast for %s/%s/%s: %w", key.Project, key.Builder, key.LotNumber, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// Ensure ForecastRepository implements the interface
var _ secondary.ForecastRepository = (*ForecastRepository)(nil)
