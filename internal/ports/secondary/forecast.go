package secondary

import "context"

// ForecastKey is the composite key of a Forecast_Log row.
type ForecastKey struct {
	Project   string
	Builder   string
	LotNumber string
}

// ForecastRepository is the narrow port onto the externally owned Forecast_Log table.
// It can only write actual_install, and only for rows matching the key.
type ForecastRepository interface {
	// SetActualInstall sets actual_install on every row matching key whose value is
	// null or differs from installDate. Returns the number of rows changed.
	SetActualInstall(ctx context.Context, key ForecastKey, installDate string) (int64, error)
}
