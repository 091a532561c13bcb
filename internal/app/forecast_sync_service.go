package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/qc/internal/core/forecast"
	"github.com/example/qc/internal/ports/primary"
	"github.com/example/qc/internal/ports/secondary"
)

// ForecastSyncServiceImpl implements the ForecastSyncService interface.
type ForecastSyncServiceImpl struct {
	qcLog    secondary.QCLogRepository
	forecast secondary.ForecastRepository
	logger   *slog.Logger
}

// NewForecastSyncService creates a new ForecastSyncService with injected dependencies.
func NewForecastSyncService(qcLog secondary.QCLogRepository, forecastRepo secondary.ForecastRepository, logger *slog.Logger) *ForecastSyncServiceImpl {
	return &ForecastSyncServiceImpl{
		qcLog:    qcLog,
		forecast: forecastRepo,
		logger:   loggerOrDiscard(logger),
	}
}

// Reconcile copies QC install dates into matching Forecast_Log rows.
//
// Each row is its own statement with no surrounding transaction, so an
// interrupted run leaves earlier rows applied and can simply be re-run.
// On a storage error the partial result is returned along with the error.
func (s *ForecastSyncServiceImpl) Reconcile(ctx context.Context) (*primary.SyncResponse, error) {
	records, err := s.qcLog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read qc log: %w", err)
	}

	entries := make([]forecast.Entry, len(records))
	for i, r := range records {
		entries[i] = forecast.Entry{
			Key:         forecast.Key{Project: r.Project, Builder: r.Builder, LotNumber: r.LotNumber},
			InstallDate: r.InstallDate,
		}
	}
	candidates := forecast.Candidates(entries)

	result := forecast.Result{Scanned: len(records), Candidates: len(candidates)}
	for _, e := range candidates {
		key := secondary.ForecastKey{Project: e.Key.Project, Builder: e.Key.Builder, LotNumber: e.Key.LotNumber}
		n, err := s.forecast.SetActualInstall(ctx, key, e.InstallDate)
		if err != nil {
			return toSyncResponse(result), err
		}
		result.Record(n)
		if n > 0 {
			s.logger.Debug("forecast updated",
				"project", key.Project, "builder", key.Builder, "lot", key.LotNumber,
				"actual_install", e.InstallDate, "rows", n)
		}
	}

	s.logger.Info("forecast sync complete",
		"scanned", result.Scanned, "candidates", result.Candidates, "updated", result.Updated)
	return toSyncResponse(result), nil
}

func toSyncResponse(r forecast.Result) *primary.SyncResponse {
	return &primary.SyncResponse{
		Scanned:           r.Scanned,
		Candidates:        r.Candidates,
		Updated:           r.Updated,
		ForecastRowsWrote: r.RowsWrote,
	}
}

// Ensure ForecastSyncServiceImpl implements the interface.
var _ primary.ForecastSyncService = (*ForecastSyncServiceImpl)(nil)
