// Package wire provides dependency injection for the qc application.
// A Container builds services lazily for one CLI invocation and owns the
// database connection they share.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"

	cliadapter "github.com/example/qc/internal/adapters/cli"
	"github.com/example/qc/internal/adapters/pdf"
	"github.com/example/qc/internal/adapters/s3"
	"github.com/example/qc/internal/adapters/sendgrid"
	"github.com/example/qc/internal/adapters/sqlite"
	"github.com/example/qc/internal/adapters/xlsx"
	"github.com/example/qc/internal/app"
	"github.com/example/qc/internal/config"
	"github.com/example/qc/internal/db"
	"github.com/example/qc/internal/ports/secondary"
)

// Container holds the configuration and shared resources of one invocation.
type Container struct {
	cfg    *config.Config
	logger *slog.Logger

	once     sync.Once
	database *sql.DB
	dbErr    error
}

// New creates a Container. Nothing is opened until a service needs it.
func New(cfg *config.Config, logger *slog.Logger) *Container {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Container{cfg: cfg, logger: logger}
}

// Config returns the configuration the container was built with.
func (c *Container) Config() *config.Config {
	return c.cfg
}

// DB opens the SQLite file on first use.
func (c *Container) DB() (*sql.DB, error) {
	c.once.Do(func() {
		c.database, c.dbErr = db.Open(c.cfg.DBPath)
		if c.dbErr == nil {
			c.logger.Debug("database opened", "path", c.cfg.DBPath)
		}
	})
	return c.database, c.dbErr
}

// Close releases the database connection if one was opened.
func (c *Container) Close() error {
	if c.database == nil {
		return nil
	}
	return c.database.Close()
}

// EnsureSchema creates the qc_log table if needed.
func (c *Container) EnsureSchema(ctx context.Context) error {
	database, err := c.DB()
	if err != nil {
		return err
	}
	return db.EnsureSchema(ctx, database)
}

// QCLogAdapter returns a QCLogAdapter writing to out.
func (c *Container) QCLogAdapter(out io.Writer) (*cliadapter.QCLogAdapter, error) {
	database, err := c.DB()
	if err != nil {
		return nil, err
	}
	service := app.NewQCLogService(sqlite.NewQCLogRepository(database), xlsx.NewExporter())
	return cliadapter.NewQCLogAdapter(service, out), nil
}

// SyncAdapter returns a SyncAdapter writing to out.
// The forecasting app owns Forecast_Log; a database without it is rejected.
func (c *Container) SyncAdapter(ctx context.Context, out io.Writer) (*cliadapter.SyncAdapter, error) {
	database, err := c.DB()
	if err != nil {
		return nil, err
	}
	exists, err := db.TableExists(ctx, database, db.ForecastTable)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%s table not found in %s", db.ForecastTable, c.cfg.DBPath)
	}

	service := app.NewForecastSyncService(
		sqlite.NewQCLogRepository(database),
		sqlite.NewForecastRepository(database),
		c.logger,
	)
	return cliadapter.NewSyncAdapter(service, out), nil
}

// SubmissionAdapter returns a SubmissionAdapter wired for the full
// render, email, archive and log flow. Mail settings must be complete.
func (c *Container) SubmissionAdapter(ctx context.Context, out io.Writer) (*cliadapter.SubmissionAdapter, error) {
	if err := c.cfg.ValidateMail(); err != nil {
		return nil, err
	}
	database, err := c.DB()
	if err != nil {
		return nil, err
	}

	archive, err := c.archive(ctx)
	if err != nil {
		return nil, err
	}

	service := app.NewSubmissionService(app.SubmissionDeps{
		Renderer:  pdf.NewRenderer(),
		Mailer:    sendgrid.NewMailer(c.cfg.SendGrid.APIKey, c.cfg.SendGrid.FromEmail),
		Archive:   archive,
		QCLog:     sqlite.NewQCLogRepository(database),
		Recipient: c.cfg.SendGrid.ToEmail,
		Logger:    c.logger,
	})
	return cliadapter.NewSubmissionAdapter(service, out), nil
}

// PreviewAdapter returns a SubmissionAdapter that can only render reports.
// It needs neither the database nor mail settings.
func (c *Container) PreviewAdapter(out io.Writer) *cliadapter.SubmissionAdapter {
	service := app.NewSubmissionService(app.SubmissionDeps{
		Renderer: pdf.NewRenderer(),
		Logger:   c.logger,
	})
	return cliadapter.NewSubmissionAdapter(service, out)
}

func (c *Container) archive(ctx context.Context) (secondary.ReportArchive, error) {
	if !c.cfg.Archive.Enabled() {
		return nil, nil
	}
	a, err := s3.New(ctx, s3.Config{
		Region:    c.cfg.Archive.Region,
		Bucket:    c.cfg.Archive.Bucket,
		Endpoint:  c.cfg.Archive.Endpoint,
		PathStyle: c.cfg.Archive.PathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure report archive: %w", err)
	}
	return a, nil
}
