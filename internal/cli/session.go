package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/qc/internal/config"
	"github.com/example/qc/internal/wire"
)

// Persistent flag names shared by every command.
const (
	flagVerbose = "verbose"
	flagDB      = "db"
)

// AddGlobalFlags registers the flags every qc command understands.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().BoolP(flagVerbose, "v", false, "Log diagnostic detail to stderr")
	root.PersistentFlags().String(flagDB, "", "Path to the shared SQLite file (overrides "+config.EnvDBPath+")")
}

// openContainer loads configuration from the working directory and applies
// command-line overrides. The caller must Close the container.
func openContainer(cmd *cobra.Command) (*wire.Container, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath, _ := cmd.Flags().GetString(flagDB); dbPath != "" {
		cfg.DBPath = dbPath
	}

	return wire.New(cfg, newLogger(cmd)), nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool(flagVerbose); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// withContainer runs fn with a container and closes it afterwards.
func withContainer(cmd *cobra.Command, fn func(c *wire.Container) error) error {
	c, err := openContainer(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}
