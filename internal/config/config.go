package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultDBPath is the SQLite file shared with the forecasting app.
const DefaultDBPath = "forecast.db"

// Environment variable names recognised by Load.
const (
	EnvDBPath          = "QC_DB_PATH"
	EnvFromEmail       = "QC_SENDGRID_FROM_EMAIL"
	EnvAPIKey          = "QC_SENDGRID_API_KEY"
	EnvToEmail         = "QC_SENDGRID_TO_EMAIL"
	EnvArchiveBucket   = "QC_ARCHIVE_S3_BUCKET"
	EnvArchiveRegion   = "QC_ARCHIVE_S3_REGION"
	EnvArchiveEndpoint = "QC_ARCHIVE_S3_ENDPOINT"
	EnvArchivePath     = "QC_ARCHIVE_S3_PATH_STYLE"
)

// Config is the explicit configuration handed to adapters at startup.
type Config struct {
	Version  string         `json:"version,omitempty"`
	DBPath   string         `json:"db_path,omitempty"`
	SendGrid SendGridConfig `json:"sendgrid"`
	Archive  ArchiveConfig  `json:"archive"`
}

// SendGridConfig holds the delivery-provider settings.
type SendGridConfig struct {
	FromEmail string `json:"from_email,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
	ToEmail   string `json:"to_email,omitempty"`
}

// ArchiveConfig configures the optional S3 report archive.
// An empty Bucket disables archiving.
type ArchiveConfig struct {
	Bucket    string `json:"bucket,omitempty"`
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"` // MinIO or other S3-compatible endpoint
	PathStyle bool   `json:"path_style,omitempty"`
}

// Enabled reports whether a bucket has been configured.
func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// Load builds the configuration for the given working directory.
// Resolution order (later wins): .qc/config.json, .env, process environment.
// Missing files are not an error.
func Load(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	envPath := filepath.Join(dir, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
	}

	cfg.applyEnv()
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	return cfg, nil
}

// LoadConfig reads .qc/config.json from the specified directory.
// The returned error wraps os.ErrNotExist when the file is absent.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".qc", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	qcDir := filepath.Join(dir, ".qc")
	if err := os.MkdirAll(qcDir, 0755); err != nil {
		return fmt.Errorf("failed to create .qc dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(qcDir, "config.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	setIfPresent(&c.DBPath, EnvDBPath)
	setIfPresent(&c.SendGrid.FromEmail, EnvFromEmail)
	setIfPresent(&c.SendGrid.APIKey, EnvAPIKey)
	setIfPresent(&c.SendGrid.ToEmail, EnvToEmail)
	setIfPresent(&c.Archive.Bucket, EnvArchiveBucket)
	setIfPresent(&c.Archive.Region, EnvArchiveRegion)
	setIfPresent(&c.Archive.Endpoint, EnvArchiveEndpoint)
	if v, ok := os.LookupEnv(EnvArchivePath); ok {
		c.Archive.PathStyle = strings.EqualFold(v, "true")
	}
}

func setIfPresent(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// ValidateMail checks that every option needed to email a report is present.
// All missing options are reported together.
func (c *Config) ValidateMail() error {
	var missing []string
	if c.SendGrid.FromEmail == "" {
		missing = append(missing, "sendgrid.from_email ("+EnvFromEmail+")")
	}
	if c.SendGrid.APIKey == "" {
		missing = append(missing, "sendgrid.api_key ("+EnvAPIKey+")")
	}
	if c.SendGrid.ToEmail == "" {
		missing = append(missing, "sendgrid.to_email ("+EnvToEmail+")")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing mail configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
