// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package config builds the migrator configuration from the environment.
package config

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"slices"
	"time"

	"github.com/dataverse/atlan-migration/pkg/constants"
	"github.com/dataverse/atlan-migration/pkg/errors"
	"github.com/dataverse/atlan-migration/pkg/jwt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AtlanConfig holds the primary platform settings
type AtlanConfig struct {
	BaseURL  string `env:"ATLAN_BASE_URL,required,notEmpty"`
	APIKey   string `env:"ATLAN_API_KEY,required,notEmpty"`
	PageSize int    `env:"ATLAN_PAGE_SIZE" envDefault:"100"`
}

// RoverConfig holds the secondary service settings. BaseURL is optional,
// without it the Rover step is skipped.
type RoverConfig struct {
	BaseURL      string `env:"ATLAN_ROVER_URL"`
	Token        string `env:"ROVER_TOKEN"`
	ClientID     string `env:"ROVER_CLIENT_ID"`
	ClientSecret string `env:"ROVER_CLIENT_SECRET"`
	TokenURL     string `env:"ROVER_TOKEN_URL"`
	StrictErrors bool   `env:"ROVER_STRICT_ERRORS" envDefault:"false"`
}

// MigrationConfig holds the batching settings
type MigrationConfig struct {
	BatchSize  int           `env:"MIGRATION_BATCH_SIZE" envDefault:"20"`
	BatchDelay time.Duration `env:"MIGRATION_BATCH_DELAY" envDefault:"5s"`
}

// SnapshotConfig selects and configures the snapshot store
type SnapshotConfig struct {
	StoreType          string `env:"SNAPSHOT_STORE_TYPE" envDefault:"file"`
	Dir                string `env:"SNAPSHOT_DIR" envDefault:"."`
	KVBucket           string `env:"SNAPSHOT_KV_BUCKET" envDefault:"atlan-snapshots"`
	ConfigMapName      string `env:"SNAPSHOT_CONFIGMAP_NAME" envDefault:"atlan-snapshots"`
	ConfigMapNamespace string `env:"SNAPSHOT_CONFIGMAP_NAMESPACE" envDefault:"default"`
}

// NATSConfig holds the NATS connection settings used by the nats snapshot store
type NATSConfig struct {
	URL           string        `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	Timeout       time.Duration `env:"NATS_TIMEOUT" envDefault:"10s"`
	MaxReconnect  int           `env:"NATS_MAX_RECONNECT" envDefault:"3"`
	ReconnectWait time.Duration `env:"NATS_RECONNECT_WAIT" envDefault:"2s"`
}

// Config is the whole migrator configuration, built once at startup
type Config struct {
	Atlan     AtlanConfig
	Rover     RoverConfig
	Migration MigrationConfig
	Snapshot  SnapshotConfig
	NATS      NATSConfig

	DirectoryType string        `env:"DIRECTORY_TYPE" envDefault:"atlan"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
}

// RoverToken returns the static Rover token, the Atlan API key when none is set
func (c *Config) RoverToken() string {
	if c.Rover.Token != "" {
		return c.Rover.Token
	}
	return c.Atlan.APIKey
}

func validateURL(name, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return errors.NewValidation(fmt.Sprintf("%s is not a valid URL", name), err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.NewValidation(fmt.Sprintf("%s must be an http or https URL", name))
	}
	if parsed.Host == "" {
		return errors.NewValidation(fmt.Sprintf("%s has no host", name))
	}
	return nil
}

// Validate checks the values the environment parser cannot check
func (c *Config) Validate() error {
	if err := validateURL("ATLAN_BASE_URL", c.Atlan.BaseURL); err != nil {
		return err
	}
	if c.Rover.BaseURL != "" {
		if err := validateURL("ATLAN_ROVER_URL", c.Rover.BaseURL); err != nil {
			return err
		}
	}

	if c.Atlan.PageSize < 1 {
		return errors.NewValidation("ATLAN_PAGE_SIZE must be greater than zero")
	}
	if c.Migration.BatchSize < 1 {
		return errors.NewValidation("MIGRATION_BATCH_SIZE must be greater than zero")
	}
	if c.Migration.BatchDelay < 0 {
		return errors.NewValidation("MIGRATION_BATCH_DELAY must not be negative")
	}
	if c.HTTPTimeout <= 0 {
		return errors.NewValidation("HTTP_TIMEOUT must be greater than zero")
	}

	if !slices.Contains([]string{constants.DirectoryTypeAtlan, constants.DirectoryTypeMock}, c.DirectoryType) {
		return errors.NewValidation(fmt.Sprintf("unsupported DIRECTORY_TYPE %q", c.DirectoryType))
	}

	storeTypes := []string{
		constants.SnapshotStoreTypeFile,
		constants.SnapshotStoreTypeNATS,
		constants.SnapshotStoreTypeConfigMap,
	}
	if !slices.Contains(storeTypes, c.Snapshot.StoreType) {
		return errors.NewValidation(fmt.Sprintf("unsupported SNAPSHOT_STORE_TYPE %q", c.Snapshot.StoreType))
	}

	return nil
}

func parse(ctx context.Context, opts env.Options, now func() time.Time) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.NewValidation("invalid configuration", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	claims, err := jwt.InspectAPIKey(ctx, cfg.Atlan.APIKey, now)
	if err != nil {
		return nil, errors.NewValidation("ATLAN_API_KEY is not usable", err)
	}
	if claims != nil {
		slog.InfoContext(ctx, "Atlan API key inspected",
			"subject", claims.Subject,
			"username", claims.Username,
			"expires_at", claims.ExpiresAt,
		)
	}

	return cfg, nil
}

// Load reads an optional .env file, then builds and validates the configuration
// from the process environment. Variables already set take precedence over .env.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewValidation("failed to read .env file", err)
		}
		slog.DebugContext(ctx, "no .env file found, using the process environment")
	}

	return parse(ctx, env.Options{}, time.Now)
}
