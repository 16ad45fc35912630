// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dataverse/atlan-migration/cmd/migrator/service"
	"github.com/dataverse/atlan-migration/internal/config"
	"github.com/dataverse/atlan-migration/pkg/constants"

	logging "github.com/dataverse/atlan-migration/pkg/log"

	"github.com/google/uuid"
)

func init() {
	// slog is the standard library logger, we use it to log errors and
	// progress as JSON lines on stdout
	logging.InitStructureLogConfig()
}

func main() {
	os.Exit(run())
}

func run() int {
	// SIGINT/SIGTERM cancel the context, an in-progress batch delay returns early
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = logging.AppendCtx(ctx, slog.String("run_id", uuid.NewString()))

	slog.InfoContext(ctx, "starting migration", "service", constants.ServiceName)

	cfg, err := config.Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "invalid configuration", "error", err)
		return 1
	}
	// .env may have set LOG_LEVEL or LOG_ADD_SOURCE
	logging.InitStructureLogConfig()

	slog.InfoContext(ctx, "configuration loaded",
		"directory_type", cfg.DirectoryType,
		"snapshot_store_type", cfg.Snapshot.StoreType,
		"batch_size", cfg.Migration.BatchSize,
		"batch_delay", cfg.Migration.BatchDelay,
		"rover_configured", cfg.Rover.BaseURL != "",
	)

	migration, cleanup := service.NewMigration(ctx, cfg)
	defer cleanup()

	report, err := migration.Run(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "migration aborted", "error", err)
		return 1
	}

	if !report.Succeeded() {
		return 1
	}
	return 0
}
