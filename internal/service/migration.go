// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/dataverse/atlan-migration/internal/domain/model"
	"github.com/dataverse/atlan-migration/pkg/constants"
)

// Report summarizes a migration run
type Report struct {
	Users  int
	Groups int
	Atlan  model.Result
	Rover  model.Result
}

// Succeeded reports whether both migrations succeeded
func (r Report) Succeeded() bool {
	return r.Atlan.Succeeded() && r.Rover.Succeeded()
}

// Migration defines the behavior of the full migration pipeline
type Migration interface {
	Run(ctx context.Context) (Report, error)
}

// migrationOrchestrator runs the fixed pipeline: refresh snapshots,
// migrate into the Atlan group, migrate into the Rover group
type migrationOrchestrator struct {
	refresher  SnapshotRefresher
	dispatcher BatchDispatcher
	rover      RoverMigrator

	atlanGroup string
	roverGroup string
}

// migrationOrchestratorOption defines the option for the migration orchestrator
type migrationOrchestratorOption func(*migrationOrchestrator)

// WithSnapshotRefresher sets the snapshot refresher
func WithSnapshotRefresher(refresher SnapshotRefresher) migrationOrchestratorOption {
	return func(m *migrationOrchestrator) {
		m.refresher = refresher
	}
}

// WithBatchDispatcher sets the Atlan batch dispatcher
func WithBatchDispatcher(dispatcher BatchDispatcher) migrationOrchestratorOption {
	return func(m *migrationOrchestrator) {
		m.dispatcher = dispatcher
	}
}

// WithRoverMigrator sets the Rover migrator
func WithRoverMigrator(rover RoverMigrator) migrationOrchestratorOption {
	return func(m *migrationOrchestrator) {
		m.rover = rover
	}
}

// Run executes the pipeline. An error is returned only when a snapshot
// could not be refreshed, the outcome of each migration is in the report.
func (m *migrationOrchestrator) Run(ctx context.Context) (Report, error) {
	var report Report

	users, err := m.refresher.RefreshUsers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to refresh users snapshot", "error", err)
		return report, err
	}
	report.Users = users

	groups, err := m.refresher.RefreshGroups(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to refresh groups snapshot", "error", err)
		return report, err
	}
	report.Groups = groups

	report.Atlan = m.dispatcher.Dispatch(ctx, m.atlanGroup, constants.UsersSnapshotName)
	slog.InfoContext(ctx, "atlan group migration finished", "result", report.Atlan.String())

	report.Rover = m.rover.Migrate(ctx, m.roverGroup, constants.UsersSnapshotName)
	slog.InfoContext(ctx, "rover group migration finished", "result", report.Rover.String())

	if report.Succeeded() {
		slog.InfoContext(ctx, "migration completed successfully")
	} else {
		slog.WarnContext(ctx, "migration completed with some failures",
			"atlan_status", report.Atlan.Status,
			"atlan_retryable", report.Atlan.Retryable(),
			"rover_status", report.Rover.Status,
		)
	}

	return report, nil
}

// NewMigrationOrchestrator creates a new migration orchestrator targeting the fixed groups
func NewMigrationOrchestrator(opts ...migrationOrchestratorOption) Migration {
	m := &migrationOrchestrator{
		atlanGroup: constants.AtlanTargetGroup,
		roverGroup: constants.RoverTargetGroup,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
