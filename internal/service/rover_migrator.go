// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dataverse/atlan-migration/internal/domain/model"
	"github.com/dataverse/atlan-migration/internal/domain/port"
	"github.com/dataverse/atlan-migration/pkg/errors"
)

const operationRoverMigrate = "rover_migrate"

// RoverMigrator defines the behavior of the secondary service migrator
type RoverMigrator interface {
	Migrate(ctx context.Context, groupName, usersSnapshot string) model.Result
}

// roverMigrator adds every cached username to a Rover group in a single call.
//
// Unless strict, the outcome of the call never fails the operation: the
// error is logged and kept as the result reason only.
type roverMigrator struct {
	store    port.SnapshotStore
	modifier port.MembersModifier
	strict   bool
}

// roverMigratorOption defines the option for the rover migrator
type roverMigratorOption func(*roverMigrator)

// WithSnapshotStoreForRover sets the store the users snapshot is read from
func WithSnapshotStoreForRover(store port.SnapshotStore) roverMigratorOption {
	return func(r *roverMigrator) {
		r.store = store
	}
}

// WithMembersModifier sets the Rover client, nil when Rover is not configured
func WithMembersModifier(modifier port.MembersModifier) roverMigratorOption {
	return func(r *roverMigrator) {
		r.modifier = modifier
	}
}

// WithStrictErrors makes Rover failures fail the operation
func WithStrictErrors(strict bool) roverMigratorOption {
	return func(r *roverMigrator) {
		r.strict = strict
	}
}

func (r *roverMigrator) tolerate(ctx context.Context, reason error, status model.ResultStatus) model.Result {
	if r.strict {
		return model.Result{
			Operation: operationRoverMigrate,
			Status:    status,
			Failed:    1,
			Reason:    reason,
		}
	}

	slog.WarnContext(ctx, "rover failure tolerated, reporting success", "error", reason)
	return model.Result{
		Operation: operationRoverMigrate,
		Status:    model.ResultSucceeded,
		Failed:    1,
		Reason:    reason,
	}
}

// Migrate sends one membersMod request adding every username of the snapshot
func (r *roverMigrator) Migrate(ctx context.Context, groupName, usersSnapshot string) model.Result {
	users := model.NewSnapshot[model.UserRecord]()
	if err := r.store.Load(ctx, usersSnapshot, users); err != nil {
		slog.ErrorContext(ctx, "failed to load users snapshot", "snapshot", usersSnapshot, "error", err)
		return r.tolerate(ctx, err, model.ResultAborted)
	}

	usernames := users.Keys()
	slog.InfoContext(ctx, "adding users to rover group",
		"group", groupName,
		"users", len(usernames),
	)

	if r.modifier == nil {
		return r.tolerate(ctx, errors.NewValidation("Rover URL is not configured"), model.ResultAborted)
	}

	payload := model.NewMembersModPayload(usernames, nil)
	slog.DebugContext(ctx, "rover payload",
		"additions", len(payload.Additions),
		"deletions", len(payload.Deletions),
	)

	status, err := r.modifier.ModifyMembers(ctx, groupName, payload)
	if status != http.StatusOK {
		if err == nil {
			err = errors.NewUnexpected("rover returned an unexpected status")
		}
		slog.ErrorContext(ctx, "failed to add users to rover group",
			"group", groupName,
			"status_code", status,
			"error", err,
		)
		return r.tolerate(ctx, err, model.ResultFailed)
	}

	slog.InfoContext(ctx, "added users to rover group",
		"group", groupName,
		"users", len(usernames),
	)
	return model.Result{
		Operation:  operationRoverMigrate,
		Status:     model.ResultSucceeded,
		Successful: 1,
	}
}

// NewRoverMigrator creates a new rover migrator
func NewRoverMigrator(opts ...roverMigratorOption) RoverMigrator {
	r := &roverMigrator{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
