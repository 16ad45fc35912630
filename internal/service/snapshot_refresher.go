// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/dataverse/atlan-migration/internal/domain/model"
	"github.com/dataverse/atlan-migration/internal/domain/port"
	"github.com/dataverse/atlan-migration/pkg/constants"
	"github.com/dataverse/atlan-migration/pkg/errors"
)

// SnapshotRefresher defines the behavior of the snapshot refresher
type SnapshotRefresher interface {
	RefreshUsers(ctx context.Context) (int, error)
	RefreshGroups(ctx context.Context) (int, error)
}

// snapshotRefresher replaces the cached snapshots with a fresh directory listing
type snapshotRefresher struct {
	directory port.DirectoryReader
	store     port.SnapshotStore
}

// snapshotRefresherOption defines the option for the snapshot refresher
type snapshotRefresherOption func(*snapshotRefresher)

// WithDirectoryReader sets the directory the snapshots are built from
func WithDirectoryReader(directory port.DirectoryReader) snapshotRefresherOption {
	return func(r *snapshotRefresher) {
		r.directory = directory
	}
}

// WithSnapshotStoreForRefresher sets the store the snapshots are written to
func WithSnapshotStoreForRefresher(store port.SnapshotStore) snapshotRefresherOption {
	return func(r *snapshotRefresher) {
		r.store = store
	}
}

// RefreshUsers lists every user and overwrites the users snapshot
func (r *snapshotRefresher) RefreshUsers(ctx context.Context) (int, error) {
	users, err := r.directory.ListUsers(ctx)
	if err != nil {
		return 0, errors.NewUnexpected("failed to list users", err)
	}

	snapshot := model.NewUserSnapshot(users)
	if err := r.store.Save(ctx, constants.UsersSnapshotName, snapshot); err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "updated users snapshot",
		"snapshot", constants.UsersSnapshotName,
		"users", snapshot.Len(),
	)
	return snapshot.Len(), nil
}

// RefreshGroups lists every group and overwrites the groups snapshot
func (r *snapshotRefresher) RefreshGroups(ctx context.Context) (int, error) {
	groups, err := r.directory.ListGroups(ctx)
	if err != nil {
		return 0, errors.NewUnexpected("failed to list groups", err)
	}

	snapshot := model.NewGroupSnapshot(groups)
	if err := r.store.Save(ctx, constants.GroupsSnapshotName, snapshot); err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "updated groups snapshot",
		"snapshot", constants.GroupsSnapshotName,
		"groups", snapshot.Len(),
	)
	return snapshot.Len(), nil
}

// NewSnapshotRefresher creates a new snapshot refresher
func NewSnapshotRefresher(opts ...snapshotRefresherOption) SnapshotRefresher {
	r := &snapshotRefresher{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
