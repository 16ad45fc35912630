// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dataverse/atlan-migration/internal/domain/model"
	"github.com/dataverse/atlan-migration/internal/domain/port"
	"github.com/dataverse/atlan-migration/pkg/constants"
	"github.com/dataverse/atlan-migration/pkg/errors"

	"github.com/samber/lo"
)

const operationBatchDispatch = "atlan_batch_dispatch"

// Sleeper pauses between two batches
type Sleeper func(ctx context.Context, d time.Duration)

// BatchDispatcher defines the behavior of the batch dispatcher
type BatchDispatcher interface {
	Dispatch(ctx context.Context, groupName, usersSnapshot string) model.Result
	DispatchUserIDs(ctx context.Context, groupID string, userIDs []string) model.Result
}

// batchDispatcher adds users to a primary platform group, one batch per request
type batchDispatcher struct {
	store     port.SnapshotStore
	writer    port.GroupMemberWriter
	batchSize int
	delay     time.Duration
	sleep     Sleeper
}

// batchDispatcherOption defines the option for the batch dispatcher
type batchDispatcherOption func(*batchDispatcher)

// WithSnapshotStoreForDispatcher sets the store the snapshots are read from
func WithSnapshotStoreForDispatcher(store port.SnapshotStore) batchDispatcherOption {
	return func(d *batchDispatcher) {
		d.store = store
	}
}

// WithGroupMemberWriter sets the membership endpoint client
func WithGroupMemberWriter(writer port.GroupMemberWriter) batchDispatcherOption {
	return func(d *batchDispatcher) {
		d.writer = writer
	}
}

// WithBatchSize sets the maximum number of users per request, values below 1 are ignored
func WithBatchSize(size int) batchDispatcherOption {
	return func(d *batchDispatcher) {
		if size > 0 {
			d.batchSize = size
		}
	}
}

// WithBatchDelay sets the pause between two requests
func WithBatchDelay(delay time.Duration) batchDispatcherOption {
	return func(d *batchDispatcher) {
		if delay >= 0 {
			d.delay = delay
		}
	}
}

// WithSleeper replaces the function used to pause between requests
func WithSleeper(sleep Sleeper) batchDispatcherOption {
	return func(d *batchDispatcher) {
		if sleep != nil {
			d.sleep = sleep
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Dispatch adds every user of the snapshot to the named group.
//
// The group is looked up in the groups snapshot first; when it is missing
// or a snapshot cannot be read the operation is aborted before any request.
func (d *batchDispatcher) Dispatch(ctx context.Context, groupName, usersSnapshot string) model.Result {
	groups := model.NewSnapshot[model.GroupRecord]()
	if err := d.store.Load(ctx, constants.GroupsSnapshotName, groups); err != nil {
		slog.ErrorContext(ctx, "failed to load groups snapshot", "error", err)
		return model.NewAbortedResult(operationBatchDispatch, err)
	}

	group, found := groups.Get(groupName)
	if !found {
		slog.ErrorContext(ctx, "group not found in groups snapshot", "group", groupName)
		return model.NewAbortedResult(operationBatchDispatch,
			errors.NewNotFound(fmt.Sprintf("group %s not found in groups", groupName)))
	}

	slog.InfoContext(ctx, "adding users to group",
		"group", groupName,
		"group_id", group.GroupID,
	)

	users := model.NewSnapshot[model.UserRecord]()
	if err := d.store.Load(ctx, usersSnapshot, users); err != nil {
		slog.ErrorContext(ctx, "failed to load users snapshot", "snapshot", usersSnapshot, "error", err)
		return model.NewAbortedResult(operationBatchDispatch, err)
	}

	return d.DispatchUserIDs(ctx, group.GroupID, model.UserIDs(users))
}

// DispatchUserIDs adds the users to the group in consecutive batches.
//
// A batch succeeds only on a 200 response. Failed batches are logged and
// counted, the remaining batches are still sent.
func (d *batchDispatcher) DispatchUserIDs(ctx context.Context, groupID string, userIDs []string) model.Result {
	batches := lo.Chunk(userIDs, d.batchSize)

	slog.InfoContext(ctx, "dispatching users",
		"group_id", groupID,
		"users", len(userIDs),
		"batches", len(batches),
		"batch_size", d.batchSize,
	)

	var (
		successful int
		failed     int
		causes     []error
	)

	for i, batch := range batches {
		batchNum := i + 1
		slog.InfoContext(ctx, "processing batch", "batch", batchNum, "users", len(batch))

		status, err := d.writer.AddGroupMembers(ctx, groupID, batch)
		if status == http.StatusOK {
			slog.InfoContext(ctx, "batch successful", "batch", batchNum, "users", len(batch))
			successful++
		} else {
			if err == nil {
				err = errors.NewUnexpected(fmt.Sprintf("unexpected status %d", status))
			}
			slog.ErrorContext(ctx, "batch failed",
				"batch", batchNum,
				"status_code", status,
				"error", err,
			)
			causes = append(causes, fmt.Errorf("batch %d: %w", batchNum, err))
			failed++
		}

		if batchNum < len(batches) {
			slog.InfoContext(ctx, "waiting before next batch", "delay", d.delay)
			d.sleep(ctx, d.delay)
		}
	}

	slog.InfoContext(ctx, "batch dispatch completed",
		"successful", successful,
		"failed", failed,
	)

	var reason error
	if failed > 0 {
		reason = errors.NewUnexpected(fmt.Sprintf("%d of %d batches failed", failed, len(batches)), causes...)
	}
	return model.NewBatchResult(operationBatchDispatch, successful, failed, reason)
}

// NewBatchDispatcher creates a new batch dispatcher
func NewBatchDispatcher(opts ...batchDispatcherOption) BatchDispatcher {
	d := &batchDispatcher{
		batchSize: constants.DefaultBatchSize,
		delay:     constants.DefaultBatchDelay,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
