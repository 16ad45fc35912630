// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import "context"

// SnapshotStore persists named snapshots as JSON documents.
//
// Save overwrites any previous snapshot with the same name. Load returns a
// NotFound error when the snapshot does not exist and an Unexpected error
// when it cannot be parsed.
type SnapshotStore interface {
	Save(ctx context.Context, name string, data any) error
	Load(ctx context.Context, name string, into any) error
}
