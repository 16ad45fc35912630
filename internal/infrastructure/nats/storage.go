// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/dataverse/atlan-migration/internal/domain/port"
	"github.com/dataverse/atlan-migration/internal/infrastructure/snapshot"
	"github.com/dataverse/atlan-migration/pkg/errors"

	"github.com/nats-io/nats.go/jetstream"
)

// keyValue is the part of jetstream.KeyValue used by the snapshot store
type keyValue interface {
	Put(ctx context.Context, key string, value []byte) (uint64, error)
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
}

// kvSnapshotStore keeps each snapshot as one KV entry keyed by snapshot name
type kvSnapshotStore struct {
	kv keyValue
}

func (s *kvSnapshotStore) Save(ctx context.Context, name string, data any) error {
	encoded, err := snapshot.Encode(name, data)
	if err != nil {
		return err
	}

	revision, err := s.kv.Put(ctx, name, encoded)
	if err != nil {
		slog.ErrorContext(ctx, "failed to put snapshot in NATS KV", "name", name, "error", err)
		return errors.NewUnexpected("failed to put snapshot "+name+" in NATS KV", err)
	}

	slog.DebugContext(ctx, "snapshot stored in NATS KV",
		"name", name,
		"revision", revision,
		"bytes", len(encoded),
	)
	return nil
}

func (s *kvSnapshotStore) Load(ctx context.Context, name string, into any) error {
	entry, err := s.kv.Get(ctx, name)
	if err != nil {
		if stderrors.Is(err, jetstream.ErrKeyNotFound) {
			return errors.NewNotFound("snapshot "+name+" not found", err)
		}
		return errors.NewUnexpected("failed to get snapshot "+name+" from NATS KV", err)
	}

	return snapshot.Decode(name, entry.Value(), into)
}

// NewSnapshotStore creates a SnapshotStore backed by the given KV bucket
func NewSnapshotStore(ctx context.Context, client *NATSClient, bucket string) (port.SnapshotStore, error) {
	if err := client.IsReady(ctx); err != nil {
		return nil, err
	}

	kv, err := client.KeyValue(ctx, bucket)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "created NATS snapshot store", "bucket", bucket)

	return &kvSnapshotStore{kv: kv}, nil
}
