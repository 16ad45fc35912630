// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/dataverse/atlan-migration/internal/domain/model"
	"github.com/dataverse/atlan-migration/pkg/errors"

	"github.com/nats-io/nats.go/jetstream"
)

type fakeEntry struct {
	jetstream.KeyValueEntry
	value []byte
}

func (e fakeEntry) Value() []byte { return e.value }

type fakeKeyValue struct {
	data   map[string][]byte
	putErr error
}

func (f *fakeKeyValue) Put(ctx context.Context, key string, value []byte) (uint64, error) {
	if f.putErr != nil {
		return 0, f.putErr
	}
	f.data[key] = value
	return uint64(len(f.data)), nil
}

func (f *fakeKeyValue) Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error) {
	value, ok := f.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}
	return fakeEntry{value: value}, nil
}

func TestKVSnapshotStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := &fakeKeyValue{data: map[string][]byte{}}
	store := &kvSnapshotStore{kv: kv}

	groups := model.NewGroupSnapshot([]*model.Group{
		{ID: "g-2", Name: "data_users", Alias: "Data Users", Roles: []string{"r-1"}},
		{ID: "g-1", Name: "admins"},
	})

	if err := store.Save(ctx, "atlan_groups", groups); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, ok := kv.data["atlan_groups"]; !ok {
		t.Fatal("expected atlan_groups key in KV")
	}

	loaded := model.NewSnapshot[model.GroupRecord]()
	if err := store.Load(ctx, "atlan_groups", loaded); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded.Keys(), []string{"data_users", "admins"}) {
		t.Errorf("Keys() = %v", loaded.Keys())
	}
	if !reflect.DeepEqual(loaded.Values(), groups.Values()) {
		t.Errorf("Values() = %+v, want %+v", loaded.Values(), groups.Values())
	}
}

func TestKVSnapshotStore_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key is NotFound", func(t *testing.T) {
		store := &kvSnapshotStore{kv: &fakeKeyValue{data: map[string][]byte{}}}
		err := store.Load(ctx, "atlan_users", model.NewSnapshot[model.UserRecord]())
		var notFound errors.NotFound
		if !stderrors.As(err, &notFound) {
			t.Errorf("Load() error = %v (%T), want NotFound", err, err)
		}
	})

	t.Run("malformed value is Unexpected", func(t *testing.T) {
		store := &kvSnapshotStore{kv: &fakeKeyValue{data: map[string][]byte{"atlan_users": []byte("[1,2")}}}
		err := store.Load(ctx, "atlan_users", model.NewSnapshot[model.UserRecord]())
		var unexpected errors.Unexpected
		if !stderrors.As(err, &unexpected) {
			t.Errorf("Load() error = %v (%T), want Unexpected", err, err)
		}
	})

	t.Run("put failure is Unexpected", func(t *testing.T) {
		store := &kvSnapshotStore{kv: &fakeKeyValue{data: map[string][]byte{}, putErr: stderrors.New("no responders")}}
		err := store.Save(ctx, "atlan_users", model.NewSnapshot[model.UserRecord]())
		var unexpected errors.Unexpected
		if !stderrors.As(err, &unexpected) {
			t.Errorf("Save() error = %v (%T), want Unexpected", err, err)
		}
	})
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	var validation errors.Validation
	if !stderrors.As(err, &validation) {
		t.Errorf("NewClient() error = %v (%T), want Validation", err, err)
	}
}
