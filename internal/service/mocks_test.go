// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"
	"time"

	"github.com/dataverse/atlan-migration/internal/domain/model"
	"github.com/dataverse/atlan-migration/internal/domain/port"
	"github.com/dataverse/atlan-migration/internal/infrastructure/snapshot"
	"github.com/dataverse/atlan-migration/pkg/constants"

	"github.com/spf13/afero"
)

// mockDirectoryReader is a mock implementation of port.DirectoryReader for testing
type mockDirectoryReader struct {
	listUsersFunc  func(ctx context.Context) ([]*model.User, error)
	listGroupsFunc func(ctx context.Context) ([]*model.Group, error)
}

func (m *mockDirectoryReader) ListUsers(ctx context.Context) ([]*model.User, error) {
	if m.listUsersFunc != nil {
		return m.listUsersFunc(ctx)
	}
	return nil, nil
}

func (m *mockDirectoryReader) ListGroups(ctx context.Context) ([]*model.Group, error) {
	if m.listGroupsFunc != nil {
		return m.listGroupsFunc(ctx)
	}
	return nil, nil
}

// mockGroupMemberWriter records every batch it receives
type mockGroupMemberWriter struct {
	addGroupMembersFunc func(ctx context.Context, groupID string, userIDs []string) (int, error)
	calls               [][]string
}

func (m *mockGroupMemberWriter) AddGroupMembers(ctx context.Context, groupID string, userIDs []string) (int, error) {
	m.calls = append(m.calls, userIDs)
	if m.addGroupMembersFunc != nil {
		return m.addGroupMembersFunc(ctx, groupID, userIDs)
	}
	return 200, nil
}

// mockMembersModifier records every payload it receives
type mockMembersModifier struct {
	modifyMembersFunc func(ctx context.Context, groupName string, payload model.MembersModPayload) (int, error)
	payloads          []model.MembersModPayload
}

func (m *mockMembersModifier) ModifyMembers(ctx context.Context, groupName string, payload model.MembersModPayload) (int, error) {
	m.payloads = append(m.payloads, payload)
	if m.modifyMembersFunc != nil {
		return m.modifyMembersFunc(ctx, groupName, payload)
	}
	return 200, nil
}

// countingSleeper counts the pauses instead of sleeping
type countingSleeper struct {
	delays []time.Duration
}

func (s *countingSleeper) sleep(_ context.Context, d time.Duration) {
	s.delays = append(s.delays, d)
}

func newMemoryStore(t *testing.T) port.SnapshotStore {
	t.Helper()
	return snapshot.NewFileStore(afero.NewMemMapFs(), "")
}

func seedUsers(t *testing.T, store port.SnapshotStore, users ...*model.User) {
	t.Helper()
	if err := store.Save(context.Background(), constants.UsersSnapshotName, model.NewUserSnapshot(users)); err != nil {
		t.Fatalf("failed to seed users snapshot: %v", err)
	}
}

func seedGroups(t *testing.T, store port.SnapshotStore, groups ...*model.Group) {
	t.Helper()
	if err := store.Save(context.Background(), constants.GroupsSnapshotName, model.NewGroupSnapshot(groups)); err != nil {
		t.Fatalf("failed to seed groups snapshot: %v", err)
	}
}
