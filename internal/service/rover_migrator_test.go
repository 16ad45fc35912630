// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/dataverse/atlan-migration/internal/domain/model"
	"github.com/dataverse/atlan-migration/internal/domain/port"
	"github.com/dataverse/atlan-migration/pkg/constants"
	"github.com/dataverse/atlan-migration/pkg/errors"
)

func TestRoverMigratorMigrate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		seed       bool
		modifier   func() *mockMembersModifier
		strict     bool
		wantStatus model.ResultStatus
		wantReason bool
		wantCalls  int
	}{
		{
			name:       "successful call",
			seed:       true,
			modifier:   func() *mockMembersModifier { return &mockMembersModifier{} },
			wantStatus: model.ResultSucceeded,
			wantCalls:  1,
		},
		{
			name: "failed call is tolerated",
			seed: true,
			modifier: func() *mockMembersModifier {
				return &mockMembersModifier{
					modifyMembersFunc: func(context.Context, string, model.MembersModPayload) (int, error) {
						return http.StatusBadGateway, errors.NewServiceUnavailable("bad gateway")
					},
				}
			},
			wantStatus: model.ResultSucceeded,
			wantReason: true,
			wantCalls:  1,
		},
		{
			name: "failed call fails when strict",
			seed: true,
			modifier: func() *mockMembersModifier {
				return &mockMembersModifier{
					modifyMembersFunc: func(context.Context, string, model.MembersModPayload) (int, error) {
						return -1, errors.NewUnexpected("connection refused")
					},
				}
			},
			strict:     true,
			wantStatus: model.ResultFailed,
			wantReason: true,
			wantCalls:  1,
		},
		{
			name:       "missing snapshot is tolerated",
			modifier:   func() *mockMembersModifier { return &mockMembersModifier{} },
			wantStatus: model.ResultSucceeded,
			wantReason: true,
		},
		{
			name:       "missing snapshot aborts when strict",
			modifier:   func() *mockMembersModifier { return &mockMembersModifier{} },
			strict:     true,
			wantStatus: model.ResultAborted,
			wantReason: true,
		},
		{
			name:       "rover not configured is tolerated",
			seed:       true,
			wantStatus: model.ResultSucceeded,
			wantReason: true,
		},
		{
			name:       "rover not configured aborts when strict",
			seed:       true,
			strict:     true,
			wantStatus: model.ResultAborted,
			wantReason: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore(t)
			if tt.seed {
				seedUsers(t, store,
					&model.User{ID: "id-1", Username: "u1"},
					&model.User{ID: "id-2", Username: "u2"},
				)
			}

			opts := []roverMigratorOption{
				WithSnapshotStoreForRover(store),
				WithStrictErrors(tt.strict),
			}
			var modifier *mockMembersModifier
			if tt.modifier != nil {
				modifier = tt.modifier()
				opts = append(opts, WithMembersModifier(port.MembersModifier(modifier)))
			}

			result := NewRoverMigrator(opts...).Migrate(ctx, constants.RoverTargetGroup, constants.UsersSnapshotName)

			if result.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (%s)", result.Status, tt.wantStatus, result)
			}
			if (result.Reason != nil) != tt.wantReason {
				t.Errorf("Reason = %v, wantReason %v", result.Reason, tt.wantReason)
			}

			calls := 0
			if modifier != nil {
				calls = len(modifier.payloads)
			}
			if calls != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if calls == 0 {
				return
			}

			payload := modifier.payloads[0]
			if len(payload.Additions) != 2 || payload.Additions[0].ID != "u1" || payload.Additions[1].ID != "u2" {
				t.Errorf("additions = %+v, want usernames u1, u2", payload.Additions)
			}
			for _, member := range payload.Additions {
				if member.Type != constants.MemberTypeUser {
					t.Errorf("member type = %q, want %q", member.Type, constants.MemberTypeUser)
				}
			}
			if payload.Deletions == nil || len(payload.Deletions) != 0 {
				t.Errorf("deletions = %#v, want empty non-nil", payload.Deletions)
			}
		})
	}
}
