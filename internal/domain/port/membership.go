// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/dataverse/atlan-migration/internal/domain/model"
)

// GroupMemberWriter adds users to a group of the primary platform.
//
// It returns the HTTP status code of the call (-1 when no response was
// received); the caller decides what counts as success.
type GroupMemberWriter interface {
	AddGroupMembers(ctx context.Context, groupID string, userIDs []string) (int, error)
}

// MembersModifier sends a membersMod request to the secondary service
type MembersModifier interface {
	ModifyMembers(ctx context.Context, groupName string, payload model.MembersModPayload) (int, error)
}
