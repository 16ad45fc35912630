// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"github.com/dataverse/atlan-migration/pkg/constants"
	"github.com/samber/lo"
)

// AddMembersRequest is the body of the Atlan group members endpoint
type AddMembersRequest struct {
	Users []string `json:"users"`
}

// Member is a single entry of a membersMod payload
type Member struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// MembersModPayload is the body of the Rover membersMod endpoint.
// Both lists are always present in JSON, empty lists are written as [].
type MembersModPayload struct {
	Additions []Member `json:"additions"`
	Deletions []Member `json:"deletions"`
}

// NewMembersModPayload builds a membersMod payload of user members
func NewMembersModPayload(additions, deletions []string) MembersModPayload {
	toMembers := func(ids []string) []Member {
		return lo.Map(ids, func(id string, _ int) Member {
			return Member{Type: constants.MemberTypeUser, ID: id}
		})
	}

	return MembersModPayload{
		Additions: toMembers(additions),
		Deletions: toMembers(deletions),
	}
}
