// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"strings"
)

// User represents a user as listed by the directory
type User struct {
	ID         string   `json:"id" yaml:"id"`
	Username   string   `json:"username" yaml:"username"`
	Email      string   `json:"email" yaml:"email"`
	Roles      []string `json:"roles" yaml:"roles"`
	Personas   []string `json:"personas" yaml:"personas"`
	GroupCount int      `json:"group_count" yaml:"group_count"`
}

// UserRecord is the cached form of a user, keyed by username in the users snapshot
type UserRecord struct {
	UserID     string   `json:"user_id"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
	Personas   []string `json:"personas"`
	GroupCount int      `json:"groups"`
}

// UserSnapshot maps username to user record, in directory order
type UserSnapshot = Snapshot[UserRecord]

// UserSanitize sanitizes the user data by cleaning up string fields
func (u *User) UserSanitize() {
	u.ID = strings.TrimSpace(u.ID)
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.TrimSpace(u.Email)
}

// ToRecord converts a User to the record stored in the users snapshot
func (u *User) ToRecord() UserRecord {
	return UserRecord{
		UserID:     u.ID,
		Email:      u.Email,
		Roles:      nonNil(u.Roles),
		Personas:   nonNil(u.Personas),
		GroupCount: u.GroupCount,
	}
}

// NewUserSnapshot builds the users snapshot; a later duplicate username
// replaces the earlier record but keeps its position
func NewUserSnapshot(users []*User) *UserSnapshot {
	snapshot := NewSnapshot[UserRecord]()
	for _, user := range users {
		if user == nil || user.Username == "" {
			continue
		}
		snapshot.Set(user.Username, user.ToRecord())
	}
	return snapshot
}

// UserIDs returns the user ids of the snapshot in snapshot order
func UserIDs(snapshot *UserSnapshot) []string {
	records := snapshot.Values()
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.UserID)
	}
	return ids
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
