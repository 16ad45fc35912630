// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "strings"

// Group represents a group as listed by the directory
type Group struct {
	ID    string   `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	Alias string   `json:"alias" yaml:"alias"`
	Path  string   `json:"path" yaml:"path"`
	Roles []string `json:"roles" yaml:"roles"`
}

// GroupRecord is the cached form of a group, keyed by group name in the groups snapshot
type GroupRecord struct {
	GroupID  string   `json:"group_id"`
	Alias    string   `json:"group_alias"`
	Personas []string `json:"group_personas"`
}

// GroupSnapshot maps group name to group record, in directory order
type GroupSnapshot = Snapshot[GroupRecord]

// GroupSanitize sanitizes the group data by cleaning up string fields
func (g *Group) GroupSanitize() {
	g.ID = strings.TrimSpace(g.ID)
	g.Name = strings.TrimSpace(g.Name)
	g.Alias = strings.TrimSpace(g.Alias)
}

// ToRecord converts a Group to the record stored in the groups snapshot
func (g *Group) ToRecord() GroupRecord {
	return GroupRecord{
		GroupID:  g.ID,
		Alias:    g.Alias,
		Personas: nonNil(g.Roles),
	}
}

// NewGroupSnapshot builds the groups snapshot
func NewGroupSnapshot(groups []*Group) *GroupSnapshot {
	snapshot := NewSnapshot[GroupRecord]()
	for _, group := range groups {
		if group == nil || group.Name == "" {
			continue
		}
		snapshot.Set(group.Name, group.ToRecord())
	}
	return snapshot
}
