// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dataverse/atlan-migration/internal/domain/model"

	"gopkg.in/yaml.v3"
)

//go:embed directory.yaml
var directoryYAML []byte

// DirectoryData represents the structure for YAML file
type DirectoryData struct {
	Users  []model.User  `yaml:"users"`
	Groups []model.Group `yaml:"groups"`
}

// Directory is an in-memory directory and membership backend used to
// rehearse a migration without touching Atlan or Rover
type Directory struct {
	users  []*model.User
	groups []*model.Group

	// members keeps what was added per group id (Atlan) or group name (Rover)
	members map[string][]string
}

// loadDirectoryFromYAML loads users and groups from a YAML document
func loadDirectoryFromYAML(ctx context.Context, data []byte) (*DirectoryData, error) {
	var directory DirectoryData
	if err := yaml.Unmarshal(data, &directory); err != nil {
		slog.ErrorContext(ctx, "failed to unmarshal YAML directory", "error", err)
		return nil, fmt.Errorf("failed to unmarshal YAML directory: %w", err)
	}

	slog.InfoContext(ctx, "loaded directory from YAML",
		"users", len(directory.Users),
		"groups", len(directory.Groups),
	)
	return &directory, nil
}

// ListUsers returns the fixture users
func (d *Directory) ListUsers(ctx context.Context) ([]*model.User, error) {
	slog.InfoContext(ctx, "mock: listing users", "count", len(d.users))
	return d.users, nil
}

// ListGroups returns the fixture groups
func (d *Directory) ListGroups(ctx context.Context) ([]*model.Group, error) {
	slog.InfoContext(ctx, "mock: listing groups", "count", len(d.groups))
	return d.groups, nil
}

// AddGroupMembers records the users and always answers 200
func (d *Directory) AddGroupMembers(ctx context.Context, groupID string, userIDs []string) (int, error) {
	slog.InfoContext(ctx, "mock: adding group members", "group_id", groupID, "count", len(userIDs))
	d.members[groupID] = append(d.members[groupID], userIDs...)
	return http.StatusOK, nil
}

// ModifyMembers records the additions and always answers 200
func (d *Directory) ModifyMembers(ctx context.Context, groupName string, payload model.MembersModPayload) (int, error) {
	slog.InfoContext(ctx, "mock: modifying members",
		"group", groupName,
		"additions", len(payload.Additions),
		"deletions", len(payload.Deletions),
	)
	for _, member := range payload.Additions {
		d.members[groupName] = append(d.members[groupName], member.ID)
	}
	return http.StatusOK, nil
}

// Members returns what was added to a group so far
func (d *Directory) Members(key string) []string {
	return d.members[key]
}

func newDirectory(ctx context.Context, data []byte) (*Directory, error) {
	directory, err := loadDirectoryFromYAML(ctx, data)
	if err != nil {
		return nil, err
	}

	d := &Directory{
		members: make(map[string][]string),
	}
	for i := range directory.Users {
		d.users = append(d.users, &directory.Users[i])
	}
	for i := range directory.Groups {
		d.groups = append(d.groups, &directory.Groups[i])
	}
	return d, nil
}

// NewDirectory creates a mock Directory with the embedded YAML file as the data source
func NewDirectory(ctx context.Context) (*Directory, error) {
	return newDirectory(ctx, directoryYAML)
}
