// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package atlan

import (
	"github.com/dataverse/atlan-migration/internal/domain/model"
)

// listResponse is the envelope of the Atlan service list endpoints
type listResponse[T any] struct {
	TotalRecord  int `json:"totalRecord"`
	FilterRecord int `json:"filterRecord"`
	Records      []T `json:"records"`
}

// AtlanPersona is the persona summary embedded in a user
type AtlanPersona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// AtlanUser represents a user returned by /api/service/users
type AtlanUser struct {
	ID         string         `json:"id"`
	Username   string         `json:"username"`
	Email      string         `json:"email"`
	FirstName  string         `json:"firstName"`
	LastName   string         `json:"lastName"`
	Enabled    bool           `json:"enabled"`
	Roles      []string       `json:"roles"`
	Personas   []AtlanPersona `json:"personas"`
	GroupCount int            `json:"groupCount"`
}

// AtlanGroupAttributes holds the Keycloak attributes of a group, every value is a list
type AtlanGroupAttributes struct {
	Alias []string `json:"alias"`
}

// AtlanGroup represents a group returned by /api/service/groups
type AtlanGroup struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Alias      string               `json:"alias"`
	Path       string               `json:"path"`
	Roles      []string             `json:"roles"`
	Attributes AtlanGroupAttributes `json:"attributes"`
}

// ToUser converts an AtlanUser to a User
func (u *AtlanUser) ToUser() *model.User {
	personas := make([]string, 0, len(u.Personas))
	for _, persona := range u.Personas {
		personas = append(personas, persona.ID)
	}

	user := &model.User{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Roles:      u.Roles,
		Personas:   personas,
		GroupCount: u.GroupCount,
	}
	user.UserSanitize()
	return user
}

// ToGroup converts an AtlanGroup to a Group
func (g *AtlanGroup) ToGroup() *model.Group {
	alias := g.Alias
	if alias == "" && len(g.Attributes.Alias) > 0 {
		alias = g.Attributes.Alias[0]
	}

	group := &model.Group{
		ID:    g.ID,
		Name:  g.Name,
		Alias: alias,
		Path:  g.Path,
		Roles: g.Roles,
	}
	group.GroupSanitize()
	return group
}
