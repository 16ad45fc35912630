// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package atlan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/dataverse/atlan-migration/pkg/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func staticToken(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}

func usersPage(offset, limit, total int) listResponse[AtlanUser] {
	page := listResponse[AtlanUser]{TotalRecord: total, FilterRecord: total}
	for i := offset; i < offset+limit && i < total; i++ {
		page.Records = append(page.Records, AtlanUser{
			ID:         fmt.Sprintf("id-%d", i),
			Username:   fmt.Sprintf("user%d", i),
			Email:      fmt.Sprintf("user%d@example.com", i),
			Roles:      []string{"$member"},
			Personas:   []AtlanPersona{{ID: "p-" + strconv.Itoa(i), Name: "persona"}},
			GroupCount: i % 3,
		})
	}
	return page
}

func TestDirectoryReader_ListUsers(t *testing.T) {
	ctx := context.Background()

	var offsets []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, usersPath, r.URL.Path)
		assert.Equal(t, "Bearer api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "username", r.URL.Query().Get("sort"))

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offsets = append(offsets, r.URL.Query().Get("offset"))

		json.NewEncoder(w).Encode(usersPage(offset, limit, 5))
	}))
	defer server.Close()

	reader, err := NewDirectoryReader(httpclient.NewClient(httpclient.DefaultConfig()), staticToken("api-key"), Config{
		BaseURL:  server.URL + "/",
		PageSize: 2,
	})
	require.NoError(t, err)

	users, err := reader.ListUsers(ctx)
	require.NoError(t, err)

	require.Len(t, users, 5)
	assert.Equal(t, []string{"0", "2", "4"}, offsets)
	assert.Equal(t, "user0", users[0].Username)
	assert.Equal(t, "id-4", users[4].ID)
	assert.Equal(t, []string{"p-4"}, users[4].Personas)
	assert.Equal(t, 1, users[4].GroupCount)
}

func TestDirectoryReader_ListUsers_ExactPageBoundary(t *testing.T) {
	ctx := context.Background()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(usersPage(offset, limit, 4))
	}))
	defer server.Close()

	reader, err := NewDirectoryReader(httpclient.NewClient(httpclient.DefaultConfig()), staticToken("api-key"), Config{
		BaseURL:  server.URL,
		PageSize: 2,
	})
	require.NoError(t, err)

	users, err := reader.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)
	assert.Equal(t, 2, calls, "total reached, no extra empty page should be requested")
}

func TestDirectoryReader_ListGroups(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, groupsPath, r.URL.Path)
		assert.Equal(t, "createdAt", r.URL.Query().Get("sort"))
		assert.Equal(t, []string{"roles", "path"}, r.URL.Query()["columns"])

		json.NewEncoder(w).Encode(listResponse[AtlanGroup]{
			TotalRecord: 2,
			Records: []AtlanGroup{
				{ID: "g-1", Name: "data_users", Alias: "Data Users", Path: "/data_users", Roles: []string{"r-1"}},
				{ID: "g-2", Name: "admins", Attributes: AtlanGroupAttributes{Alias: []string{"Admins"}}},
			},
		})
	}))
	defer server.Close()

	reader, err := NewDirectoryReader(httpclient.NewClient(httpclient.DefaultConfig()), staticToken("api-key"), Config{BaseURL: server.URL})
	require.NoError(t, err)

	groups, err := reader.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Data Users", groups[0].Alias)
	assert.Equal(t, []string{"r-1"}, groups[0].Roles)
	assert.Equal(t, "Admins", groups[1].Alias, "alias falls back to attributes")
}

func TestDirectoryReader_ListUsers_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	reader, err := NewDirectoryReader(httpclient.NewClient(httpclient.DefaultConfig()), staticToken("bad"), Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = reader.ListUsers(context.Background())
	assert.Error(t, err)
}

func TestNewDirectoryReader_Validation(t *testing.T) {
	_, err := NewDirectoryReader(httpclient.NewClient(httpclient.DefaultConfig()), staticToken("k"), Config{})
	assert.Error(t, err)

	_, err = NewDirectoryReader(httpclient.NewClient(httpclient.DefaultConfig()), nil, Config{BaseURL: "https://tenant.atlan.com"})
	assert.Error(t, err)
}
