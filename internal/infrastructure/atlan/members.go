// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package atlan

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dataverse/atlan-migration/internal/domain/model"
	"github.com/dataverse/atlan-migration/internal/domain/port"
	"github.com/dataverse/atlan-migration/pkg/httpclient"

	"golang.org/x/oauth2"
)

type groupMemberWriter struct {
	*client
}

// AddGroupMembers adds the users to the group in a single request
func (g *groupMemberWriter) AddGroupMembers(ctx context.Context, groupID string, userIDs []string) (int, error) {
	token, err := g.token(ctx)
	if err != nil {
		return -1, err
	}

	path := fmt.Sprintf("%s/%s/members", groupsPath, url.PathEscape(groupID))

	return httpclient.NewAPIRequest(g.httpClient,
		httpclient.WithMethod(http.MethodPost),
		httpclient.WithURL(g.endpoint(path)),
		httpclient.WithToken(token),
		httpclient.WithHeader("Accept", "application/json, text/plain, */*"),
		httpclient.WithBody(model.AddMembersRequest{Users: userIDs}),
		httpclient.WithDescription("add group members"),
	).Call(ctx, nil)
}

// NewGroupMemberWriter creates a GroupMemberWriter for the Atlan service API
func NewGroupMemberWriter(httpClient *httpclient.Client, tokenSource oauth2.TokenSource, config Config) (port.GroupMemberWriter, error) {
	c, err := newClient(httpClient, tokenSource, config)
	if err != nil {
		return nil, err
	}
	return &groupMemberWriter{client: c}, nil
}
