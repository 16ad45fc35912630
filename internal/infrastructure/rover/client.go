// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package rover

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dataverse/atlan-migration/internal/domain/model"
	"github.com/dataverse/atlan-migration/internal/domain/port"
	"github.com/dataverse/atlan-migration/pkg/errors"
	"github.com/dataverse/atlan-migration/pkg/httpclient"

	"golang.org/x/oauth2"
)

const membersModPath = "/v1/%s/membersMod"

// Config holds the Rover connection settings
type Config struct {
	BaseURL string
}

type membersModifier struct {
	httpClient  *httpclient.Client
	tokenSource oauth2.TokenSource
	config      Config
}

// ModifyMembers sends one membersMod request for the group
func (m *membersModifier) ModifyMembers(ctx context.Context, groupName string, payload model.MembersModPayload) (int, error) {
	token, err := m.tokenSource.Token()
	if err != nil {
		return -1, errors.NewUnauthorized("failed to get Rover token", err)
	}

	return httpclient.NewAPIRequest(m.httpClient,
		httpclient.WithMethod(http.MethodPost),
		httpclient.WithURL(m.config.BaseURL+fmt.Sprintf(membersModPath, url.PathEscape(groupName))),
		httpclient.WithToken(token.AccessToken),
		httpclient.WithBody(payload),
		httpclient.WithDescription("rover membersMod"),
	).Call(ctx, nil)
}

// NewMembersModifier creates a MembersModifier for the Rover API
func NewMembersModifier(httpClient *httpclient.Client, tokenSource oauth2.TokenSource, config Config) (port.MembersModifier, error) {
	config.BaseURL = strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if config.BaseURL == "" {
		return nil, errors.NewValidation("Rover URL is required")
	}
	if tokenSource == nil {
		return nil, errors.NewValidation("Rover token source is required")
	}
	return &membersModifier{
		httpClient:  httpClient,
		tokenSource: tokenSource,
		config:      config,
	}, nil
}
