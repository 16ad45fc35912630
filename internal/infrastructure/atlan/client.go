// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package atlan

import (
	"context"
	"strings"

	"github.com/dataverse/atlan-migration/pkg/errors"
	"github.com/dataverse/atlan-migration/pkg/httpclient"

	"golang.org/x/oauth2"
)

const defaultPageSize = 100

// Config holds the Atlan connection settings
type Config struct {
	BaseURL  string
	PageSize int
}

// client holds what every Atlan call needs
type client struct {
	httpClient  *httpclient.Client
	tokenSource oauth2.TokenSource
	config      Config
}

func (c *client) token(ctx context.Context) (string, error) {
	token, err := c.tokenSource.Token()
	if err != nil {
		return "", errors.NewUnauthorized("failed to get Atlan token", err)
	}
	return token.AccessToken, nil
}

func (c *client) endpoint(path string) string {
	return c.config.BaseURL + path
}

func newClient(httpClient *httpclient.Client, tokenSource oauth2.TokenSource, config Config) (*client, error) {
	config.BaseURL = strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if config.BaseURL == "" {
		return nil, errors.NewValidation("Atlan base URL is required")
	}
	if tokenSource == nil {
		return nil, errors.NewValidation("Atlan token source is required")
	}
	if config.PageSize <= 0 {
		config.PageSize = defaultPageSize
	}
	return &client{
		httpClient:  httpClient,
		tokenSource: tokenSource,
		config:      config,
	}, nil
}
