// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package rover

import (
	"context"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Credentials are the ways the migrator can authenticate against Rover
type Credentials struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Token        string
	// FallbackToken is used when nothing else is configured
	FallbackToken string
}

// TokenSource picks the Rover token source: client credentials when fully
// configured, then a static token, then the fallback token
func TokenSource(ctx context.Context, creds Credentials) oauth2.TokenSource {
	if creds.ClientID != "" && creds.ClientSecret != "" && creds.TokenURL != "" {
		slog.DebugContext(ctx, "using OAuth2 client credentials for Rover", "token_url", creds.TokenURL)
		config := clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     creds.TokenURL,
		}
		return config.TokenSource(ctx)
	}

	if creds.Token != "" {
		slog.DebugContext(ctx, "using static token for Rover")
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token})
	}

	slog.WarnContext(ctx, "no Rover credentials configured, using the Atlan API key")
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.FallbackToken})
}
