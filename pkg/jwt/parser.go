// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package jwt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dataverse/atlan-migration/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the parsed JWT claims used to describe an API key
type Claims struct {
	Subject   string        `json:"sub"`
	Username  string        `json:"preferred_username,omitempty"`
	ExpiresAt *time.Time    `json:"exp,omitempty"`
	IssuedAt  *time.Time    `json:"iat,omitempty"`
	Issuer    string        `json:"iss,omitempty"`
	Raw       jwt.MapClaims `json:"-"`
}

// ParseOptions configures JWT parsing behavior
type ParseOptions struct {
	// RequireExpiration validates that the token has an 'exp' claim
	RequireExpiration bool
	// AllowBearerPrefix allows tokens with "Bearer " prefix
	AllowBearerPrefix bool
	// Now is the reference time for expiration, defaults to time.Now
	Now func() time.Time
}

// DefaultParseOptions returns sensible default options
func DefaultParseOptions() *ParseOptions {
	return &ParseOptions{
		RequireExpiration: false,
		AllowBearerPrefix: true,
		Now:               time.Now,
	}
}

// LooksLikeJWT reports whether the token has the three segment JWT shape
func LooksLikeJWT(token string) bool {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}

// ParseUnverified parses a JWT token without signature verification and returns the claims.
// The signature belongs to the platform that issued the key, the migrator only
// reads the claims to fail fast on expired keys.
func ParseUnverified(ctx context.Context, tokenString string, opts *ParseOptions) (*Claims, error) {
	if opts == nil {
		opts = DefaultParseOptions()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cleanToken := strings.TrimSpace(tokenString)
	if cleanToken == "" {
		return nil, errors.NewValidation("token is required")
	}

	if opts.AllowBearerPrefix {
		parts := strings.Fields(cleanToken)
		if len(parts) > 1 && strings.EqualFold(parts[0], "Bearer") {
			cleanToken = strings.Join(parts[1:], " ")
		}
	}

	token, _, err := jwt.NewParser().ParseUnverified(cleanToken, jwt.MapClaims{})
	if err != nil {
		return nil, errors.NewValidation("failed to parse JWT token", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.NewValidation("invalid token claims")
	}

	claims, err := mapClaimsToClaims(mapClaims)
	if err != nil {
		return nil, err
	}

	if err := validateExpiration(claims, opts); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "JWT parsed successfully",
		"subject", claims.Subject,
		"username", claims.Username,
		"expires_at", claims.ExpiresAt)

	return claims, nil
}

// InspectAPIKey checks an API key before any network call is made.
//
// Opaque keys are accepted as they are (nil claims, nil error). Keys shaped as
// JWT must parse and must not be expired.
func InspectAPIKey(ctx context.Context, apiKey string, now func() time.Time) (*Claims, error) {
	if !LooksLikeJWT(apiKey) {
		slog.DebugContext(ctx, "API key is not a JWT, skipping inspection")
		return nil, nil
	}

	return ParseUnverified(ctx, apiKey, &ParseOptions{
		AllowBearerPrefix: true,
		Now:               now,
	})
}

// mapClaimsToClaims converts jwt.MapClaims to our Claims struct
func mapClaimsToClaims(mapClaims jwt.MapClaims) (*Claims, error) {
	claims := &Claims{
		Raw: mapClaims,
	}

	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}

	if username, ok := mapClaims["preferred_username"].(string); ok {
		claims.Username = username
	}

	if iss, err := mapClaims.GetIssuer(); err == nil {
		claims.Issuer = iss
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil {
		return nil, errors.NewValidation("invalid 'exp' claim format", err)
	}
	if exp != nil {
		claims.ExpiresAt = &exp.Time
	}

	iat, err := mapClaims.GetIssuedAt()
	if err != nil {
		return nil, errors.NewValidation("invalid 'iat' claim format", err)
	}
	if iat != nil {
		claims.IssuedAt = &iat.Time
	}

	return claims, nil
}

// validateExpiration checks if the token is expired
func validateExpiration(claims *Claims, opts *ParseOptions) error {
	if claims.ExpiresAt == nil {
		if opts.RequireExpiration {
			return errors.NewValidation("missing 'exp' claim in token")
		}
		return nil
	}

	if opts.Now().After(*claims.ExpiresAt) {
		return errors.NewValidation(fmt.Sprintf("token has expired at %v", claims.ExpiresAt.UTC()))
	}

	return nil
}

// GetStringClaim is a helper to extract a string claim
func (c *Claims) GetStringClaim(key string) (string, bool) {
	if c.Raw == nil {
		return "", false
	}
	value, exists := c.Raw[key]
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}
