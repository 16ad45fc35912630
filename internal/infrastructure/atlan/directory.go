// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package atlan

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dataverse/atlan-migration/internal/domain/model"
	"github.com/dataverse/atlan-migration/internal/domain/port"
	"github.com/dataverse/atlan-migration/pkg/httpclient"

	"golang.org/x/oauth2"
)

const (
	usersPath  = "/api/service/users"
	groupsPath = "/api/service/groups"
)

type directoryReader struct {
	*client
}

// paginate calls fetch with increasing offsets until a short page is returned
// or the reported total is reached
func paginate[T any](ctx context.Context, pageSize int, fetch func(ctx context.Context, offset int) (*listResponse[T], error)) ([]T, error) {
	var all []T
	for offset := 0; ; offset += pageSize {
		page, err := fetch(ctx, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Records...)

		slog.DebugContext(ctx, "fetched page",
			"offset", offset,
			"records", len(page.Records),
			"total", page.TotalRecord,
		)

		if len(page.Records) < pageSize {
			return all, nil
		}
		if page.TotalRecord > 0 && len(all) >= page.TotalRecord {
			return all, nil
		}
	}
}

func (d *directoryReader) list(ctx context.Context, path string, query url.Values, description string, resp any) error {
	token, err := d.token(ctx)
	if err != nil {
		return err
	}

	_, err = httpclient.NewAPIRequest(d.httpClient,
		httpclient.WithMethod(http.MethodGet),
		httpclient.WithURL(d.endpoint(path)+"?"+query.Encode()),
		httpclient.WithToken(token),
		httpclient.WithDescription(description),
	).Call(ctx, resp)
	return err
}

// ListUsers lists every user of the tenant
func (d *directoryReader) ListUsers(ctx context.Context) ([]*model.User, error) {
	records, err := paginate(ctx, d.config.PageSize, func(ctx context.Context, offset int) (*listResponse[AtlanUser], error) {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(d.config.PageSize))
		query.Set("offset", strconv.Itoa(offset))
		query.Set("sort", "username")

		page := &listResponse[AtlanUser]{}
		if err := d.list(ctx, usersPath, query, "list users", page); err != nil {
			return nil, err
		}
		return page, nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to list users", "error", err)
		return nil, err
	}

	users := make([]*model.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].ToUser())
	}

	slog.InfoContext(ctx, "listed users", "count", len(users))
	return users, nil
}

// ListGroups lists every group of the tenant, oldest first
func (d *directoryReader) ListGroups(ctx context.Context) ([]*model.Group, error) {
	records, err := paginate(ctx, d.config.PageSize, func(ctx context.Context, offset int) (*listResponse[AtlanGroup], error) {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(d.config.PageSize))
		query.Set("offset", strconv.Itoa(offset))
		query.Set("sort", "createdAt")
		query.Add("columns", "roles")
		query.Add("columns", "path")

		page := &listResponse[AtlanGroup]{}
		if err := d.list(ctx, groupsPath, query, "list groups", page); err != nil {
			return nil, err
		}
		return page, nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to list groups", "error", err)
		return nil, err
	}

	groups := make([]*model.Group, 0, len(records))
	for i := range records {
		groups = append(groups, records[i].ToGroup())
	}

	slog.InfoContext(ctx, "listed groups", "count", len(groups))
	return groups, nil
}

// NewDirectoryReader creates a DirectoryReader for the Atlan service API
func NewDirectoryReader(httpClient *httpclient.Client, tokenSource oauth2.TokenSource, config Config) (port.DirectoryReader, error) {
	c, err := newClient(httpClient, tokenSource, config)
	if err != nil {
		return nil, err
	}
	return &directoryReader{client: c}, nil
}
