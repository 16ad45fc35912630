// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/dataverse/atlan-migration/internal/domain/model"
)

// DirectoryReader defines the behavior of the primary platform directory
type DirectoryReader interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	ListGroups(ctx context.Context) ([]*model.Group, error)
}
