// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package snapshot

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/dataverse/atlan-migration/internal/domain/port"
	"github.com/dataverse/atlan-migration/pkg/errors"

	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// fileStore keeps snapshots as <dir>/<name>.json files
type fileStore struct {
	fs  afero.Fs
	dir string
}

func (f *fileStore) path(name string) string {
	return filepath.Join(f.dir, FileName(name))
}

// Save writes the snapshot, replacing any previous file
func (f *fileStore) Save(ctx context.Context, name string, data any) error {
	encoded, err := Encode(name, data)
	if err != nil {
		return err
	}

	if err := f.fs.MkdirAll(f.dir, dirPerm); err != nil {
		return errors.NewUnexpected("failed to create snapshot directory", err)
	}

	path := f.path(name)
	if err := afero.WriteFile(f.fs, path, encoded, filePerm); err != nil {
		slog.ErrorContext(ctx, "failed to write snapshot", "path", path, "error", err)
		return errors.NewUnexpected("failed to write snapshot "+name, err)
	}

	slog.DebugContext(ctx, "snapshot written", "path", path, "bytes", len(encoded))
	return nil
}

// Load reads the snapshot into the given value
func (f *fileStore) Load(ctx context.Context, name string, into any) error {
	path := f.path(name)

	encoded, err := afero.ReadFile(f.fs, path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.NewNotFound("snapshot "+name+" not found", err)
		}
		return errors.NewUnexpected("failed to read snapshot "+name, err)
	}

	slog.DebugContext(ctx, "snapshot read", "path", path, "bytes", len(encoded))
	return Decode(name, encoded, into)
}

// NewFileStore creates a SnapshotStore on the given filesystem
func NewFileStore(fs afero.Fs, dir string) port.SnapshotStore {
	if dir == "" {
		dir = "."
	}
	return &fileStore{
		fs:  fs,
		dir: dir,
	}
}
