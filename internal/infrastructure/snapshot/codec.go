// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package snapshot

import (
	"encoding/json"

	"github.com/dataverse/atlan-migration/pkg/constants"
	"github.com/dataverse/atlan-migration/pkg/errors"
)

const indent = "  "

// Encode serializes a snapshot the way every store persists it:
// pretty-printed JSON with a two space indent.
func Encode(name string, data any) ([]byte, error) {
	encoded, err := json.MarshalIndent(data, "", indent)
	if err != nil {
		return nil, errors.NewUnexpected("failed to encode snapshot "+name, err)
	}
	return encoded, nil
}

// Decode parses a persisted snapshot, there is no schema validation
func Decode(name string, encoded []byte, into any) error {
	if err := json.Unmarshal(encoded, into); err != nil {
		return errors.NewUnexpected("failed to parse snapshot "+name, err)
	}
	return nil
}

// FileName returns the file name of a snapshot
func FileName(name string) string {
	return name + constants.SnapshotFileExtension
}
