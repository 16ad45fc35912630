// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Snapshot names, also used as file names (without extension), KV keys
// and ConfigMap data keys.
const (
	// UsersSnapshotName is the snapshot of all users keyed by username.
	UsersSnapshotName = "atlan_users"

	// GroupsSnapshotName is the snapshot of all groups keyed by group name.
	GroupsSnapshotName = "atlan_groups"

	// SnapshotFileExtension is appended to snapshot names on disk and in ConfigMaps.
	SnapshotFileExtension = ".json"
)

// Snapshot store backends.
const (
	SnapshotStoreTypeFile      = "file"
	SnapshotStoreTypeNATS      = "nats"
	SnapshotStoreTypeConfigMap = "configmap"
)
