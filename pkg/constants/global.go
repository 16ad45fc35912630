// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (

	// ServiceName is the name of the migrator, used as NATS client name and in logs
	ServiceName = "atlan-migration"

	// DirectoryTypeAtlan is the value for the Atlan REST directory implementation
	DirectoryTypeAtlan = "atlan"

	// DirectoryTypeMock is the value for the embedded mock directory implementation
	DirectoryTypeMock = "mock"
)
