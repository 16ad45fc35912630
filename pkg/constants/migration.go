// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

import "time"

const (
	// AtlanTargetGroup is the Atlan group every cached user is added to
	AtlanTargetGroup = "data_users"

	// RoverTargetGroup is the Rover group every cached user is added to
	RoverTargetGroup = "dataverse-atlan-users"

	// DefaultBatchSize is the number of user ids sent per membership request
	DefaultBatchSize = 20

	// DefaultBatchDelay is the pause between two membership requests
	DefaultBatchDelay = 5 * time.Second

	// MemberTypeUser is the member type used in Rover membersMod payloads
	MemberTypeUser = "user"
)
