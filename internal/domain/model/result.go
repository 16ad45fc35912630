// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "fmt"

// ResultStatus is the outcome of a migration operation
type ResultStatus string

const (
	// ResultSucceeded means every request of the operation succeeded
	ResultSucceeded ResultStatus = "succeeded"
	// ResultFailed means the operation ran to the end but some requests failed,
	// running it again is safe
	ResultFailed ResultStatus = "failed"
	// ResultAborted means the operation stopped before sending anything,
	// the cause has to be fixed first
	ResultAborted ResultStatus = "aborted"
)

// Result is the typed outcome of a migration operation
type Result struct {
	Operation  string
	Status     ResultStatus
	Successful int
	Failed     int
	// Reason is the cause of a failed or aborted operation. It may also be set
	// on a succeeded operation when an error was observed but tolerated.
	Reason error
}

// Succeeded reports whether the operation counts as a success
func (r Result) Succeeded() bool {
	return r.Status == ResultSucceeded
}

// Retryable reports whether running the operation again could succeed
// without any change in configuration or snapshots
func (r Result) Retryable() bool {
	return r.Status == ResultFailed
}

func (r Result) String() string {
	if r.Reason != nil {
		return fmt.Sprintf("%s %s (successful=%d failed=%d): %v", r.Operation, r.Status, r.Successful, r.Failed, r.Reason)
	}
	return fmt.Sprintf("%s %s (successful=%d failed=%d)", r.Operation, r.Status, r.Successful, r.Failed)
}

// NewAbortedResult creates an aborted result
func NewAbortedResult(operation string, reason error) Result {
	return Result{
		Operation: operation,
		Status:    ResultAborted,
		Reason:    reason,
	}
}

// NewBatchResult creates the result of a batched operation from its tallies
func NewBatchResult(operation string, successful, failed int, reason error) Result {
	status := ResultSucceeded
	if failed > 0 {
		status = ResultFailed
	}
	return Result{
		Operation:  operation,
		Status:     status,
		Successful: successful,
		Failed:     failed,
		Reason:     reason,
	}
}
