// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"fmt"
)

type base struct {
	message string
	err     error
}

func (b base) Error() string {
	if b.err == nil {
		return b.message
	}
	if b.message == "" {
		return b.err.Error()
	}
	return fmt.Sprintf("%s: %v", b.message, b.err)
}

func (b base) Unwrap() error {
	return b.err
}

func newBase(message string, err ...error) base {
	return base{
		message: message,
		err:     errors.Join(err...),
	}
}

// Validation represents invalid input or configuration
type Validation struct {
	base
}

// NewValidation creates a new Validation error
func NewValidation(message string, err ...error) Validation {
	return Validation{base: newBase(message, err...)}
}

// NotFound represents a missing resource
type NotFound struct {
	base
}

// NewNotFound creates a new NotFound error
func NewNotFound(message string, err ...error) NotFound {
	return NotFound{base: newBase(message, err...)}
}

// Unauthorized represents missing or invalid credentials
type Unauthorized struct {
	base
}

// NewUnauthorized creates a new Unauthorized error
func NewUnauthorized(message string, err ...error) Unauthorized {
	return Unauthorized{base: newBase(message, err...)}
}

// Forbidden represents credentials without enough permissions
type Forbidden struct {
	base
}

// NewForbidden creates a new Forbidden error
func NewForbidden(message string, err ...error) Forbidden {
	return Forbidden{base: newBase(message, err...)}
}

// ServiceUnavailable represents a dependency that cannot be reached
type ServiceUnavailable struct {
	base
}

// NewServiceUnavailable creates a new ServiceUnavailable error
func NewServiceUnavailable(message string, err ...error) ServiceUnavailable {
	return ServiceUnavailable{base: newBase(message, err...)}
}

// Unexpected represents any other failure
type Unexpected struct {
	base
}

// NewUnexpected creates a new Unexpected error
func NewUnexpected(message string, err ...error) Unexpected {
	return Unexpected{base: newBase(message, err...)}
}
