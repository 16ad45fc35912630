// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"net/http"

	"github.com/dataverse/atlan-migration/pkg/errors"
)

// ErrorFromStatusCode returns an error based on the http status code
func ErrorFromStatusCode(statusCode int, message string) error {
	switch statusCode {
	case http.StatusBadRequest:
		return errors.NewValidation(message)
	case http.StatusUnauthorized:
		return errors.NewUnauthorized(message)
	case http.StatusForbidden:
		return errors.NewForbidden(message)
	case http.StatusNotFound:
		return errors.NewNotFound(message)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return errors.NewServiceUnavailable(message)
	}
	return errors.NewUnexpected(message)
}
