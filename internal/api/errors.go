// Package api provides error types for Colbuilder backend responses.
package api

import (
	"errors"
	"fmt"
)

// statusError marks a business-rule failure in a response body; every other
// status value passes through as success.
const statusError = "error"

// APIError is a business-rule failure reported by the backend: the body
// carried status "error" and a human-readable message meant for the user.
type APIError struct {
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (status %d)", e.HTTPStatus)
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
