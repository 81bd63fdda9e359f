package api

import (
	"errors"
	"fmt"
)

// Error is a structured failure returned by the remote API. Detail carries
// the server-supplied human-readable message when one was present.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

// Detail extracts the server-supplied detail message from err, if any.
// Transport errors and non-API failures yield an empty string.
func Detail(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
