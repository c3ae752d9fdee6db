// SPDX-License-Identifier: MIT

package archive

import (
	"errors"
	"fmt"
)

var (
	// Sentinel errors for errors.Is checks at the boundary.
	ErrNotFound    = errors.New("archive: resource not found")
	ErrBadQuery    = errors.New("archive: query rejected")
	ErrUnavailable = errors.New("archive: host unreachable or transport failure")
	ErrServerError = errors.New("archive: internal error (5xx)")
	ErrBadResponse = errors.New("archive: invalid response format or malformed data")
	ErrTimeout     = errors.New("archive: request timed out")
)

// Error wraps the sentinel errors with request context.
type Error struct {
	Sentinel  error
	Operation string
	Status    int
	Body      string
	Err       error // nested lower-level error (e.g. net.Error)
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("archive: %s: %v", e.Operation, e.Sentinel)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Sentinel
}
