package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// FromHTTPStatus maps an API response status to the error taxonomy.
// Authorization failures must stay distinguishable from everything else
// so callers can stop polling a source instead of retrying forever.
func FromHTTPStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return fmt.Errorf("status %d: %w", status, ErrUnauthorized)
	case status == http.StatusNotFound:
		return fmt.Errorf("status %d: %w", status, ErrNotFound)
	case status >= 400 && status < 500:
		return fmt.Errorf("status %d: %w", status, ErrMalformed)
	default:
		return fmt.Errorf("status %d: %w", status, ErrTransient)
	}
}

// MapFetch normalizes transport-level errors. Context cancellation
// propagates as-is; a deadline is a fetch failure, never an empty result.
func MapFetch(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("fetch timeout: %w", ErrTransient)
	}
	return fmt.Errorf("%v: %w", err, ErrTransient)
}

// Wrap wraps an error with context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Unauthorized wraps a message as an authorization failure.
func Unauthorized(message string) error {
	return fmt.Errorf("%s: %w", message, ErrUnauthorized)
}

// Transient wraps a message as transient.
func Transient(message string) error {
	return fmt.Errorf("%s: %w", message, ErrTransient)
}

// Malformed wraps a message as a data error.
func Malformed(message string) error {
	return fmt.Errorf("%s: %w", message, ErrMalformed)
}

// Internal wraps a message as internal.
func Internal(message string) error {
	return fmt.Errorf("%s: %w", message, ErrInternal)
}

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsTransient reports whether err should be treated as retryable next cycle.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, ErrTransient)
}
