package errors

import (
	"errors"
)

// Sentinel errors for the failure taxonomy. Every error crossing a
// package boundary wraps one of these.
var (
	// ErrUnauthorized - the API rejected the token (disable the source, no retry)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTransient - transient network or server failure (skip this cycle, keep polling)
	ErrTransient = errors.New("transient error")

	// ErrMalformed - a record could not be interpreted (drop the record, keep the rest)
	ErrMalformed = errors.New("malformed record")

	// ErrNotFound - resource not found
	ErrNotFound = errors.New("not found")

	// ErrInternal - internal error
	ErrInternal = errors.New("internal error")
)
