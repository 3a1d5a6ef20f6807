// Package common defines shared constants and sentinel errors used across
// the sync engine and its adapters. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Local store errors. A failed local write is fatal to the operation
	// that triggered it and propagates to the caller.
	ErrPersistence = errors.New("local persistence failed")

	// Remote store errors. Raised when no session is set or the remote
	// call fails; never fatal to the triggering operation.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
