// Package common contains shared sentinel errors used across Countrybook
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrNotFound indicates the requested country does not exist in the
	// catalog or in local state.
	ErrNotFound = errors.New("not found")

	// ErrCorruptData indicates persisted local state could not be parsed.
	// It is recoverable: callers degrade to an empty collection.
	ErrCorruptData = errors.New("corrupt persisted data")

	// ErrUnavailable indicates the remote catalog could not be reached.
	ErrUnavailable = errors.New("catalog unavailable")
)
