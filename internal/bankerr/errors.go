// Package bankerr defines the error taxonomy shared by all bank
// adapters. Callers classify failures with errors.Is against the
// sentinel values; the helpers build errors that carry both the
// sentinel and a descriptive message.
package bankerr

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks a missing configuration value or an entity that
	// could not be located using one (e.g. a configured account name
	// absent from a summary page).
	ErrConfig = errors.New("configuration error")

	// ErrAuthTimeout marks a confirmation poll loop that exhausted its
	// attempts without the user confirming the login.
	ErrAuthTimeout = errors.New("authentication confirmation timed out")

	// ErrNetwork marks any transport-level failure: connection errors
	// and non-2xx responses.
	ErrNetwork = errors.New("network error")

	// ErrParse marks an expected structural element or field absent
	// from a response, usually a sign the upstream site changed.
	ErrParse = errors.New("parse error")
)

// Configf returns an error matching ErrConfig.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

// AuthTimeoutf returns an error matching ErrAuthTimeout.
func AuthTimeoutf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAuthTimeout, fmt.Sprintf(format, args...))
}

// Networkf returns an error matching ErrNetwork. A non-nil cause is
// kept on the wrap chain.
func Networkf(cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		return fmt.Errorf("%w: %s: %w", ErrNetwork, msg, cause)
	}
	return fmt.Errorf("%w: %s", ErrNetwork, msg)
}

// Parsef returns an error matching ErrParse.
func Parsef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}
