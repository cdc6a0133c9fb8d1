package provider

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider failures.
var (
	// ErrProviderUnavailable wraps bulk fetch failures and timeouts.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrStatsUnavailable is returned by Stats on providers that do not
	// support statistics. It is an expected condition, not a failure.
	ErrStatsUnavailable = errors.New("stats unavailable")
)

// UnknownPlatformError reports an unregistered or misspelled platform id.
type UnknownPlatformError struct {
	ID string
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("unknown platform %q", e.ID)
}

// InvalidIDError reports an identifier that does not match the platform's
// format.
type InvalidIDError struct {
	Platform Platform
	Raw      string
	Want     string // description of the expected format
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid %s id %q: want %s", e.Platform, e.Raw, e.Want)
}
