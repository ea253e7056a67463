package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors let the HTTP layer map gateway failures onto the response
// envelope without inspecting error strings.
var (
	ErrUnauthenticated = errors.New("no authenticated principal")
	ErrForbidden       = errors.New("principal does not own the resource")
	ErrInvalidInput    = errors.New("missing or invalid input")
	ErrNotConfigured   = errors.New("provider credentials not configured")
	ErrNotFound        = errors.New("record not found")
)

// ProviderError wraps the raw error text returned by an external
// communication provider.
type ProviderError struct {
	Provider string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %s", e.Provider, e.Message)
}

// IsProviderError reports whether err carries a provider failure.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
