package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionExpired accompanies ErrUnauthorized when the API rejected the
	// token of an established session.
	ErrSessionExpired = errors.New("session expired")
)

// APIError is a non-2xx response that is neither an authorization failure
// nor a server outage.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}
