package sdk

import (
	"fmt"

	"github.com/celerix-dev/celerix-roster/pkg/schema"
)

// --- Functional Interfaces (Interface Segregation) ---

// UsersReader lists the roster.
type UsersReader interface {
	ListUsers() ([]schema.User, error)
}

// UsersWriter appends to the roster.
type UsersWriter interface {
	AddUser(u schema.User) (schema.User, error)
}

// StatusReader reads the status singleton.
type StatusReader interface {
	GetStatus() (schema.Status, error)
}

// --- Composite Interfaces ---

// RosterAPI is implemented by both the remote Client and the embedded Local roster.
type RosterAPI interface {
	UsersReader
	UsersWriter
	StatusReader
}

var (
	_ RosterAPI = (*Client)(nil)
	_ RosterAPI = (*Local)(nil)
)

// APIError is a non-2xx answer from a roster daemon.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("roster: %d %s", e.StatusCode, e.Message)
}
