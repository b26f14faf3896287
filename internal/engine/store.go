// Package engine holds the in-memory state behind the roster.
package engine

import "github.com/celerix-dev/celerix-roster/pkg/schema"

// Store is the sole owner of roster state. Callers only ever receive copies.
type Store interface {
	// ListUsers returns every user in insertion order. Never nil.
	ListUsers() []schema.User
	// AppendUser appends u and returns the stored record.
	AppendUser(u schema.User) schema.User
	// AppendUserChecked runs check against the current users and appends u only
	// if check returns nil. Both happen under the same write lock.
	AppendUserChecked(u schema.User, check func(existing []schema.User) error) (schema.User, error)
	// GetStatus returns the singleton status record.
	GetStatus() schema.Status
}

// StatusTimeLayout renders the status time the way a locale time string does.
const StatusTimeLayout = "3:04:05 PM"

// DefaultUsers is the roster a new daemon starts with.
func DefaultUsers() []schema.User {
	return []schema.User{
		{ID: 1, Name: "Alice", Role: "admin"},
		{ID: 2, Name: "Bob", Role: "user"},
	}
}
