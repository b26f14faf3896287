// Package service implements the business rules for each roster resource.
package service

import (
	"fmt"

	"github.com/celerix-dev/celerix-roster/internal/engine"
	"github.com/celerix-dev/celerix-roster/pkg/schema"
)

// ErrNoUsers is the message used when an empty roster is rejected.
const ErrNoUsers = "No users found"

// EmptyUsersPolicy decides what List does when the roster is empty.
type EmptyUsersPolicy string

const (
	// EmptyUsersReject fails List with a *NotFoundError.
	EmptyUsersReject EmptyUsersPolicy = "reject"
	// EmptyUsersAllow returns the empty roster as-is.
	EmptyUsersAllow EmptyUsersPolicy = "allow"
)

// ParseEmptyUsersPolicy converts a config string into a policy.
func ParseEmptyUsersPolicy(s string) (EmptyUsersPolicy, error) {
	switch p := EmptyUsersPolicy(s); p {
	case EmptyUsersReject, EmptyUsersAllow:
		return p, nil
	default:
		return "", fmt.Errorf("unknown empty users policy %q", s)
	}
}

// UsersService is the business layer over the users collection.
type UsersService interface {
	List() ([]schema.User, error)
	Add(candidate schema.User) (schema.User, error)
}

// Users is the store-backed UsersService.
type Users struct {
	store     engine.Store
	policy    EmptyUsersPolicy
	validator Validator
}

// NewUsers builds a Users service. A nil validator accepts every candidate.
func NewUsers(store engine.Store, policy EmptyUsersPolicy, v Validator) *Users {
	if v == nil {
		v = NopValidator{}
	}
	if policy == "" {
		policy = EmptyUsersReject
	}
	return &Users{store: store, policy: policy, validator: v}
}

func (s *Users) List() ([]schema.User, error) {
	users := s.store.ListUsers()
	if len(users) == 0 && s.policy == EmptyUsersReject {
		return nil, &NotFoundError{Resource: "users", Message: ErrNoUsers}
	}
	return users, nil
}

func (s *Users) Add(candidate schema.User) (schema.User, error) {
	return s.store.AppendUserChecked(candidate, func(existing []schema.User) error {
		return s.validator.Validate(candidate, existing)
	})
}
