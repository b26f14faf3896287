package sdk

import (
	"github.com/celerix-dev/celerix-roster/internal/service"
	"github.com/celerix-dev/celerix-roster/pkg/schema"
)

// Local is an embedded roster that calls the services in-process.
type Local struct {
	users  service.UsersService
	status service.StatusService
}

func NewLocal(users service.UsersService, status service.StatusService) *Local {
	return &Local{users: users, status: status}
}

func (l *Local) ListUsers() ([]schema.User, error) {
	return l.users.List()
}

func (l *Local) AddUser(u schema.User) (schema.User, error) {
	return l.users.Add(u)
}

func (l *Local) GetStatus() (schema.Status, error) {
	return l.status.Get()
}
