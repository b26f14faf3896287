package api

import (
	"fmt"

	"github.com/celerix-dev/celerix-roster/internal/service"
	"go.uber.org/zap"
)

// Controller runs one resource operation per request.
type Controller interface {
	ListUsers(req Request) Outcome
	AddUser(req Request) Outcome
	GetStatus(req Request) Outcome
}

var _ Controller = (*Handler)(nil)

// Handler is the service-backed Controller.
type Handler struct {
	Users  service.UsersService
	Status service.StatusService
	// EmptyUsers is how a rejected empty roster is reported. Defaults to ErrInternal.
	EmptyUsers ErrorKind
	Logger     *zap.Logger
}

func (h *Handler) ListUsers(req Request) Outcome {
	return h.guard("list_users", func() Outcome {
		users, err := h.Users.List()
		if err != nil {
			if service.IsNotFound(err) {
				return Failure(h.emptyUsersKind(), err.Error())
			}
			return h.internal("list_users", err)
		}
		return Ok(users)
	})
}

func (h *Handler) AddUser(req Request) Outcome {
	return h.guard("add_user", func() Outcome {
		user, err := h.Users.Add(req.User)
		if err != nil {
			if service.IsValidation(err) {
				return Failure(ErrInvalid, err.Error())
			}
			return h.internal("add_user", err)
		}
		h.logger().Debug("user added", zap.Int("id", user.ID), zap.String("role", user.Role))
		return Created(user)
	})
}

func (h *Handler) GetStatus(req Request) Outcome {
	return h.guard("get_status", func() Outcome {
		status, err := h.Status.Get()
		if err != nil {
			return h.internal("get_status", err)
		}
		return Ok(status)
	})
}

// guard turns a panic anywhere below the handler into an internal failure.
func (h *Handler) guard(op string, fn func() Outcome) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			h.logger().Error("handler panicked", zap.String("op", op), zap.Any("panic", r))
			out = Failure(ErrInternal, fmt.Sprint(r))
		}
	}()
	return fn()
}

func (h *Handler) internal(op string, err error) Outcome {
	h.logger().Error("handler failed", zap.String("op", op), zap.Error(err))
	return Failure(ErrInternal, err.Error())
}

func (h *Handler) emptyUsersKind() ErrorKind {
	if h.EmptyUsers == "" {
		return ErrInternal
	}
	return h.EmptyUsers
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}
