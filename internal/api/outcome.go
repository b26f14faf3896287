// Package api routes roster requests to their handlers and renders the result.
package api

import (
	"fmt"

	"github.com/celerix-dev/celerix-roster/pkg/schema"
)

// Kind is the response shape a handler decided on.
type Kind int

const (
	KindOK Kind = iota
	KindCreated
	KindError
	KindNotFound
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindCreated:
		return "created"
	case KindError:
		return "error"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrorKind classifies a handled failure.
type ErrorKind string

const (
	ErrInternal ErrorKind = "internal"
	ErrNotFound ErrorKind = "not_found"
	ErrInvalid  ErrorKind = "invalid"
)

// ParseEmptyUsersStatus converts the configured status for an empty roster.
func ParseEmptyUsersStatus(s string) (ErrorKind, error) {
	switch k := ErrorKind(s); k {
	case ErrInternal, ErrNotFound:
		return k, nil
	default:
		return "", fmt.Errorf("unknown empty users status %q", s)
	}
}

// Outcome is what a handler wants written back to the client.
type Outcome struct {
	Kind    Kind
	Value   any
	Err     ErrorKind
	Message string
	Method  string
}

func Ok(v any) Outcome {
	return Outcome{Kind: KindOK, Value: v}
}

func Created(v any) Outcome {
	return Outcome{Kind: KindCreated, Value: v}
}

func Failure(kind ErrorKind, message string) Outcome {
	return Outcome{Kind: KindError, Err: kind, Message: message}
}

// RouteMiss is the sentinel for a request no route accepts.
func RouteMiss() Outcome {
	return Outcome{Kind: KindNotFound}
}

// MethodMiss is the sentinel for a known path requested with the wrong method.
func MethodMiss(method string) Outcome {
	return Outcome{Kind: KindMethodNotAllowed, Method: method}
}

// Request is a parsed inbound request as seen by a handler.
type Request struct {
	Method string
	Path   string
	// User is the decoded body of a write request.
	User schema.User
}
