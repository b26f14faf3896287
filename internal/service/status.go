package service

import (
	"github.com/celerix-dev/celerix-roster/internal/engine"
	"github.com/celerix-dev/celerix-roster/pkg/schema"
)

// StatusService exposes the read-only status singleton.
type StatusService interface {
	Get() (schema.Status, error)
}

// Status is the store-backed StatusService.
type Status struct {
	store engine.Store
}

func NewStatus(store engine.Store) *Status {
	return &Status{store: store}
}

func (s *Status) Get() (schema.Status, error) {
	return s.store.GetStatus(), nil
}
