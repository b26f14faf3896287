// Package schema defines the records served by the Celerix Roster.
package schema

// User is a roster member. Records are append-only: once stored they are
// never updated or removed.
type User struct {
	ID   int    `json:"id" mapstructure:"id" validate:"gte=0"`
	Name string `json:"name" mapstructure:"name" validate:"required"`
	Role string `json:"role" mapstructure:"role" validate:"required"`
}

// Status is the singleton system status record.
type Status struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
	Time   string `json:"time"`
}

// StatusActive is the status value a freshly started store reports.
const StatusActive = "Active"
