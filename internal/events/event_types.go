package events

import (
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated     EventType = "employee_created"
	EventEmployeeUpdated     EventType = "employee_updated"
	EventEmployeeDeactivated EventType = "employee_deactivated"
)

// Actor identifies the admin who triggered an event.
type Actor struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	EmployeeID int64       `json:"employee_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	DepartmentID int64                 `json:"department_id"`
	Status       domain.EmployeeStatus `json:"status"`
}

// EmployeeUpdatedPayload payload.
type EmployeeUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// EmployeeDeactivatedPayload payload.
type EmployeeDeactivatedPayload struct {
	PreviousStatus domain.EmployeeStatus `json:"previous_status"`
}
