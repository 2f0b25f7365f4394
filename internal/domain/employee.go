package domain

import "time"

// EmployeeStatus represents lifecycle states for an employee record.
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// Employee is the domain model for an employee record. Records are never
// hard-deleted; deactivation flips Status to inactive.
type Employee struct {
	ID             int64
	Name           string
	Email          string
	Phone          *string
	DepartmentID   int64
	DepartmentName *string
	Salary         *float64
	JoinDate       *time.Time
	Status         EmployeeStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
