package domain

import "time"

// Department represents an organizational unit referenced by employees.
// Read-only from this service's perspective.
type Department struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// DepartmentCount pairs a department with its active-employee headcount.
type DepartmentCount struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	EmployeeCount int64  `json:"employee_count"`
}
