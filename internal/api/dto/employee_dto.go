package dto

import (
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// CreateEmployeeRequest payload for employee creation. Pointers distinguish
// absent fields from zero values.
type CreateEmployeeRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        *string  `json:"phone"`
	DepartmentID *int64   `json:"department_id"`
	Salary       *float64 `json:"salary"`
	JoinDate     *string  `json:"join_date"`
	Status       string   `json:"status"`
}

// EmployeeResponse renders an employee with calendar-date and timestamp
// strings; null dates pass through as null.
type EmployeeResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          *string  `json:"phone"`
	DepartmentID   int64    `json:"department_id"`
	DepartmentName *string  `json:"department_name"`
	Salary         *float64 `json:"salary"`
	JoinDate       *string  `json:"join_date"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

// NewEmployeeResponse converts a domain employee to its wire form.
func NewEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             emp.ID,
		Name:           emp.Name,
		Email:          emp.Email,
		Phone:          emp.Phone,
		DepartmentID:   emp.DepartmentID,
		DepartmentName: emp.DepartmentName,
		Salary:         emp.Salary,
		JoinDate:       formatDate(emp.JoinDate),
		Status:         string(emp.Status),
		CreatedAt:      emp.CreatedAt.Format(timestampLayout),
		UpdatedAt:      emp.UpdatedAt.Format(timestampLayout),
	}
}

// NewEmployeeResponses converts a slice of employees.
func NewEmployeeResponses(emps []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(emps))
	for i := range emps {
		out = append(out, NewEmployeeResponse(&emps[i]))
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(dateLayout)
	return &formatted
}
