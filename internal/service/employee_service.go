package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// allowedUpdateFields is the whitelist for partial updates. Unknown keys in a
// request body are ignored, not rejected.
var allowedUpdateFields = map[string]bool{
	"name":          true,
	"email":         true,
	"phone":         true,
	"department_id": true,
	"salary":        true,
	"join_date":     true,
	"status":        true,
}

const joinDateLayout = "2006-01-02"

// CreateEmployeeInput carries validated fields for employee creation.
type CreateEmployeeInput struct {
	Name         string
	Email        string
	Phone        *string
	DepartmentID int64
	Salary       *float64
	JoinDate     *time.Time
	Status       domain.EmployeeStatus
}

// Stats aggregates employee statistics.
type Stats struct {
	TotalActive       int64                    `json:"total_active"`
	TotalInactive     int64                    `json:"total_inactive"`
	RecentHires30Days int64                    `json:"recent_hires_30_days"`
	ByDepartment      []domain.DepartmentCount `json:"by_department"`
}

// EmployeeService implements listing, CRUD, soft delete and statistics.
type EmployeeService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	dispatcher  events.Dispatcher
	cache       StatsCache
	now         func() time.Time
}

// NewEmployeeService builds the service. Dispatcher and cache may be nil.
func NewEmployeeService(employees repository.EmployeeRepository, departments repository.DepartmentRepository, dispatcher events.Dispatcher, cache StatsCache) *EmployeeService {
	return &EmployeeService{
		employees:   employees,
		departments: departments,
		dispatcher:  dispatcher,
		cache:       cache,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Used by tests for the 30-day boundary.
func (s *EmployeeService) WithClock(now func() time.Time) *EmployeeService {
	s.now = now
	return s
}

// List returns employees matching the filter, most recent first.
func (s *EmployeeService) List(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	return s.employees.List(ctx, filter)
}

// Get returns an employee regardless of status.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee")
		}
		return nil, err
	}
	return emp, nil
}

// Create inserts a new employee after uniqueness and referential checks.
// Email uniqueness holds across all statuses.
func (s *EmployeeService) Create(ctx context.Context, actor events.Actor, input CreateEmployeeInput) (int64, error) {
	exists, err := s.employees.EmailExists(ctx, input.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.NewConflict("email already exists")
	}

	ok, err := s.departments.Exists(ctx, input.DepartmentID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperrors.NewValidationError("invalid department ID")
	}

	status := input.Status
	if status == "" {
		status = domain.EmployeeStatusActive
	}

	emp := &domain.Employee{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		DepartmentID: input.DepartmentID,
		Salary:       input.Salary,
		JoinDate:     input.JoinDate,
		Status:       status,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return 0, err
	}

	s.publish(ctx, events.EventEmployeeCreated, emp.ID, actor, events.EmployeeCreatedPayload{
		Name:         emp.Name,
		Email:        emp.Email,
		DepartmentID: emp.DepartmentID,
		Status:       emp.Status,
	})
	s.invalidateStats(ctx)
	return emp.ID, nil
}

// Update applies the whitelisted subset of fields from a raw request body.
func (s *EmployeeService) Update(ctx context.Context, actor events.Actor, id int64, body map[string]any) error {
	if len(body) == 0 {
		return apperrors.NewValidationError("no data provided")
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	fields, err := filterUpdateFields(body)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return apperrors.NewValidationError("no valid fields to update")
	}

	if deptVal, ok := fields["department_id"]; ok {
		deptID, ok := deptVal.(int64)
		if !ok {
			return apperrors.NewValidationError("invalid department ID")
		}
		exists, err := s.departments.Exists(ctx, deptID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewValidationError("invalid department ID")
		}
	}

	if err := s.employees.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee")
		}
		return err
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	s.publish(ctx, events.EventEmployeeUpdated, id, actor, events.EmployeeUpdatedPayload{Fields: names})
	s.invalidateStats(ctx)
	return nil
}

// Deactivate soft-deletes an employee. Already-inactive records are rejected;
// the transition is one-way.
func (s *EmployeeService) Deactivate(ctx context.Context, actor events.Actor, id int64) error {
	emp, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if emp.Status == domain.EmployeeStatusInactive {
		return apperrors.NewConflict("employee already inactive")
	}

	if err := s.employees.SetStatus(ctx, id, domain.EmployeeStatusInactive); err != nil {
		return err
	}

	s.publish(ctx, events.EventEmployeeDeactivated, id, actor, events.EmployeeDeactivatedPayload{
		PreviousStatus: emp.Status,
	})
	s.invalidateStats(ctx)
	return nil
}

// Stats computes aggregate statistics, serving from cache when possible.
// Recent hires use an inclusive 30-day window ending today.
func (s *EmployeeService) Stats(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	active, err := s.employees.CountByStatus(ctx, domain.EmployeeStatusActive)
	if err != nil {
		return nil, err
	}
	inactive, err := s.employees.CountByStatus(ctx, domain.EmployeeStatusInactive)
	if err != nil {
		return nil, err
	}
	recent, err := s.employees.CountActiveHiredSince(ctx, s.recentHireCutoff())
	if err != nil {
		return nil, err
	}
	byDept, err := s.departments.ActiveEmployeeCounts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalActive:       active,
		TotalInactive:     inactive,
		RecentHires30Days: recent,
		ByDepartment:      byDept,
	}
	if s.cache != nil {
		s.cache.Set(ctx, stats)
	}
	return stats, nil
}

// recentHireCutoff returns midnight 30 days before today, so a join_date
// exactly 30 days old still counts.
func (s *EmployeeService) recentHireCutoff() time.Time {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -30)
}

// filterUpdateFields keeps whitelisted keys and coerces JSON values into
// column types. join_date strings must be YYYY-MM-DD.
func filterUpdateFields(body map[string]any) (map[string]any, error) {
	fields := make(map[string]any, len(body))
	for key, val := range body {
		if !allowedUpdateFields[key] {
			continue
		}
		switch key {
		case "department_id":
			num, ok := val.(float64)
			if !ok {
				return nil, apperrors.NewValidationError("invalid department ID")
			}
			fields[key] = int64(num)
		case "salary":
			if val == nil {
				fields[key] = nil
				continue
			}
			num, ok := val.(float64)
			if !ok {
				return nil, apperrors.NewValidationError("invalid salary")
			}
			fields[key] = num
		case "join_date":
			if val == nil {
				fields[key] = nil
				continue
			}
			str, ok := val.(string)
			if !ok {
				return nil, apperrors.NewValidationError("invalid join date")
			}
			parsed, err := time.Parse(joinDateLayout, str)
			if err != nil {
				return nil, apperrors.NewValidationError(fmt.Sprintf("invalid join date %q, use YYYY-MM-DD", str))
			}
			fields[key] = parsed
		case "status":
			str, ok := val.(string)
			if !ok {
				return nil, apperrors.NewValidationError("invalid status")
			}
			fields[key] = domain.EmployeeStatus(strings.ToLower(str))
		case "phone":
			if val == nil {
				fields[key] = nil
				continue
			}
			str, ok := val.(string)
			if !ok {
				return nil, apperrors.NewValidationError("invalid phone")
			}
			fields[key] = str
		default:
			str, ok := val.(string)
			if !ok {
				return nil, apperrors.NewValidationError(fmt.Sprintf("invalid value for %s", key))
			}
			fields[key] = str
		}
	}
	return fields, nil
}

func (s *EmployeeService) publish(ctx context.Context, eventType events.EventType, employeeID int64, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EmployeeID: employeeID,
		Actor:      actor,
		Timestamp:  s.now(),
		Payload:    payload,
	})
}

func (s *EmployeeService) invalidateStats(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
