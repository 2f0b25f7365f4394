package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

func newTestEmployeeService(emps *fakeEmployeeRepo, depts *fakeDepartmentRepo) *EmployeeService {
	return NewEmployeeService(emps, depts, nil, nil)
}

func assertDomainError(t *testing.T, err error, kind apperrors.ErrorKind, status int) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	de := apperrors.ToDomainError(err)
	if de.Kind != kind {
		t.Errorf("expected kind %s, got %s", kind, de.Kind)
	}
	if de.HTTPStatus != status {
		t.Errorf("expected status %d, got %d", status, de.HTTPStatus)
	}
}

func TestCreate_DefaultsToActive(t *testing.T) {
	emps := newFakeEmployeeRepo()
	svc := newTestEmployeeService(emps, newFakeDepartmentRepo("Engineering"))

	id, err := svc.Create(context.Background(), events.Actor{}, CreateEmployeeInput{
		Name:         "John Doe",
		Email:        "john@company.com",
		DepartmentID: 1,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	emp, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if emp.Status != domain.EmployeeStatusActive {
		t.Errorf("expected default status active, got %s", emp.Status)
	}
}

func TestCreate_DuplicateEmailAnyStatus(t *testing.T) {
	emps := newFakeEmployeeRepo()
	svc := newTestEmployeeService(emps, newFakeDepartmentRepo("Engineering"))

	id, err := svc.Create(context.Background(), events.Actor{}, CreateEmployeeInput{
		Name:         "John Doe",
		Email:        "john@company.com",
		DepartmentID: 1,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// Deactivate the original; the email must still block a new record.
	if err := svc.Deactivate(context.Background(), events.Actor{}, id); err != nil {
		t.Fatalf("Deactivate() failed: %v", err)
	}

	_, err = svc.Create(context.Background(), events.Actor{}, CreateEmployeeInput{
		Name:         "Johnny Doe",
		Email:        "john@company.com",
		DepartmentID: 1,
	})
	assertDomainError(t, err, apperrors.KindConflict, 400)
}

func TestCreate_UnknownDepartment(t *testing.T) {
	svc := newTestEmployeeService(newFakeEmployeeRepo(), newFakeDepartmentRepo("Engineering"))

	_, err := svc.Create(context.Background(), events.Actor{}, CreateEmployeeInput{
		Name:         "John Doe",
		Email:        "john@company.com",
		DepartmentID: 99,
	})
	assertDomainError(t, err, apperrors.KindValidation, 400)
}

func TestCreate_PublishesEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var got []events.Event
	dispatcher.Subscribe(events.EventEmployeeCreated, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})

	svc := NewEmployeeService(newFakeEmployeeRepo(), newFakeDepartmentRepo("Engineering"), dispatcher, nil)
	actor := events.Actor{UserID: 1, Username: "admin"}

	id, err := svc.Create(context.Background(), actor, CreateEmployeeInput{
		Name:         "John Doe",
		Email:        "john@company.com",
		DepartmentID: 1,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].EmployeeID != id || got[0].Actor.Username != "admin" {
		t.Errorf("unexpected event: %+v", got[0])
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestEmployeeService(newFakeEmployeeRepo(), newFakeDepartmentRepo())

	_, err := svc.Get(context.Background(), 42)
	assertDomainError(t, err, apperrors.KindNotFound, 404)
}

func TestDeactivate_RejectsSecondCall(t *testing.T) {
	svc := newTestEmployeeService(newFakeEmployeeRepo(), newFakeDepartmentRepo("Engineering"))

	id, err := svc.Create(context.Background(), events.Actor{}, CreateEmployeeInput{
		Name:         "John Doe",
		Email:        "john@company.com",
		DepartmentID: 1,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := svc.Deactivate(context.Background(), events.Actor{}, id); err != nil {
		t.Fatalf("first Deactivate() failed: %v", err)
	}

	emp, _ := svc.Get(context.Background(), id)
	if emp.Status != domain.EmployeeStatusInactive {
		t.Errorf("expected status inactive, got %s", emp.Status)
	}

	err = svc.Deactivate(context.Background(), events.Actor{}, id)
	assertDomainError(t, err, apperrors.KindConflict, 400)
}

func TestUpdate_EmptyBody(t *testing.T) {
	svc := newTestEmployeeService(newFakeEmployeeRepo(), newFakeDepartmentRepo())

	err := svc.Update(context.Background(), events.Actor{}, 1, map[string]any{})
	assertDomainError(t, err, apperrors.KindValidation, 400)
}

func TestUpdate_OnlyDisallowedFields(t *testing.T) {
	emps := newFakeEmployeeRepo()
	svc := newTestEmployeeService(emps, newFakeDepartmentRepo("Engineering"))

	id, _ := svc.Create(context.Background(), events.Actor{}, CreateEmployeeInput{
		Name: "John Doe", Email: "john@company.com", DepartmentID: 1,
	})

	err := svc.Update(context.Background(), events.Actor{}, id, map[string]any{
		"id":      float64(99),
		"unknown": "value",
	})
	assertDomainError(t, err, apperrors.KindValidation, 400)
}

func TestUpdate_SalaryOnlyLeavesOtherFields(t *testing.T) {
	emps := newFakeEmployeeRepo()
	svc := newTestEmployeeService(emps, newFakeDepartmentRepo("Engineering"))

	phone := "1234567890"
	id, _ := svc.Create(context.Background(), events.Actor{}, CreateEmployeeInput{
		Name: "John Doe", Email: "john@company.com", Phone: &phone, DepartmentID: 1,
	})

	// Unknown keys ride along silently as long as one allowed field exists.
	err := svc.Update(context.Background(), events.Actor{}, id, map[string]any{
		"salary":  float64(60000),
		"unknown": "ignored",
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	emp, _ := svc.Get(context.Background(), id)
	if emp.Salary == nil || *emp.Salary != 60000 {
		t.Errorf("expected salary 60000, got %v", emp.Salary)
	}
	if emp.Name != "John Doe" || emp.Email != "john@company.com" {
		t.Errorf("unrelated fields changed: %+v", emp)
	}
	if emp.Phone == nil || *emp.Phone != phone {
		t.Errorf("phone changed: %v", emp.Phone)
	}
}

func TestUpdate_UnknownDepartmentRejected(t *testing.T) {
	svc := newTestEmployeeService(newFakeEmployeeRepo(), newFakeDepartmentRepo("Engineering"))

	id, _ := svc.Create(context.Background(), events.Actor{}, CreateEmployeeInput{
		Name: "John Doe", Email: "john@company.com", DepartmentID: 1,
	})

	err := svc.Update(context.Background(), events.Actor{}, id, map[string]any{
		"department_id": float64(99),
	})
	assertDomainError(t, err, apperrors.KindValidation, 400)
}

func TestUpdate_MissingEmployee(t *testing.T) {
	svc := newTestEmployeeService(newFakeEmployeeRepo(), newFakeDepartmentRepo("Engineering"))

	err := svc.Update(context.Background(), events.Actor{}, 42, map[string]any{
		"salary": float64(60000),
	})
	assertDomainError(t, err, apperrors.KindNotFound, 404)
}

func TestStats_RecentHireBoundary(t *testing.T) {
	emps := newFakeEmployeeRepo()
	svc := newTestEmployeeService(emps, newFakeDepartmentRepo("Engineering"))

	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	exactly30 := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	daysAgo31 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Create(context.Background(), events.Actor{}, CreateEmployeeInput{
		Name: "Boundary Hire", Email: "boundary@company.com", DepartmentID: 1, JoinDate: &exactly30,
	}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), events.Actor{}, CreateEmployeeInput{
		Name: "Older Hire", Email: "older@company.com", DepartmentID: 1, JoinDate: &daysAgo31,
	}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	if stats.RecentHires30Days != 1 {
		t.Errorf("expected 1 recent hire (30-day boundary inclusive), got %d", stats.RecentHires30Days)
	}
	if stats.TotalActive != 2 {
		t.Errorf("expected 2 active, got %d", stats.TotalActive)
	}
	if stats.TotalInactive != 0 {
		t.Errorf("expected 0 inactive, got %d", stats.TotalInactive)
	}
}

func TestList_FiltersConjunctively(t *testing.T) {
	emps := newFakeEmployeeRepo()
	svc := newTestEmployeeService(emps, newFakeDepartmentRepo("Engineering", "Sales"))

	mk := func(name, email string, dept int64) int64 {
		id, err := svc.Create(context.Background(), events.Actor{}, CreateEmployeeInput{
			Name: name, Email: email, DepartmentID: dept,
		})
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", name, err)
		}
		return id
	}

	johnID := mk("John Smith", "john.smith@company.com", 1)
	mk("Jane Roe", "jane@company.com", 2)
	inactiveID := mk("John Inactive", "john.inactive@company.com", 1)
	if err := svc.Deactivate(context.Background(), events.Actor{}, inactiveID); err != nil {
		t.Fatalf("Deactivate() failed: %v", err)
	}

	active := domain.EmployeeStatusActive
	dept := int64(1)
	result, err := svc.List(context.Background(), listFilter(&dept, &active, "john"))
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(result) != 1 || result[0].ID != johnID {
		t.Errorf("expected only active John in dept 1, got %+v", result)
	}

	inactive := domain.EmployeeStatusInactive
	result, err = svc.List(context.Background(), listFilter(nil, &inactive, ""))
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(result) != 1 || result[0].ID != inactiveID {
		t.Errorf("expected only the inactive employee, got %+v", result)
	}
}
