package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

// In-memory repository fakes mirroring the SQL semantics the real
// implementations rely on.

type fakeEmployeeRepo struct {
	employees map[int64]*domain.Employee
	nextID    int64
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[int64]*domain.Employee), nextID: 1}
}

func (r *fakeEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	var result []domain.Employee
	for _, emp := range r.employees {
		if filter.Status != nil && emp.Status != *filter.Status {
			continue
		}
		if filter.DepartmentID != nil && emp.DepartmentID != *filter.DepartmentID {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(emp.Name), needle) &&
				!strings.Contains(strings.ToLower(emp.Email), needle) {
				continue
			}
		}
		result = append(result, *emp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cloned := *emp
	return &cloned, nil
}

func (r *fakeEmployeeRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, emp := range r.employees {
		if emp.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp *domain.Employee) error {
	emp.ID = r.nextID
	r.nextID++
	now := time.Now()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	cloned := *emp
	r.employees[emp.ID] = &cloned
	return nil
}

func (r *fakeEmployeeRepo) UpdateFields(_ context.Context, id int64, fields map[string]any) error {
	emp, ok := r.employees[id]
	if !ok {
		return pgx.ErrNoRows
	}
	for key, val := range fields {
		switch key {
		case "name":
			emp.Name = val.(string)
		case "email":
			emp.Email = val.(string)
		case "phone":
			if val == nil {
				emp.Phone = nil
			} else {
				phone := val.(string)
				emp.Phone = &phone
			}
		case "department_id":
			emp.DepartmentID = val.(int64)
		case "salary":
			if val == nil {
				emp.Salary = nil
			} else {
				salary := val.(float64)
				emp.Salary = &salary
			}
		case "join_date":
			if val == nil {
				emp.JoinDate = nil
			} else {
				date := val.(time.Time)
				emp.JoinDate = &date
			}
		case "status":
			emp.Status = val.(domain.EmployeeStatus)
		}
	}
	emp.UpdatedAt = time.Now()
	return nil
}

func (r *fakeEmployeeRepo) SetStatus(_ context.Context, id int64, status domain.EmployeeStatus) error {
	emp, ok := r.employees[id]
	if !ok {
		return pgx.ErrNoRows
	}
	emp.Status = status
	emp.UpdatedAt = time.Now()
	return nil
}

func (r *fakeEmployeeRepo) CountByStatus(_ context.Context, status domain.EmployeeStatus) (int64, error) {
	var count int64
	for _, emp := range r.employees {
		if emp.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeEmployeeRepo) CountActiveHiredSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, emp := range r.employees {
		if emp.Status != domain.EmployeeStatusActive || emp.JoinDate == nil {
			continue
		}
		if !emp.JoinDate.Before(since) {
			count++
		}
	}
	return count, nil
}

func listFilter(dept *int64, status *domain.EmployeeStatus, search string) repository.EmployeeFilter {
	return repository.EmployeeFilter{DepartmentID: dept, Status: status, Search: search}
}

type fakeDepartmentRepo struct {
	departments map[int64]string
}

func newFakeDepartmentRepo(names ...string) *fakeDepartmentRepo {
	r := &fakeDepartmentRepo{departments: make(map[int64]string)}
	for i, name := range names {
		r.departments[int64(i+1)] = name
	}
	return r
}

func (r *fakeDepartmentRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.departments[id]
	return ok, nil
}

func (r *fakeDepartmentRepo) List(_ context.Context) ([]domain.Department, error) {
	var result []domain.Department
	for id, name := range r.departments {
		result = append(result, domain.Department{ID: id, Name: name})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeDepartmentRepo) ActiveEmployeeCounts(_ context.Context) ([]domain.DepartmentCount, error) {
	var result []domain.DepartmentCount
	for id, name := range r.departments {
		result = append(result, domain.DepartmentCount{ID: id, Name: name})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type fakeAdminRepo struct {
	users map[int64]*domain.AdminUser
}

func newFakeAdminRepo(users ...*domain.AdminUser) *fakeAdminRepo {
	r := &fakeAdminRepo{users: make(map[int64]*domain.AdminUser)}
	for _, user := range users {
		cloned := *user
		r.users[user.ID] = &cloned
	}
	return r
}

func (r *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*domain.AdminUser, error) {
	for _, user := range r.users {
		if user.Username == username {
			cloned := *user
			return &cloned, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id int64) (*domain.AdminUser, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cloned := *user
	return &cloned, nil
}

func (r *fakeAdminRepo) UpdatePassword(_ context.Context, id int64, password string) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Password = password
	return nil
}
