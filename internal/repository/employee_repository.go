package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EmployeeRepository handles persistence for employee records.
type EmployeeRepository interface {
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, emp *domain.Employee) error
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	SetStatus(ctx context.Context, id int64, status domain.EmployeeStatus) error
	CountByStatus(ctx context.Context, status domain.EmployeeStatus) (int64, error)
	CountActiveHiredSince(ctx context.Context, since time.Time) (int64, error)
}

// EmployeeFilter defines query params for employee listing. Filters combine
// conjunctively.
type EmployeeFilter struct {
	DepartmentID *int64
	Status       *domain.EmployeeStatus
	Search       string
}

// employeeColumns is the fixed order in which whitelisted update fields are
// applied, keeping generated SQL deterministic.
var employeeColumns = []string{"name", "email", "phone", "department_id", "salary", "join_date", "status"}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeSelect = `
        SELECT e.id, e.name, e.email, e.phone, e.department_id, e.salary,
               e.join_date, e.status, e.created_at, e.updated_at,
               d.name AS department_name
        FROM employees e
        LEFT JOIN departments d ON e.department_id = d.id`

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	query := employeeSelect
	args := []any{}
	clauses := []string{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("e.status=$%d", len(args)))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("e.department_id=$%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(e.name ILIKE $%d OR e.email ILIKE $%d)", len(args), len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY e.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		var emp domain.Employee
		if err := scanEmployee(rows, &emp); err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query := employeeSelect + " WHERE e.id=$1"

	var emp domain.Employee
	if err := scanEmployee(r.pool.QueryRow(ctx, query, id), &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM employees WHERE email=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, email, phone, department_id, salary, join_date, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		emp.Name,
		emp.Email,
		emp.Phone,
		emp.DepartmentID,
		emp.Salary,
		emp.JoinDate,
		emp.Status,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
}

// UpdateFields applies only the supplied whitelisted columns. Callers filter
// field names before handing them over; anything outside employeeColumns is
// ignored here as a second guard.
func (r *employeeRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	sets := []string{}
	args := []any{}

	for _, col := range employeeColumns {
		val, ok := fields[col]
		if !ok {
			continue
		}
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE employees SET %s, updated_at=NOW() WHERE id=$%d",
		strings.Join(sets, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) SetStatus(ctx context.Context, id int64, status domain.EmployeeStatus) error {
	const query = `UPDATE employees SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) CountByStatus(ctx context.Context, status domain.EmployeeStatus) (int64, error) {
	const query = `SELECT COUNT(*) FROM employees WHERE status=$1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveHiredSince counts active employees whose join_date falls on or
// after the given date.
func (r *employeeRepository) CountActiveHiredSince(ctx context.Context, since time.Time) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM employees
        WHERE status = 'active' AND join_date >= $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanEmployee(row pgx.Row, emp *domain.Employee) error {
	return row.Scan(
		&emp.ID,
		&emp.Name,
		&emp.Email,
		&emp.Phone,
		&emp.DepartmentID,
		&emp.Salary,
		&emp.JoinDate,
		&emp.Status,
		&emp.CreatedAt,
		&emp.UpdatedAt,
		&emp.DepartmentName,
	)
}
