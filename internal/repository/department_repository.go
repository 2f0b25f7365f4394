package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// DepartmentRepository reads the departments table. Departments are managed
// outside this service; no write operations exist.
type DepartmentRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]domain.Department, error)
	ActiveEmployeeCounts(ctx context.Context) ([]domain.DepartmentCount, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM departments WHERE id=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	const query = `SELECT id, name, created_at FROM departments ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	return result, rows.Err()
}

// ActiveEmployeeCounts returns the active headcount per department, including
// departments with no active employees, ordered by count descending.
func (r *departmentRepository) ActiveEmployeeCounts(ctx context.Context) ([]domain.DepartmentCount, error) {
	const query = `
        SELECT d.id, d.name, COUNT(e.id) AS employee_count
        FROM departments d
        LEFT JOIN employees e ON d.id = e.department_id AND e.status = 'active'
        GROUP BY d.id, d.name
        ORDER BY employee_count DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DepartmentCount
	for rows.Next() {
		var count domain.DepartmentCount
		if err := rows.Scan(&count.ID, &count.Name, &count.EmployeeCount); err != nil {
			return nil, err
		}
		result = append(result, count)
	}
	return result, rows.Err()
}
