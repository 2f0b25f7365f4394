package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// AdminRepository handles persistence for administrator accounts. Accounts are
// provisioned externally; only the password column is ever written here.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	GetByID(ctx context.Context, id int64) (*domain.AdminUser, error)
	UpdatePassword(ctx context.Context, id int64, password string) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository instantiates the repository.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	const query = `
        SELECT id, username, password, email
        FROM admin_users WHERE username=$1`

	var user domain.AdminUser
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Email,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	const query = `
        SELECT id, username, password, email
        FROM admin_users WHERE id=$1`

	var user domain.AdminUser
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Email,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id int64, password string) error {
	const query = `UPDATE admin_users SET password=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, password, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
