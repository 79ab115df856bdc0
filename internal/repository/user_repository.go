package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/harborline/charter-booking/internal/model"
	"github.com/harborline/charter-booking/internal/utils"
)

// UserRepo persists application users.  Every user belongs to a company;
// lookups by id are additionally scoped to the caller's company so one
// tenant can never read another tenant's accounts.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID.  The email is normalized to
// lower case; duplicate emails map to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, companyID uint64, email, password, role string, cost int) (uint64, error) {
	return insertUser(ctx, r.DB, companyID, email, password, role, cost)
}

// CreateTx is Create under the caller's transaction, used by company
// registration to create the tenant and its admin atomically.
func (r *UserRepo) CreateTx(ctx context.Context, tx *sql.Tx, companyID uint64, email, password, role string, cost int) (uint64, error) {
	return insertUser(ctx, tx, companyID, email, password, role, cost)
}

func insertUser(ctx context.Context, ex execer, companyID uint64, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := ex.ExecContext(ctx,
		"INSERT INTO users (company_id, email, password_hash, role) VALUES (?,?,?,?)",
		companyID, email, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const userColumns = "id,company_id,email,password_hash,role,is_active,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByEmail fetches a user by normalized email.  Used by login, which has
// no tenant context yet.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id without tenant scope.  Reserved for the
// refresh-token flow where the company is recovered from the stored row.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByIDForCompany fetches a user by id within the caller's tenant.
func (r *UserRepo) GetByIDForCompany(ctx context.Context, companyID, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? AND company_id=? LIMIT 1", id, companyID))
}

// ListByCompany returns all users of a tenant, newest first.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID uint64) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE company_id=? ORDER BY created_at DESC", companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
