package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/harborline/charter-booking/internal/model"
)

// CompanyRepo persists tenants.
type CompanyRepo struct{ DB *sql.DB }

func NewCompanyRepo(db *sql.DB) *CompanyRepo { return &CompanyRepo{DB: db} }

// execer is the subset of *sql.DB and *sql.Tx the insert helpers need, so
// the same statement can run standalone or inside a caller's transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Create inserts a company and returns its ID.  Duplicate names map to
// ErrConflict.
func (r *CompanyRepo) Create(ctx context.Context, name, timezone string) (uint64, error) {
	return insertCompany(ctx, r.DB, name, timezone)
}

// CreateTx is Create under the caller's transaction.  Registration inserts
// the company and its first admin atomically so a failed user insert never
// leaves an orphan tenant row.
func (r *CompanyRepo) CreateTx(ctx context.Context, tx *sql.Tx, name, timezone string) (uint64, error) {
	return insertCompany(ctx, tx, name, timezone)
}

func insertCompany(ctx context.Context, ex execer, name, timezone string) (uint64, error) {
	if timezone == "" {
		timezone = "UTC"
	}
	res, err := ex.ExecContext(ctx,
		"INSERT INTO companies (name, timezone) VALUES (?,?)", strings.TrimSpace(name), timezone)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a company by id.
func (r *CompanyRepo) GetByID(ctx context.Context, id uint64) (model.Company, error) {
	var c model.Company
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,timezone,created_at,updated_at FROM companies WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &c.Timezone, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}
