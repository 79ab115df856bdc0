package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/harborline/charter-booking/internal/model"
)

// BoatRepo provides CRUD operations for charter boats.  Every query is
// scoped to a company id.
type BoatRepo struct{ DB *sql.DB }

func NewBoatRepo(db *sql.DB) *BoatRepo { return &BoatRepo{DB: db} }

const boatColumns = "id,company_id,name,description,capacity,litres_per_hour,hourly_rate,is_active,created_at,updated_at"

func scanBoat(sc interface {
	Scan(dest ...interface{}) error
}) (model.Boat, error) {
	var (
		b    model.Boat
		desc sql.NullString
	)
	err := sc.Scan(&b.ID, &b.CompanyID, &b.Name, &desc, &b.Capacity, &b.LitresPerHour, &b.HourlyRate, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return b, err
	}
	if desc.Valid {
		d := desc.String
		b.Description = &d
	}
	return b, nil
}

// Create inserts a boat and returns its ID.  A duplicate name within the
// company maps to ErrConflict.
func (r *BoatRepo) Create(ctx context.Context, b *model.Boat) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO boats (company_id, name, description, capacity, litres_per_hour, hourly_rate, is_active)
		 VALUES (?,?,?,?,?,?,?)`,
		b.CompanyID, strings.TrimSpace(b.Name), b.Description, b.Capacity, b.LitresPerHour, b.HourlyRate, b.IsActive)
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

// GetByID fetches a boat within the tenant; ErrNotFound when absent.
func (r *BoatRepo) GetByID(ctx context.Context, companyID, id uint64) (model.Boat, error) {
	b, err := scanBoat(r.DB.QueryRowContext(ctx,
		"SELECT "+boatColumns+" FROM boats WHERE id=? AND company_id=? LIMIT 1", id, companyID))
	if err == sql.ErrNoRows {
		return b, ErrNotFound
	}
	return b, err
}

// ListByCompany returns the tenant's boats, optionally only active ones.
func (r *BoatRepo) ListByCompany(ctx context.Context, companyID uint64, activeOnly bool) ([]model.Boat, error) {
	q := "SELECT " + boatColumns + " FROM boats WHERE company_id=?"
	if activeOnly {
		q += " AND is_active=1"
	}
	q += " ORDER BY name"
	rows, err := r.DB.QueryContext(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	boats := make([]model.Boat, 0)
	for rows.Next() {
		b, err := scanBoat(rows)
		if err != nil {
			return nil, err
		}
		boats = append(boats, b)
	}
	return boats, rows.Err()
}

// Update rewrites the mutable boat fields; ErrNotFound when the row does not
// exist within the tenant.
func (r *BoatRepo) Update(ctx context.Context, b *model.Boat) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE boats SET name=?, description=?, capacity=?, litres_per_hour=?, hourly_rate=?, is_active=?
		 WHERE id=? AND company_id=?`,
		strings.TrimSpace(b.Name), b.Description, b.Capacity, b.LitresPerHour, b.HourlyRate, b.IsActive,
		b.ID, b.CompanyID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// Delete removes a boat.  Boats with bookings on the books cannot be deleted
// (foreign key), which maps to ErrConflict so the handler answers 409.
func (r *BoatRepo) Delete(ctx context.Context, companyID, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM boats WHERE id=? AND company_id=?", id, companyID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1451") { // FK restraint
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
