package repository

import (
	"context"
	"database/sql"

	"github.com/harborline/charter-booking/internal/model"
)

// WaitlistRepo persists requests to be notified when a taken slot frees up.
type WaitlistRepo struct{ DB *sql.DB }

func NewWaitlistRepo(db *sql.DB) *WaitlistRepo { return &WaitlistRepo{DB: db} }

const waitlistColumns = `id, company_id, boat_id, customer_name, customer_email,
	DATE_FORMAT(slot_date,'%Y-%m-%d'), TIME_FORMAT(start_time,'%H:%i'), TIME_FORMAT(end_time,'%H:%i'),
	passengers, status, created_at`

// Create inserts a waitlist entry and populates its ID.
func (r *WaitlistRepo) Create(ctx context.Context, w *model.WaitlistEntry) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO waitlist (company_id, boat_id, customer_name, customer_email, slot_date, start_time, end_time, passengers, status)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		w.CompanyID, w.BoatID, w.CustomerName, w.CustomerEmail, w.SlotDate, w.StartTime, w.EndTime, w.Passengers, w.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = uint64(id)
	return nil
}

// ListByDate returns the tenant's waitlist for a date, oldest first so staff
// convert in arrival order.
func (r *WaitlistRepo) ListByDate(ctx context.Context, companyID uint64, date string) ([]model.WaitlistEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+waitlistColumns+" FROM waitlist WHERE company_id=? AND slot_date=? ORDER BY created_at",
		companyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.WaitlistEntry, 0)
	for rows.Next() {
		var w model.WaitlistEntry
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.BoatID, &w.CustomerName, &w.CustomerEmail,
			&w.SlotDate, &w.StartTime, &w.EndTime, &w.Passengers, &w.Status, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// UpdateStatus moves an entry between waiting/converted/expired.
func (r *WaitlistRepo) UpdateStatus(ctx context.Context, companyID, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE waitlist SET status=? WHERE id=? AND company_id=?", status, id, companyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
