package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/harborline/charter-booking/internal/model"
	"github.com/harborline/charter-booking/internal/schedule"
)

// BookingRepo provides persistence for charter bookings: creation inside a
// transaction, the hold-expiry sweep, slot queries for the availability
// check and the status transitions of the booking lifecycle.  All timestamp
// comparisons are performed in UTC; dates and clock times travel as strings
// ("YYYY-MM-DD", "HH:MM") formatted by the database.
type BookingRepo struct{ db *sql.DB }

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span several repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, company_id, boat_id, customer_id, reference, customer_name, customer_email,
	DATE_FORMAT(booking_date,'%Y-%m-%d'), TIME_FORMAT(start_time,'%H:%i'), TIME_FORMAT(end_time,'%H:%i'),
	passengers, package_type, status, hold_until, total_amount, notes, created_at, updated_at`

func scanBooking(sc interface {
	Scan(dest ...interface{}) error
}) (model.Booking, error) {
	var (
		b          model.Booking
		customerID sql.NullInt64
		holdUntil  sql.NullTime
		notes      sql.NullString
	)
	err := sc.Scan(&b.ID, &b.CompanyID, &b.BoatID, &customerID, &b.Reference, &b.CustomerName, &b.CustomerEmail,
		&b.BookingDate, &b.StartTime, &b.EndTime,
		&b.Passengers, &b.PackageType, &b.Status, &holdUntil, &b.TotalAmount, &notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return b, err
	}
	if customerID.Valid {
		cid := uint64(customerID.Int64)
		b.CustomerID = &cid
	}
	if holdUntil.Valid {
		hu := holdUntil.Time.UTC()
		b.HoldUntil = &hu
	}
	if notes.Valid {
		n := notes.String
		b.Notes = &n
	}
	return b, nil
}

// ExpireHolds is the tenant-wide sweep run best-effort before booking-list
// and calendar reads: every pending_hold row whose deadline has passed is
// flipped to cancelled.  Returns the number of rows swept.
func (r *BookingRepo) ExpireHolds(ctx context.Context, companyID uint64, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status='cancelled', hold_until=NULL
		 WHERE company_id=? AND status='pending_hold' AND hold_until IS NOT NULL AND hold_until <= ?`,
		companyID, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ExpireHoldsForBoatTx is the narrowed sweep run inside the booking-creation
// and reschedule transactions, restricted to the candidate boat and date so
// the write lock footprint stays small.
func (r *BookingRepo) ExpireHoldsForBoatTx(ctx context.Context, tx *sql.Tx, companyID, boatID uint64, date string, now time.Time) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status='cancelled', hold_until=NULL
		 WHERE company_id=? AND boat_id=? AND booking_date=? AND status='pending_hold'
		   AND hold_until IS NOT NULL AND hold_until <= ?`,
		companyID, boatID, date, now.UTC())
	return err
}

// slotQuery loads the bookings occupying a boat on a date in the shape the
// pure conflict predicate consumes.  The FOR UPDATE variant locks the rows
// so two concurrent booking attempts for the same slot serialize on the
// database rather than racing each other.
const slotQuery = `SELECT id, status, TIME_FORMAT(start_time,'%H:%i'), TIME_FORMAT(end_time,'%H:%i')
	FROM bookings
	WHERE company_id=? AND boat_id=? AND booking_date=? AND status NOT IN ('cancelled','no_show')`

func scanSlots(rows *sql.Rows) ([]schedule.BookingSlot, error) {
	defer rows.Close()
	slots := make([]schedule.BookingSlot, 0)
	for rows.Next() {
		var (
			s          schedule.BookingSlot
			start, end string
		)
		if err := rows.Scan(&s.ID, &s.Status, &start, &end); err != nil {
			return nil, err
		}
		iv, err := schedule.ParseInterval(start, end)
		if err != nil {
			return nil, err
		}
		s.Interval = iv
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// SlotsForBoatDateTx returns the boat's live bookings for a date under a
// write lock.  Call inside the transaction that will insert or move a
// booking.
func (r *BookingRepo) SlotsForBoatDateTx(ctx context.Context, tx *sql.Tx, companyID, boatID uint64, date string) ([]schedule.BookingSlot, error) {
	rows, err := tx.QueryContext(ctx, slotQuery+" FOR UPDATE", companyID, boatID, date)
	if err != nil {
		return nil, err
	}
	return scanSlots(rows)
}

// SlotsForBoatDate is the lock-free variant used by the read-only
// availability endpoint.
func (r *BookingRepo) SlotsForBoatDate(ctx context.Context, companyID, boatID uint64, date string) ([]schedule.BookingSlot, error) {
	rows, err := r.db.QueryContext(ctx, slotQuery, companyID, boatID, date)
	if err != nil {
		return nil, err
	}
	return scanSlots(rows)
}

// CreateTx inserts a new booking within the provided transaction and reads
// the full row back to populate generated fields.  The caller must commit
// or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	var holdUntil interface{}
	if b.HoldUntil != nil {
		holdUntil = b.HoldUntil.UTC()
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (company_id, boat_id, customer_id, reference, customer_name, customer_email,
			booking_date, start_time, end_time, passengers, package_type, status, hold_until, total_amount, notes)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.CompanyID, b.BoatID, b.CustomerID, b.Reference, b.CustomerName, b.CustomerEmail,
		b.BookingDate, b.StartTime, b.EndTime, b.Passengers, b.PackageType, b.Status, holdUntil, b.TotalAmount, b.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	got, err := scanBooking(tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=?", b.ID))
	if err != nil {
		return err
	}
	*b = got
	return nil
}

// GetByID fetches a booking within the tenant; ErrNotFound when absent.
func (r *BookingRepo) GetByID(ctx context.Context, companyID, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? AND company_id=? LIMIT 1", id, companyID))
	if err == sql.ErrNoRows {
		return b, ErrNotFound
	}
	return b, err
}

// GetByIDTx is GetByID under the caller's transaction with a write lock on
// the row.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, companyID, id uint64) (model.Booking, error) {
	b, err := scanBooking(tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? AND company_id=? LIMIT 1 FOR UPDATE", id, companyID))
	if err == sql.ErrNoRows {
		return b, ErrNotFound
	}
	return b, err
}

// ListRange returns the tenant's bookings with booking_date in [from, to],
// ordered by date and start time.  Callers run the sweep first so expired
// holds read as cancelled.
func (r *BookingRepo) ListRange(ctx context.Context, companyID uint64, from, to string) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE company_id=? AND booking_date BETWEEN ? AND ?
		 ORDER BY booking_date, start_time`,
		companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByCustomer returns a customer's own bookings, newest first.
func (r *BookingRepo) ListByCustomer(ctx context.Context, companyID, customerID uint64) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE company_id=? AND customer_id=?
		 ORDER BY created_at DESC`,
		companyID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatusTx sets the lifecycle status within a transaction.  Confirming
// or cancelling clears hold_until, which keeps the pending_hold invariant: a
// non-null deadline exists only while the booking is pending.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, companyID, id uint64, status string) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status=?, hold_until=NULL WHERE id=? AND company_id=?",
		status, id, companyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// RescheduleTx moves a booking to a new date/interval within a transaction.
// The availability predicate must have been evaluated under the same
// transaction before calling.
func (r *BookingRepo) RescheduleTx(ctx context.Context, tx *sql.Tx, companyID, id uint64, date, start, end string) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE bookings SET booking_date=?, start_time=?, end_time=? WHERE id=? AND company_id=?",
		date, start, end, id, companyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
