package repository

import (
	"context"
	"database/sql"

	"github.com/harborline/charter-booking/internal/model"
	"github.com/harborline/charter-booking/internal/schedule"
)

// BlockedSlotRepo persists maintenance/weather blackout intervals.  A row
// with a NULL boat_id applies to the tenant's whole fleet.
type BlockedSlotRepo struct{ DB *sql.DB }

func NewBlockedSlotRepo(db *sql.DB) *BlockedSlotRepo { return &BlockedSlotRepo{DB: db} }

const blockedColumns = `id, company_id, boat_id, DATE_FORMAT(slot_date,'%Y-%m-%d'),
	TIME_FORMAT(start_time,'%H:%i'), TIME_FORMAT(end_time,'%H:%i'), reason, created_at`

func scanBlocked(sc interface {
	Scan(dest ...interface{}) error
}) (model.BlockedSlot, error) {
	var (
		s      model.BlockedSlot
		boatID sql.NullInt64
		reason sql.NullString
	)
	err := sc.Scan(&s.ID, &s.CompanyID, &boatID, &s.SlotDate, &s.StartTime, &s.EndTime, &reason, &s.CreatedAt)
	if err != nil {
		return s, err
	}
	if boatID.Valid {
		b := uint64(boatID.Int64)
		s.BoatID = &b
	}
	if reason.Valid {
		r := reason.String
		s.Reason = &r
	}
	return s, nil
}

// Create inserts a blackout row and returns its ID.
func (r *BlockedSlotRepo) Create(ctx context.Context, s *model.BlockedSlot) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO blocked_slots (company_id, boat_id, slot_date, start_time, end_time, reason)
		 VALUES (?,?,?,?,?,?)`,
		s.CompanyID, s.BoatID, s.SlotDate, s.StartTime, s.EndTime, s.Reason)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByDate returns every blackout of the tenant on a date.
func (r *BlockedSlotRepo) ListByDate(ctx context.Context, companyID uint64, date string) ([]model.BlockedSlot, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+blockedColumns+" FROM blocked_slots WHERE company_id=? AND slot_date=? ORDER BY start_time",
		companyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.BlockedSlot, 0)
	for rows.Next() {
		s, err := scanBlocked(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// spanQuery loads blackouts relevant to one boat on one date (boat-specific
// rows plus fleet-wide rows) in the shape the conflict predicate consumes.
const spanQuery = `SELECT id, boat_id, TIME_FORMAT(start_time,'%H:%i'), TIME_FORMAT(end_time,'%H:%i')
	FROM blocked_slots
	WHERE company_id=? AND slot_date=? AND (boat_id=? OR boat_id IS NULL)`

func scanSpans(rows *sql.Rows) ([]schedule.BlockedSpan, error) {
	defer rows.Close()
	spans := make([]schedule.BlockedSpan, 0)
	for rows.Next() {
		var (
			s          schedule.BlockedSpan
			boatID     sql.NullInt64
			start, end string
		)
		if err := rows.Scan(&s.ID, &boatID, &start, &end); err != nil {
			return nil, err
		}
		if boatID.Valid {
			b := uint64(boatID.Int64)
			s.BoatID = &b
		}
		iv, err := schedule.ParseInterval(start, end)
		if err != nil {
			return nil, err
		}
		s.Interval = iv
		spans = append(spans, s)
	}
	return spans, rows.Err()
}

// SpansForBoatDateTx loads the relevant blackouts under the caller's
// transaction, locking them so a concurrent blackout insert cannot slip
// between the check and the booking insert.
func (r *BlockedSlotRepo) SpansForBoatDateTx(ctx context.Context, tx *sql.Tx, companyID, boatID uint64, date string) ([]schedule.BlockedSpan, error) {
	rows, err := tx.QueryContext(ctx, spanQuery+" FOR UPDATE", companyID, date, boatID)
	if err != nil {
		return nil, err
	}
	return scanSpans(rows)
}

// SpansForBoatDate is the lock-free variant for read-only availability
// checks.
func (r *BlockedSlotRepo) SpansForBoatDate(ctx context.Context, companyID, boatID uint64, date string) ([]schedule.BlockedSpan, error) {
	rows, err := r.DB.QueryContext(ctx, spanQuery, companyID, date, boatID)
	if err != nil {
		return nil, err
	}
	return scanSpans(rows)
}

// Delete removes a blackout row within the tenant.
func (r *BlockedSlotRepo) Delete(ctx context.Context, companyID, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM blocked_slots WHERE id=? AND company_id=?", id, companyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
