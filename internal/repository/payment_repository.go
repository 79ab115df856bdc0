package repository

import (
	"context"
	"database/sql"

	"github.com/harborline/charter-booking/internal/model"
)

// PaymentRepo persists payment transactions.  Rows are written inside the
// same transaction that confirms the paid booking.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// CreateTx inserts a payment transaction within the caller's transaction
// and populates the generated ID.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.PaymentTransaction) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO payment_transactions (company_id, booking_id, kind, amount, status, provider_ref)
		 VALUES (?,?,?,?,?,?)`,
		p.CompanyID, p.BookingID, p.Kind, p.Amount, p.Status, p.ProviderRef)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// ListByBooking returns every transaction recorded against a booking,
// oldest first.
func (r *PaymentRepo) ListByBooking(ctx context.Context, companyID, bookingID uint64) ([]model.PaymentTransaction, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, company_id, booking_id, kind, amount, status, provider_ref, created_at
		 FROM payment_transactions WHERE company_id=? AND booking_id=? ORDER BY created_at`,
		companyID, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PaymentTransaction, 0)
	for rows.Next() {
		var (
			p   model.PaymentTransaction
			ref sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.BookingID, &p.Kind, &p.Amount, &p.Status, &ref, &p.CreatedAt); err != nil {
			return nil, err
		}
		if ref.Valid {
			v := ref.String
			p.ProviderRef = &v
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PaidTotal sums the succeeded deposit/full payments for a booking, within
// the caller's transaction.
func (r *PaymentRepo) PaidTotal(ctx context.Context, tx *sql.Tx, companyID, bookingID uint64) (float64, error) {
	var total float64
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount),0) FROM payment_transactions
		 WHERE company_id=? AND booking_id=? AND status='succeeded' AND kind IN ('deposit','full')`,
		companyID, bookingID).Scan(&total)
	return total, err
}
