package model

import "time"

// Payment transaction kinds and states.
const (
	PaymentDeposit = "deposit"
	PaymentFull    = "full"
	PaymentRefund  = "refund"

	PaymentSucceeded = "succeeded"
	PaymentPending   = "pending"
	PaymentFailed    = "failed"
)

// PaymentTransaction records money movement against a booking.  A succeeded
// deposit or full payment confirms the booking in the same transaction.
// ProviderRef correlates the row with the external checkout provider.
//
// Fields:
//  ID          – primary key identifier.
//  CompanyID   – tenant scope.
//  BookingID   – booking being paid.
//  Kind        – deposit, full or refund.
//  Amount      – transaction amount.
//  Status      – succeeded, pending or failed.
//  ProviderRef – external payment/checkout reference (nullable).
//  CreatedAt   – creation timestamp.
type PaymentTransaction struct {
	ID          uint64    // payment_transactions.id
	CompanyID   uint64    // payment_transactions.company_id
	BookingID   uint64    // payment_transactions.booking_id
	Kind        string    // payment_transactions.kind
	Amount      float64   // payment_transactions.amount
	Status      string    // payment_transactions.status
	ProviderRef *string   // payment_transactions.provider_ref (nullable)
	CreatedAt   time.Time // payment_transactions.created_at
}
