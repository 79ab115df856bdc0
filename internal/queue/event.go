// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is confirmed, either by
// staff or by a successful payment.  It carries enough for downstream
// consumers to write a notification and send the confirmation email without
// querying the primary database.
type BookingConfirmedEvent struct {
	BookingID     uint64  `json:"booking_id"`
	CompanyID     uint64  `json:"company_id"`
	CustomerID    *uint64 `json:"customer_id,omitempty"`
	Reference     string  `json:"reference"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	BoatName      string  `json:"boat_name"`
	BookingDate   string  `json:"booking_date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Passengers    int     `json:"passengers"`
	TotalAmount   float64 `json:"total_amount"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
