package model

import "time"

// Booking is a tenant-scoped charter reservation for one boat on one date.
// It is created in the pending_hold state with hold_until set fifteen
// minutes ahead; the hold-expiry sweep flips lapsed holds to cancelled.
// Start and end times are clock values within BookingDate, compared with
// closed-open semantics, so a charter ending 12:00 does not conflict with
// one starting 12:00.
//
// Invariant: a pending_hold booking always has a non-null HoldUntil; once
// the booking is confirmed or cancelled the value is irrelevant.
//
// Fields:
//  ID            – primary key identifier.
//  CompanyID     – tenant the booking belongs to.
//  BoatID        – boat being chartered.
//  CustomerID    – booking user when self-served (nullable for walk-ins).
//  Reference     – opaque reference code handed to the customer.
//  CustomerName  – contact name.
//  CustomerEmail – contact email for notifications.
//  BookingDate   – charter date, "YYYY-MM-DD".
//  StartTime     – departure clock time, "HH:MM".
//  EndTime       – return clock time, "HH:MM" (after StartTime).
//  Passengers    – passenger count, capped by the boat capacity.
//  PackageType   – add-on package selected (pricing.PackageType values).
//  Status        – lifecycle state (schedule.Status* values).
//  HoldUntil     – hold deadline while pending (nullable).
//  TotalAmount   – quoted total for the charter.
//  Notes         – optional free-form staff notes.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Booking struct {
	ID            uint64     // bookings.id
	CompanyID     uint64     // bookings.company_id
	BoatID        uint64     // bookings.boat_id
	CustomerID    *uint64    // bookings.customer_id (nullable)
	Reference     string     // bookings.reference
	CustomerName  string     // bookings.customer_name
	CustomerEmail string     // bookings.customer_email
	BookingDate   string     // bookings.booking_date
	StartTime     string     // bookings.start_time
	EndTime       string     // bookings.end_time
	Passengers    uint32     // bookings.passengers
	PackageType   string     // bookings.package_type
	Status        string     // bookings.status
	HoldUntil     *time.Time // bookings.hold_until (nullable)
	TotalAmount   float64    // bookings.total_amount
	Notes         *string    // bookings.notes (nullable)
	CreatedAt     time.Time  // bookings.created_at
	UpdatedAt     time.Time  // bookings.updated_at
}
