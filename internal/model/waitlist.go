package model

import "time"

// Waitlist entry states.
const (
	WaitlistWaiting   = "waiting"
	WaitlistConverted = "converted"
	WaitlistExpired   = "expired"
)

// WaitlistEntry is a request to be notified when a full slot frees up.
// Staff convert entries into bookings when a cancellation opens the slot.
type WaitlistEntry struct {
	ID            uint64    // waitlist.id
	CompanyID     uint64    // waitlist.company_id
	BoatID        uint64    // waitlist.boat_id
	CustomerName  string    // waitlist.customer_name
	CustomerEmail string    // waitlist.customer_email
	SlotDate      string    // waitlist.slot_date
	StartTime     string    // waitlist.start_time
	EndTime       string    // waitlist.end_time
	Passengers    uint32    // waitlist.passengers
	Status        string    // waitlist.status
	CreatedAt     time.Time // waitlist.created_at
}
