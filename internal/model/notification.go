package model

import "time"

// Notification kinds materialised by the booking-event consumer.
const (
	NotifyBookingConfirmed = "booking_confirmed"
	NotifyBookingCancelled = "booking_cancelled"
)

// Notification is an in-app message for a user, written by the queue
// consumer when booking events arrive.  ReadAt is nil until the user marks
// the notification read.
type Notification struct {
	ID        uint64     // notifications.id
	CompanyID uint64     // notifications.company_id
	UserID    uint64     // notifications.user_id
	Kind      string     // notifications.kind
	Message   string     // notifications.message
	ReadAt    *time.Time // notifications.read_at (nullable)
	CreatedAt time.Time  // notifications.created_at
}
