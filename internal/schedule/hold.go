package schedule

import "time"

// Booking lifecycle states.  A booking is created as StatusPendingHold with a
// hold deadline, becomes StatusConfirmed on payment or manual confirmation,
// and is flipped to StatusCancelled by the sweep once the deadline passes
// unpaid.  StatusCompleted and StatusNoShow are terminal states set after the
// charter date.
const (
	StatusPendingHold = "pending_hold"
	StatusConfirmed   = "confirmed"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusNoShow      = "no_show"
)

// HoldDuration is how long an unpaid booking keeps its slot.
const HoldDuration = 15 * time.Minute

// HoldDeadline returns the hold_until value for a booking created at the
// given instant.
func HoldDeadline(createdAt time.Time) time.Time {
	return createdAt.UTC().Add(HoldDuration)
}

// HoldExpired reports whether a booking's hold has lapsed at the given
// instant.  Only pending_hold rows with a deadline can expire; every other
// status is unaffected by the clock.
func HoldExpired(status string, holdUntil *time.Time, now time.Time) bool {
	if status != StatusPendingHold || holdUntil == nil {
		return false
	}
	return !holdUntil.After(now)
}

// EffectiveStatus maps stored state plus a clock value to the status the
// sweep would produce.  Read paths use it so an expired hold reads as
// cancelled even when the sweep has not yet caught up; a missed sweep only
// delays visibility, never availability, because the conflict check runs at
// write time regardless.
func EffectiveStatus(status string, holdUntil *time.Time, now time.Time) string {
	if HoldExpired(status, holdUntil, now) {
		return StatusCancelled
	}
	return status
}

// ValidStatus reports whether s is one of the booking lifecycle states.
func ValidStatus(s string) bool {
	switch s {
	case StatusPendingHold, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether a booking in this status can no longer change.
func Terminal(s string) bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}
