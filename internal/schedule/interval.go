// Package schedule contains the pure scheduling rules of the system: the
// closed-open interval overlap predicate used by the availability check and
// the hold-expiry decision for pending bookings.  Nothing in this package
// touches the database; repositories and handlers feed it stored state and a
// clock value so the rules can be verified in isolation.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClock is returned when a time-of-day string cannot be parsed.
var ErrInvalidClock = errors.New("invalid clock value")

// Interval is a [Start, End) time range within a single day, expressed in
// minutes from midnight.  The closed-open convention means two back-to-back
// charters (one ending 12:00, the next starting 12:00) do not conflict.
type Interval struct {
	Start int // minutes from midnight, inclusive
	End   int // minutes from midnight, exclusive
}

// ParseClock converts "HH:MM" (or "HH:MM:SS", as MySQL TIME columns scan) to
// minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight back to "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ParseInterval builds an Interval from two clock strings and validates that
// the range is non-empty.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	iv := Interval{Start: s, End: e}
	if !iv.Valid() {
		return Interval{}, fmt.Errorf("%w: end %q not after start %q", ErrInvalidClock, end, start)
	}
	return iv, nil
}

// Valid reports whether the interval is non-empty.
func (iv Interval) Valid() bool { return iv.Start < iv.End }

// Overlaps implements the closed-open overlap rule:
// start_a < end_b AND end_a > start_b.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

// Duration returns the interval length in hours.
func (iv Interval) Duration() float64 {
	return float64(iv.End-iv.Start) / 60.0
}

// BookingSlot is the slice of a stored booking that the conflict rule needs:
// its identity, lifecycle status and occupied interval.  Repositories map
// rows for one boat and date into this shape.
type BookingSlot struct {
	ID       uint64
	Status   string
	Interval Interval
}

// Blocks reports whether the slot counts against availability.  Cancelled and
// no-show bookings never block a slot.
func (b BookingSlot) Blocks() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// BlockedSpan is a maintenance or weather blackout interval.  A nil BoatID
// applies to every boat of the tenant.
type BlockedSpan struct {
	ID       uint64
	BoatID   *uint64
	Interval Interval
}

// AppliesTo reports whether the blackout affects the given boat.
func (s BlockedSpan) AppliesTo(boatID uint64) bool {
	return s.BoatID == nil || *s.BoatID == boatID
}

// FirstConflict returns the first stored booking that makes the candidate
// interval unavailable, skipping cancelled/no-show rows and the excluded
// booking id (0 means no exclusion, used on create; a reschedule passes the
// booking's own id).  The second return value is false when no booking
// conflicts.
func FirstConflict(candidate Interval, existing []BookingSlot, excludeID uint64) (BookingSlot, bool) {
	for _, b := range existing {
		if b.ID == excludeID {
			continue
		}
		if !b.Blocks() {
			continue
		}
		if candidate.Overlaps(b.Interval) {
			return b, true
		}
	}
	return BookingSlot{}, false
}

// FirstBlackout returns the first blocked span covering the candidate
// interval for the given boat, or false when none applies.
func FirstBlackout(candidate Interval, boatID uint64, spans []BlockedSpan) (BlockedSpan, bool) {
	for _, s := range spans {
		if !s.AppliesTo(boatID) {
			continue
		}
		if candidate.Overlaps(s.Interval) {
			return s, true
		}
	}
	return BlockedSpan{}, false
}

// Available is the full availability predicate of the system: a boat is free
// for the candidate interval iff no blocking booking and no blackout overlaps
// it.  Callers must evaluate it against row state read under a write lock
// when creating or rescheduling a booking.
func Available(candidate Interval, boatID uint64, existing []BookingSlot, spans []BlockedSpan, excludeID uint64) bool {
	if _, hit := FirstConflict(candidate, existing, excludeID); hit {
		return false
	}
	if _, hit := FirstBlackout(candidate, boatID, spans); hit {
		return false
	}
	return true
}
