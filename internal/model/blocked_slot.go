package model

import "time"

// BlockedSlot marks an interval during which a boat, or the whole fleet, is
// unavailable for reasons other than an existing booking (maintenance,
// weather blackout).  A nil BoatID applies to every boat of the company.
//
// Fields:
//  ID         – primary key identifier.
//  CompanyID  – tenant that owns the blackout.
//  BoatID     – affected boat, nil for fleet-wide.
//  SlotDate   – blackout date, "YYYY-MM-DD".
//  StartTime  – blackout start, "HH:MM".
//  EndTime    – blackout end, "HH:MM".
//  Reason     – optional human-readable reason.
//  CreatedAt  – creation timestamp.
type BlockedSlot struct {
	ID        uint64    // blocked_slots.id
	CompanyID uint64    // blocked_slots.company_id
	BoatID    *uint64   // blocked_slots.boat_id (nullable, NULL = all boats)
	SlotDate  string    // blocked_slots.slot_date
	StartTime string    // blocked_slots.start_time
	EndTime   string    // blocked_slots.end_time
	Reason    *string   // blocked_slots.reason (nullable)
	CreatedAt time.Time // blocked_slots.created_at
}
