package model

import "time"

// Company is a tenant of the system.  Every boat, booking, user and
// configuration row carries a company_id and queries are always scoped to
// it, mirroring per-tenant row isolation.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique company name.
//  Timezone  – IANA timezone the tenant schedules charters in.
//  CreatedAt – timestamp when the company was created.
//  UpdatedAt – timestamp of last update.
type Company struct {
	ID        uint64    // companies.id
	Name      string    // companies.name
	Timezone  string    // companies.timezone
	CreatedAt time.Time // companies.created_at
	UpdatedAt time.Time // companies.updated_at
}
