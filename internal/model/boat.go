package model

import "time"

// Boat is a charter vessel owned by a company.  Capacity caps the passenger
// count accepted on a booking; the fuel consumption rate feeds the cost
// calculator.
//
// Fields:
//  ID            – primary key identifier.
//  CompanyID     – tenant that owns the boat.
//  Name          – unique boat name per company.
//  Description   – optional description shown to customers.
//  Capacity      – maximum passengers.
//  LitresPerHour – fuel consumption rate used for fuel-cost quotes.
//  HourlyRate    – base charter rate per hour.
//  IsActive      – whether the boat accepts bookings.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Boat struct {
	ID            uint64    // boats.id
	CompanyID     uint64    // boats.company_id
	Name          string    // boats.name
	Description   *string   // boats.description (nullable)
	Capacity      uint32    // boats.capacity
	LitresPerHour float64   // boats.litres_per_hour
	HourlyRate    float64   // boats.hourly_rate
	IsActive      bool      // boats.is_active
	CreatedAt     time.Time // boats.created_at
	UpdatedAt     time.Time // boats.updated_at
}
