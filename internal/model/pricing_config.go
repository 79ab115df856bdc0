package model

import "time"

// PricingConfig holds the per-tenant numbers the cost calculator looks up:
// the fuel price and the per-person package add-on rates.  Boat-level inputs
// (consumption rate, hourly rate) live on the Boat row.  A company without a
// config row quotes zero for fuel and add-ons.
type PricingConfig struct {
	ID              uint64    // pricing_configs.id
	CompanyID       uint64    // pricing_configs.company_id
	FuelPricePerL   float64   // pricing_configs.fuel_price_per_litre
	DrinksPerPerson float64   // pricing_configs.drinks_per_person
	FoodPerPerson   float64   // pricing_configs.food_per_person
	CreatedAt       time.Time // pricing_configs.created_at
	UpdatedAt       time.Time // pricing_configs.updated_at
}
