// Package pricing computes charter costs from a tenant's pricing
// configuration.  All functions are pure: they take looked-up numbers and
// return amounts rounded to two decimals.  Missing configuration never
// produces an error, only a zero cost.
package pricing

import "math"

// PackageType selects which per-person add-on rates apply to a charter.
type PackageType string

const (
	PackageNone    PackageType = "none"
	PackageDrinks  PackageType = "drinks_only"
	PackageFood    PackageType = "food_only"
	PackageFull    PackageType = "charter_full"
)

// ValidPackage reports whether p is a known package type.  The empty string
// is accepted and treated as PackageNone.
func ValidPackage(p PackageType) bool {
	switch p {
	case "", PackageNone, PackageDrinks, PackageFood, PackageFull:
		return true
	}
	return false
}

// AddonRates holds the per-person rates configured by a tenant.  Zero values
// mean the tenant has not configured the add-on, which yields a zero cost.
type AddonRates struct {
	DrinksPerPerson float64
	FoodPerPerson   float64
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FuelCost is consumption rate (litres per hour) times duration (hours)
// times fuel price (per litre), rounded to two decimals.
func FuelCost(litresPerHour, hours, pricePerLitre float64) float64 {
	if litresPerHour <= 0 || hours <= 0 || pricePerLitre <= 0 {
		return 0
	}
	return round2(litresPerHour * hours * pricePerLitre)
}

// PackageAddonCost sums the per-person rates selected by the package type
// and multiplies by the passenger count, rounded to two decimals.
func PackageAddonCost(pkg PackageType, passengers int, rates AddonRates) float64 {
	if passengers <= 0 {
		return 0
	}
	perPerson := 0.0
	switch pkg {
	case PackageDrinks:
		perPerson = rates.DrinksPerPerson
	case PackageFood:
		perPerson = rates.FoodPerPerson
	case PackageFull:
		perPerson = rates.DrinksPerPerson + rates.FoodPerPerson
	default:
		return 0
	}
	if perPerson <= 0 {
		return 0
	}
	return round2(perPerson * float64(passengers))
}

// BaseCost is the hourly charter rate times duration, rounded to two
// decimals.
func BaseCost(hourlyRate, hours float64) float64 {
	if hourlyRate <= 0 || hours <= 0 {
		return 0
	}
	return round2(hourlyRate * hours)
}

// Quote is an itemised price for a prospective charter.
type Quote struct {
	BaseCost    float64 `json:"base_cost"`
	FuelCost    float64 `json:"fuel_cost"`
	AddonCost   float64 `json:"addon_cost"`
	Total       float64 `json:"total"`
	Hours       float64 `json:"hours"`
	Passengers  int     `json:"passengers"`
	PackageType string  `json:"package_type"`
}

// QuoteInput carries the looked-up configuration a quote is built from.
type QuoteInput struct {
	HourlyRate    float64
	Hours         float64
	LitresPerHour float64
	PricePerLitre float64
	Passengers    int
	Package       PackageType
	Rates         AddonRates
}

// BuildQuote assembles the itemised quote.  Each line item is rounded
// independently, matching how the line items are billed.
func BuildQuote(in QuoteInput) Quote {
	pkg := in.Package
	if pkg == "" {
		pkg = PackageNone
	}
	q := Quote{
		BaseCost:    BaseCost(in.HourlyRate, in.Hours),
		FuelCost:    FuelCost(in.LitresPerHour, in.Hours, in.PricePerLitre),
		AddonCost:   PackageAddonCost(pkg, in.Passengers, in.Rates),
		Hours:       in.Hours,
		Passengers:  in.Passengers,
		PackageType: string(pkg),
	}
	q.Total = round2(q.BaseCost + q.FuelCost + q.AddonCost)
	return q
}
