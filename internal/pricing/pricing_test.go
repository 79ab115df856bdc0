package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuelCost(t *testing.T) {
	assert.InDelta(t, 120.00, FuelCost(20, 4, 1.5), 1e-9)
	assert.InDelta(t, 34.13, FuelCost(13, 1.5, 1.75), 1e-9) // 34.125 rounds up
	assert.Zero(t, FuelCost(0, 4, 1.5), "no consumption rate configured")
	assert.Zero(t, FuelCost(20, 0, 1.5))
	assert.Zero(t, FuelCost(20, 4, 0), "no fuel price configured")
}

func TestPackageAddonCost(t *testing.T) {
	rates := AddonRates{DrinksPerPerson: 5, FoodPerPerson: 3}

	assert.InDelta(t, 40.00, PackageAddonCost(PackageFull, 5, rates), 1e-9)
	assert.InDelta(t, 25.00, PackageAddonCost(PackageDrinks, 5, rates), 1e-9)
	assert.InDelta(t, 15.00, PackageAddonCost(PackageFood, 5, rates), 1e-9)
	assert.Zero(t, PackageAddonCost(PackageNone, 5, rates))
	assert.Zero(t, PackageAddonCost("", 5, rates))
	assert.Zero(t, PackageAddonCost(PackageFull, 0, rates))
	assert.Zero(t, PackageAddonCost(PackageFull, 5, AddonRates{}), "configuration absent")
}

func TestValidPackage(t *testing.T) {
	for _, p := range []PackageType{"", PackageNone, PackageDrinks, PackageFood, PackageFull} {
		assert.True(t, ValidPackage(p), string(p))
	}
	assert.False(t, ValidPackage("vip"))
}

func TestBuildQuote(t *testing.T) {
	q := BuildQuote(QuoteInput{
		HourlyRate:    150,
		Hours:         4,
		LitresPerHour: 20,
		PricePerLitre: 1.5,
		Passengers:    5,
		Package:       PackageFull,
		Rates:         AddonRates{DrinksPerPerson: 5, FoodPerPerson: 3},
	})
	assert.InDelta(t, 600.00, q.BaseCost, 1e-9)
	assert.InDelta(t, 120.00, q.FuelCost, 1e-9)
	assert.InDelta(t, 40.00, q.AddonCost, 1e-9)
	assert.InDelta(t, 760.00, q.Total, 1e-9)
	assert.Equal(t, "charter_full", q.PackageType)
}

func TestBuildQuoteUnconfiguredTenant(t *testing.T) {
	q := BuildQuote(QuoteInput{Hours: 3, Passengers: 2})
	assert.Zero(t, q.BaseCost)
	assert.Zero(t, q.FuelCost)
	assert.Zero(t, q.AddonCost)
	assert.Zero(t, q.Total)
	assert.Equal(t, "none", q.PackageType)
}
