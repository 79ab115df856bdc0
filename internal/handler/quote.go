package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harborline/charter-booking/internal/model"
	"github.com/harborline/charter-booking/internal/pricing"
	"github.com/harborline/charter-booking/internal/repository"
	"github.com/harborline/charter-booking/internal/schedule"
)

// QuoteHandler prices prospective charters and manages the tenant's pricing
// configuration.  A company with no configuration row quotes zero for fuel
// and add-ons, never an error.
type QuoteHandler struct {
	Boats   *repository.BoatRepo
	Pricing *repository.PricingRepo
}

func NewQuoteHandler(bo *repository.BoatRepo, pr *repository.PricingRepo) *QuoteHandler {
	if bo == nil || pr == nil {
		panic("nil repository passed to NewQuoteHandler")
	}
	return &QuoteHandler{Boats: bo, Pricing: pr}
}

type quoteReq struct {
	BoatID      uint64 `json:"boat_id" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	Passengers  uint32 `json:"passengers" validate:"required,min=1"`
	PackageType string `json:"package_type"`
}

// Quote handles POST /v1/quotes: itemised price for a prospective charter.
func (h *QuoteHandler) Quote(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req quoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}
	iv, err := schedule.ParseInterval(req.StartTime, req.EndTime)
	if err != nil || !iv.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time range"})
	}
	pkg := pricing.PackageType(strings.ToLower(strings.TrimSpace(req.PackageType)))
	if !pricing.ValidPackage(pkg) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown package type"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	boat, err := h.Boats.GetByID(ctx, companyID, req.BoatID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "boat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	cfg, err := h.Pricing.GetByCompany(ctx, companyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	quote := pricing.BuildQuote(pricing.QuoteInput{
		HourlyRate:    boat.HourlyRate,
		Hours:         iv.Duration(),
		LitresPerHour: boat.LitresPerHour,
		PricePerLitre: cfg.FuelPricePerL,
		Passengers:    int(req.Passengers),
		Package:       pkg,
		Rates:         pricing.AddonRates{DrinksPerPerson: cfg.DrinksPerPerson, FoodPerPerson: cfg.FoodPerPerson},
	})
	return c.JSON(http.StatusOK, quote)
}

type pricingConfigReq struct {
	FuelPricePerL   float64 `json:"fuel_price_per_litre" validate:"gte=0"`
	DrinksPerPerson float64 `json:"drinks_per_person" validate:"gte=0"`
	FoodPerPerson   float64 `json:"food_per_person" validate:"gte=0"`
}

type pricingConfigResp struct {
	FuelPricePerL   float64 `json:"fuel_price_per_litre"`
	DrinksPerPerson float64 `json:"drinks_per_person"`
	FoodPerPerson   float64 `json:"food_per_person"`
}

// GetConfig returns the tenant's pricing configuration (zeroes when unset).
func (h *QuoteHandler) GetConfig(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cfg, err := h.Pricing.GetByCompany(ctx, companyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, pricingConfigResp{
		FuelPricePerL:   cfg.FuelPricePerL,
		DrinksPerPerson: cfg.DrinksPerPerson,
		FoodPerPerson:   cfg.FoodPerPerson,
	})
}

// UpsertConfig creates or replaces the tenant's pricing configuration.
func (h *QuoteHandler) UpsertConfig(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req pricingConfigReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cfg := model.PricingConfig{
		CompanyID:       companyID,
		FuelPricePerL:   req.FuelPricePerL,
		DrinksPerPerson: req.DrinksPerPerson,
		FoodPerPerson:   req.FoodPerPerson,
	}
	if err := h.Pricing.Upsert(ctx, &cfg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save config failed"})
	}
	return c.JSON(http.StatusOK, pricingConfigResp{
		FuelPricePerL:   cfg.FuelPricePerL,
		DrinksPerPerson: cfg.DrinksPerPerson,
		FoodPerPerson:   cfg.FoodPerPerson,
	})
}
