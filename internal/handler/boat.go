package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harborline/charter-booking/internal/model"
	"github.com/harborline/charter-booking/internal/repository"
)

// BoatHandler exposes fleet management for staff.
type BoatHandler struct {
	Boats *repository.BoatRepo
}

func NewBoatHandler(b *repository.BoatRepo) *BoatHandler {
	if b == nil {
		panic("nil repository passed to NewBoatHandler")
	}
	return &BoatHandler{Boats: b}
}

type boatReq struct {
	Name          string  `json:"name" validate:"required,min=1,max=120"`
	Description   *string `json:"description"`
	Capacity      uint32  `json:"capacity" validate:"required,min=1"`
	LitresPerHour float64 `json:"litres_per_hour" validate:"gte=0"`
	HourlyRate    float64 `json:"hourly_rate" validate:"gte=0"`
	IsActive      *bool   `json:"is_active"`
}

type boatResp struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	Capacity      uint32  `json:"capacity"`
	LitresPerHour float64 `json:"litres_per_hour"`
	HourlyRate    float64 `json:"hourly_rate"`
	IsActive      bool    `json:"is_active"`
}

func toBoatResp(b model.Boat) boatResp {
	return boatResp{
		ID:            b.ID,
		Name:          b.Name,
		Description:   b.Description,
		Capacity:      b.Capacity,
		LitresPerHour: b.LitresPerHour,
		HourlyRate:    b.HourlyRate,
		IsActive:      b.IsActive,
	}
}

// Create adds a boat to the tenant's fleet.
func (h *BoatHandler) Create(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req boatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}

	b := model.Boat{
		CompanyID:     companyID,
		Name:          req.Name,
		Description:   req.Description,
		Capacity:      req.Capacity,
		LitresPerHour: req.LitresPerHour,
		HourlyRate:    req.HourlyRate,
		IsActive:      true,
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Boats.Create(ctx, &b)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "boat name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create boat failed"})
	}
	b.ID = id
	return c.JSON(http.StatusCreated, toBoatResp(b))
}

// List returns the tenant's boats.  ?active=true limits to bookable boats.
func (h *BoatHandler) List(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	activeOnly := c.QueryParam("active") == "true"

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	boats, err := h.Boats.ListByCompany(ctx, companyID, activeOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]boatResp, 0, len(boats))
	for _, b := range boats {
		out = append(out, toBoatResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"boats": out})
}

// Get returns a single boat.
func (h *BoatHandler) Get(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid boat id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Boats.GetByID(ctx, companyID, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "boat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toBoatResp(b))
}

// Update replaces a boat's attributes.
func (h *BoatHandler) Update(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid boat id"})
	}

	var req boatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Boats.GetByID(ctx, companyID, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "boat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	b.Name = req.Name
	b.Description = req.Description
	b.Capacity = req.Capacity
	b.LitresPerHour = req.LitresPerHour
	b.HourlyRate = req.HourlyRate
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := h.Boats.Update(ctx, &b); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "boat not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "boat name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update boat failed"})
	}
	return c.JSON(http.StatusOK, toBoatResp(b))
}

// Delete removes a boat.  Only admin and manager routes reach this handler;
// a boat with bookings cannot be deleted.
func (h *BoatHandler) Delete(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid boat id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Boats.Delete(ctx, companyID, id); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "boat not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "boat has bookings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete boat failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
