package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harborline/charter-booking/internal/repository"
	"github.com/harborline/charter-booking/internal/schedule"
)

// AvailabilityHandler answers the read-only scheduling questions: is this
// slot free, and which boats are free for it.  Reads use the lock-free slot
// queries; the write paths re-evaluate the same predicate under row locks,
// so a stale read here can never cause a double booking.
type AvailabilityHandler struct {
	Bookings *repository.BookingRepo
	Boats    *repository.BoatRepo
	Blocked  *repository.BlockedSlotRepo
}

func NewAvailabilityHandler(bk *repository.BookingRepo, bo *repository.BoatRepo, bl *repository.BlockedSlotRepo) *AvailabilityHandler {
	if bk == nil || bo == nil || bl == nil {
		panic("nil repository passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Bookings: bk, Boats: bo, Blocked: bl}
}

// Check handles GET /v1/availability?boat_id=&date=&start=&end=[&exclude_booking_id=].
func (h *AvailabilityHandler) Check(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	boatID, err := strconv.ParseUint(c.QueryParam("boat_id"), 10, 64)
	if err != nil || boatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid boat_id"})
	}
	date := c.QueryParam("date")
	candidate, ok := parseSlot(date, c.QueryParam("start"), c.QueryParam("end"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date or time range"})
	}
	var excludeID uint64
	if raw := c.QueryParam("exclude_booking_id"); raw != "" {
		excludeID, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid exclude_booking_id"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Boats.GetByID(ctx, companyID, boatID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "boat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	available, err := h.slotAvailable(ctx, companyID, boatID, date, candidate, excludeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"boat_id":   boatID,
		"date":      date,
		"start":     schedule.FormatClock(candidate.Start),
		"end":       schedule.FormatClock(candidate.End),
		"available": available,
	})
}

// AvailableBoats handles GET /v1/availability/boats?date=&start=&end=: the
// active boats free for the requested slot.
func (h *AvailabilityHandler) AvailableBoats(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	date := c.QueryParam("date")
	candidate, ok := parseSlot(date, c.QueryParam("start"), c.QueryParam("end"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date or time range"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	boats, err := h.Boats.ListByCompany(ctx, companyID, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	out := make([]boatResp, 0, len(boats))
	for _, b := range boats {
		free, err := h.slotAvailable(ctx, companyID, b.ID, date, candidate, 0)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if free {
			out = append(out, toBoatResp(b))
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "boats": out})
}

func (h *AvailabilityHandler) slotAvailable(ctx context.Context, companyID, boatID uint64, date string, candidate schedule.Interval, excludeID uint64) (bool, error) {
	slots, err := h.Bookings.SlotsForBoatDate(ctx, companyID, boatID, date)
	if err != nil {
		return false, err
	}
	spans, err := h.Blocked.SpansForBoatDate(ctx, companyID, boatID, date)
	if err != nil {
		return false, err
	}
	return schedule.Available(candidate, boatID, slots, spans, excludeID), nil
}
