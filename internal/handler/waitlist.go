package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harborline/charter-booking/internal/model"
	"github.com/harborline/charter-booking/internal/repository"
	"github.com/harborline/charter-booking/internal/schedule"
)

// WaitlistHandler manages requests to be notified when a full slot frees
// up.  Entries are advisory: converting one into a booking goes through the
// normal booking-creation path and its availability check.
type WaitlistHandler struct {
	Waitlist *repository.WaitlistRepo
	Boats    *repository.BoatRepo
}

func NewWaitlistHandler(w *repository.WaitlistRepo, bo *repository.BoatRepo) *WaitlistHandler {
	if w == nil || bo == nil {
		panic("nil repository passed to NewWaitlistHandler")
	}
	return &WaitlistHandler{Waitlist: w, Boats: bo}
}

type waitlistReq struct {
	BoatID        uint64 `json:"boat_id" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"required,min=1,max=120"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	SlotDate      string `json:"slot_date" validate:"required"`
	StartTime     string `json:"start_time" validate:"required"`
	EndTime       string `json:"end_time" validate:"required"`
	Passengers    uint32 `json:"passengers" validate:"required,min=1"`
}

type waitlistResp struct {
	ID            uint64 `json:"id"`
	BoatID        uint64 `json:"boat_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	SlotDate      string `json:"slot_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Passengers    uint32 `json:"passengers"`
	Status        string `json:"status"`
}

func toWaitlistResp(w model.WaitlistEntry) waitlistResp {
	return waitlistResp{
		ID:            w.ID,
		BoatID:        w.BoatID,
		CustomerName:  w.CustomerName,
		CustomerEmail: w.CustomerEmail,
		SlotDate:      w.SlotDate,
		StartTime:     w.StartTime,
		EndTime:       w.EndTime,
		Passengers:    w.Passengers,
		Status:        w.Status,
	}
}

// Join adds a waitlist entry for a slot.
func (h *WaitlistHandler) Join(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req waitlistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}
	iv, ok := parseSlot(req.SlotDate, req.StartTime, req.EndTime)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date or time range"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Boats.GetByID(ctx, companyID, req.BoatID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "boat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	w := model.WaitlistEntry{
		CompanyID:     companyID,
		BoatID:        req.BoatID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		SlotDate:      req.SlotDate,
		StartTime:     schedule.FormatClock(iv.Start),
		EndTime:       schedule.FormatClock(iv.End),
		Passengers:    req.Passengers,
		Status:        model.WaitlistWaiting,
	}
	if err := h.Waitlist.Create(ctx, &w); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create waitlist entry failed"})
	}
	return c.JSON(http.StatusCreated, toWaitlistResp(w))
}

// List returns the waitlist for one date, oldest first.
func (h *WaitlistHandler) List(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	date := c.QueryParam("date")
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Waitlist.ListByDate(ctx, companyID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]waitlistResp, 0, len(entries))
	for _, w := range entries {
		out = append(out, toWaitlistResp(w))
	}
	return c.JSON(http.StatusOK, echo.Map{"waitlist": out})
}

// UpdateStatus handles PATCH /v1/waitlist/:id: staff mark an entry
// converted (after booking the customer in) or expired.
func (h *WaitlistHandler) UpdateStatus(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid waitlist id"})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToLower(strings.TrimSpace(body.Status))
	if status != model.WaitlistConverted && status != model.WaitlistExpired {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be converted or expired"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Waitlist.UpdateStatus(ctx, companyID, id, status); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "waitlist entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}
