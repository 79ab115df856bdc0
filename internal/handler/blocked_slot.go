package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harborline/charter-booking/internal/model"
	"github.com/harborline/charter-booking/internal/repository"
	"github.com/harborline/charter-booking/internal/schedule"
)

// BlockedSlotHandler manages maintenance and weather blackouts.  A blackout
// with no boat id applies to the whole fleet.
type BlockedSlotHandler struct {
	Blocked *repository.BlockedSlotRepo
	Boats   *repository.BoatRepo
}

func NewBlockedSlotHandler(bl *repository.BlockedSlotRepo, bo *repository.BoatRepo) *BlockedSlotHandler {
	if bl == nil || bo == nil {
		panic("nil repository passed to NewBlockedSlotHandler")
	}
	return &BlockedSlotHandler{Blocked: bl, Boats: bo}
}

type blockedSlotReq struct {
	BoatID    *uint64 `json:"boat_id"`
	SlotDate  string  `json:"slot_date" validate:"required"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Reason    *string `json:"reason"`
}

type blockedSlotResp struct {
	ID        uint64  `json:"id"`
	BoatID    *uint64 `json:"boat_id,omitempty"`
	SlotDate  string  `json:"slot_date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Reason    *string `json:"reason,omitempty"`
}

func toBlockedSlotResp(s model.BlockedSlot) blockedSlotResp {
	return blockedSlotResp{
		ID:        s.ID,
		BoatID:    s.BoatID,
		SlotDate:  s.SlotDate,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Reason:    s.Reason,
	}
}

// Create adds a blackout.
func (h *BlockedSlotHandler) Create(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req blockedSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}
	iv, ok := parseSlot(req.SlotDate, req.StartTime, req.EndTime)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date or time range"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.BoatID != nil {
		if _, err := h.Boats.GetByID(ctx, companyID, *req.BoatID); err != nil {
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "boat not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}

	s := model.BlockedSlot{
		CompanyID: companyID,
		BoatID:    req.BoatID,
		SlotDate:  req.SlotDate,
		StartTime: schedule.FormatClock(iv.Start),
		EndTime:   schedule.FormatClock(iv.End),
		Reason:    req.Reason,
	}
	id, err := h.Blocked.Create(ctx, &s)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create blocked slot failed"})
	}
	s.ID = id
	return c.JSON(http.StatusCreated, toBlockedSlotResp(s))
}

// List returns the blackouts for one date.
func (h *BlockedSlotHandler) List(c echo.Context) error {
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

	slots, err := h.Blocked.ListByDate(ctx, companyID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]blockedSlotResp, 0, len(slots))
	for _, s := range slots {
		out = append(out, toBlockedSlotResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"blocked_slots": out})
}

// Delete removes a blackout.
func (h *BlockedSlotHandler) Delete(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid blocked slot id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Blocked.Delete(ctx, companyID, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "blocked slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete blocked slot failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
