package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/harborline/charter-booking/internal/metrics"
	"github.com/harborline/charter-booking/internal/model"
	"github.com/harborline/charter-booking/internal/pricing"
	"github.com/harborline/charter-booking/internal/queue"
	"github.com/harborline/charter-booking/internal/repository"
	"github.com/harborline/charter-booking/internal/schedule"
	queue_publisher "github.com/harborline/charter-booking/internal/service"
)

// BookingHandler implements the booking lifecycle: creation under a hold,
// confirmation, cancellation, reschedule and the list/calendar reads.  The
// availability predicate runs inside the same transaction as the write it
// guards, with the conflicting rows locked, so two concurrent attempts for
// the same slot serialize on the database.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Boats    *repository.BoatRepo
	Blocked  *repository.BlockedSlotRepo
	Pricing  *repository.PricingRepo
	Payments *repository.PaymentRepo
	Metrics  *metrics.Collector
}

func NewBookingHandler(bk *repository.BookingRepo, bo *repository.BoatRepo, bl *repository.BlockedSlotRepo, pr *repository.PricingRepo, pay *repository.PaymentRepo, m *metrics.Collector) *BookingHandler {
	if bk == nil || bo == nil || bl == nil || pr == nil || pay == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bk, Boats: bo, Blocked: bl, Pricing: pr, Payments: pay, Metrics: m}
}

type createBookingReq struct {
	BoatID        uint64  `json:"boat_id" validate:"required"`
	CustomerName  string  `json:"customer_name" validate:"required,min=1,max=120"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	BookingDate   string  `json:"booking_date" validate:"required"`
	StartTime     string  `json:"start_time" validate:"required"`
	EndTime       string  `json:"end_time" validate:"required"`
	Passengers    uint32  `json:"passengers" validate:"required,min=1"`
	PackageType   string  `json:"package_type"`
	Notes         *string `json:"notes"`
}

type rescheduleReq struct {
	BookingDate string `json:"booking_date" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
}

type bookingResp struct {
	ID            uint64     `json:"id"`
	BoatID        uint64     `json:"boat_id"`
	Reference     string     `json:"reference"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	BookingDate   string     `json:"booking_date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	Passengers    uint32     `json:"passengers"`
	PackageType   string     `json:"package_type"`
	Status        string     `json:"status"`
	HoldUntil     *time.Time `json:"hold_until,omitempty"`
	TotalAmount   float64    `json:"total_amount"`
	Notes         *string    `json:"notes,omitempty"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:            b.ID,
		BoatID:        b.BoatID,
		Reference:     b.Reference,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		BookingDate:   b.BookingDate,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Passengers:    b.Passengers,
		PackageType:   b.PackageType,
		Status:        b.Status,
		HoldUntil:     b.HoldUntil,
		TotalAmount:   b.TotalAmount,
		Notes:         b.Notes,
	}
}

// Create places a booking for a boat slot.  The booking starts as a
// pending_hold with a fifteen-minute deadline; it must be confirmed (by
// staff or by payment) before the deadline or the sweep cancels it.
func (h *BookingHandler) Create(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}
	candidate, ok := parseSlot(req.BookingDate, req.StartTime, req.EndTime)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date or time range"})
	}
	pkg := pricing.PackageType(strings.ToLower(strings.TrimSpace(req.PackageType)))
	if !pricing.ValidPackage(pkg) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown package type"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	boat, err := h.Boats.GetByID(ctx, companyID, req.BoatID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "boat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !boat.IsActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "boat is not accepting bookings"})
	}
	if req.Passengers > boat.Capacity {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passenger count exceeds boat capacity"})
	}

	cfg, err := h.Pricing.GetByCompany(ctx, companyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	quote := pricing.BuildQuote(pricing.QuoteInput{
		HourlyRate:    boat.HourlyRate,
		Hours:         candidate.Duration(),
		LitresPerHour: boat.LitresPerHour,
		PricePerLitre: cfg.FuelPricePerL,
		Passengers:    int(req.Passengers),
		Package:       pkg,
		Rates:         pricing.AddonRates{DrinksPerPerson: cfg.DrinksPerPerson, FoodPerPerson: cfg.FoodPerPerson},
	})

	now := time.Now().UTC()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lapsed holds on this boat/date stop blocking the slot right now
	// rather than waiting for the next list read.
	if err := h.Bookings.ExpireHoldsForBoatTx(ctx, tx, companyID, boat.ID, req.BookingDate, now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sweep holds"})
	}

	slots, err := h.Bookings.SlotsForBoatDateTx(ctx, tx, companyID, boat.ID, req.BookingDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	spans, err := h.Blocked.SpansForBoatDateTx(ctx, tx, companyID, boat.ID, req.BookingDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load blocked slots"})
	}
	if !schedule.Available(candidate, boat.ID, slots, spans, 0) {
		if h.Metrics != nil {
			h.Metrics.ConflictDenied()
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot is not available"})
	}

	holdUntil := schedule.HoldDeadline(now)
	b := model.Booking{
		CompanyID:     companyID,
		BoatID:        boat.ID,
		Reference:     uuid.NewString(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		BookingDate:   req.BookingDate,
		StartTime:     schedule.FormatClock(candidate.Start),
		EndTime:       schedule.FormatClock(candidate.End),
		Passengers:    req.Passengers,
		PackageType:   quote.PackageType,
		Status:        schedule.StatusPendingHold,
		HoldUntil:     &holdUntil,
		TotalAmount:   quote.Total,
		Notes:         req.Notes,
	}
	// Self-served bookings are tied to the customer account; staff entries
	// for walk-ins carry no customer id.
	if role, _ := c.Get("role").(string); role == model.RoleCustomer {
		if uid, err := getUserID(c); err == nil {
			b.CustomerID = &uid
		}
	}

	if err := h.Bookings.CreateTx(ctx, tx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true
	if h.Metrics != nil {
		h.Metrics.BookingCreated()
	}

	resp := toBookingResp(b)
	return c.JSON(http.StatusCreated, echo.Map{"booking": resp, "quote": quote})
}

// Confirm flips a pending_hold booking to confirmed and publishes the
// confirmation event.  A hold that already lapsed is cancelled instead and
// reported as a conflict.
func (h *BookingHandler) Confirm(c echo.Context) error {
	return h.transition(c, schedule.StatusConfirmed)
}

// Cancel aborts a booking.  Money already taken is recorded back as a
// refund transaction in the same database transaction.
func (h *BookingHandler) Cancel(c echo.Context) error {
	return h.transition(c, schedule.StatusCancelled)
}

// Complete marks a confirmed charter as done after the trip.
func (h *BookingHandler) Complete(c echo.Context) error {
	return h.transition(c, schedule.StatusCompleted)
}

// NoShow marks a confirmed charter where the customer never arrived.
func (h *BookingHandler) NoShow(c echo.Context) error {
	return h.transition(c, schedule.StatusNoShow)
}

func (h *BookingHandler) transition(c echo.Context, target string) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	now := time.Now().UTC()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := h.Bookings.GetByIDTx(ctx, tx, companyID, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	// Customers may only transition their own bookings.
	if role, _ := c.Get("role").(string); role == model.RoleCustomer {
		uid, err := getUserID(c)
		if err != nil || b.CustomerID == nil || *b.CustomerID != uid {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}

	// A pending hold whose deadline passed behaves as cancelled no matter
	// when the sweep last ran.
	if schedule.HoldExpired(b.Status, b.HoldUntil, now) {
		if err := h.Bookings.UpdateStatusTx(ctx, tx, companyID, id, schedule.StatusCancelled); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
		if err := tx.Commit(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
		}
		committed = true
		if target == schedule.StatusCancelled {
			b.Status = schedule.StatusCancelled
			b.HoldUntil = nil
			return c.JSON(http.StatusOK, toBookingResp(b))
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "hold expired"})
	}

	if !validTransition(b.Status, target) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
	}

	if err := h.Bookings.UpdateStatusTx(ctx, tx, companyID, id, target); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	if target == schedule.StatusCancelled {
		paid, err := h.Payments.PaidTotal(ctx, tx, companyID, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if paid > 0 {
			refund := model.PaymentTransaction{
				CompanyID: companyID,
				BookingID: id,
				Kind:      model.PaymentRefund,
				Amount:    paid,
				Status:    model.PaymentSucceeded,
			}
			if err := h.Payments.CreateTx(ctx, tx, &refund); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record refund failed"})
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	b.Status = target
	b.HoldUntil = nil

	if target == schedule.StatusConfirmed {
		h.publishConfirmed(ctx, b)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// validTransition encodes the lifecycle: holds confirm or cancel, confirmed
// charters finish as completed, cancelled or no_show.
func validTransition(from, to string) bool {
	switch from {
	case schedule.StatusPendingHold:
		return to == schedule.StatusConfirmed || to == schedule.StatusCancelled
	case schedule.StatusConfirmed:
		return to == schedule.StatusCompleted || to == schedule.StatusCancelled || to == schedule.StatusNoShow
	}
	return false
}

// publishConfirmed emits the confirmation event best-effort; a broker
// outage must not fail the request that confirmed the booking.
func (h *BookingHandler) publishConfirmed(ctx context.Context, b model.Booking) {
	boatName := ""
	if boat, err := h.Boats.GetByID(ctx, b.CompanyID, b.BoatID); err == nil {
		boatName = boat.Name
	}
	ev := queue.BookingConfirmedEvent{
		BookingID:     b.ID,
		CompanyID:     b.CompanyID,
		CustomerID:    b.CustomerID,
		Reference:     b.Reference,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		BoatName:      boatName,
		BookingDate:   b.BookingDate,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Passengers:    int(b.Passengers),
		TotalAmount:   b.TotalAmount,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("booking: publish confirmation for %s failed: %v", b.Reference, err)
	}
}

// Reschedule moves a booking to a new date or time.  The availability
// predicate is re-evaluated under the transaction with the booking itself
// excluded; a blackout on the target slot rejects the move even when no
// other booking conflicts.
func (h *BookingHandler) Reschedule(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	var req rescheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}
	candidate, ok := parseSlot(req.BookingDate, req.StartTime, req.EndTime)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date or time range"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	now := time.Now().UTC()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := h.Bookings.GetByIDTx(ctx, tx, companyID, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if schedule.Terminal(b.Status) || schedule.HoldExpired(b.Status, b.HoldUntil, now) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking can no longer be rescheduled"})
	}

	if err := h.Bookings.ExpireHoldsForBoatTx(ctx, tx, companyID, b.BoatID, req.BookingDate, now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sweep holds"})
	}

	slots, err := h.Bookings.SlotsForBoatDateTx(ctx, tx, companyID, b.BoatID, req.BookingDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	spans, err := h.Blocked.SpansForBoatDateTx(ctx, tx, companyID, b.BoatID, req.BookingDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load blocked slots"})
	}
	if _, blocked := schedule.FirstBlackout(candidate, b.BoatID, spans); blocked {
		if h.Metrics != nil {
			h.Metrics.ConflictDenied()
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot is blocked"})
	}
	if _, clash := schedule.FirstConflict(candidate, slots, b.ID); clash {
		if h.Metrics != nil {
			h.Metrics.ConflictDenied()
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot is not available"})
	}

	newDate := req.BookingDate
	newStart := schedule.FormatClock(candidate.Start)
	newEnd := schedule.FormatClock(candidate.End)
	if err := h.Bookings.RescheduleTx(ctx, tx, companyID, id, newDate, newStart, newEnd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reschedule failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	b.BookingDate = newDate
	b.StartTime = newStart
	b.EndTime = newEnd
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// List returns bookings in a date range for staff.  The hold-expiry sweep
// runs first so lapsed holds already read as cancelled; it is best-effort
// and a sweep failure does not fail the read.
func (h *BookingHandler) List(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	now := time.Now().UTC()
	from := c.QueryParam("from")
	to := c.QueryParam("to")
	if from == "" {
		from = now.Format("2006-01-02")
	}
	if to == "" {
		to = now.AddDate(0, 0, 30).Format("2006-01-02")
	}
	if !validDate(from) || !validDate(to) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date range"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	h.sweep(ctx, companyID, now)

	bookings, err := h.Bookings.ListRange(ctx, companyID, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// Calendar returns a single day's bookings together with the blackout
// spans, which is what the scheduling view renders.
func (h *BookingHandler) Calendar(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	h.sweep(ctx, companyID, time.Now().UTC())

	bookings, err := h.Bookings.ListRange(ctx, companyID, date, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	blocked, err := h.Blocked.ListByDate(ctx, companyID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	spans := make([]blockedSlotResp, 0, len(blocked))
	for _, s := range blocked {
		spans = append(spans, toBlockedSlotResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "bookings": out, "blocked_slots": spans})
}

// Get returns one booking.  Customers can only read their own.
func (h *BookingHandler) Get(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, companyID, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if role, _ := c.Get("role").(string); role == model.RoleCustomer {
		uid, err := getUserID(c)
		if err != nil || b.CustomerID == nil || *b.CustomerID != uid {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}

	// Render the effective status so a lapsed hold never reads as pending
	// even when the sweep has not caught it yet.
	b.Status = schedule.EffectiveStatus(b.Status, b.HoldUntil, time.Now().UTC())
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// MyBookings returns the calling customer's own bookings, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	h.sweep(ctx, companyID, time.Now().UTC())

	bookings, err := h.Bookings.ListByCustomer(ctx, companyID, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

func (h *BookingHandler) sweep(ctx context.Context, companyID uint64, now time.Time) {
	n, err := h.Bookings.ExpireHolds(ctx, companyID, now)
	if err != nil {
		log.Printf("booking: hold sweep failed for company %d: %v", companyID, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.HoldsExpired(n)
	}
}
