package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/harborline/charter-booking/internal/client"
	"github.com/harborline/charter-booking/internal/model"
	"github.com/harborline/charter-booking/internal/queue"
	"github.com/harborline/charter-booking/internal/repository"
	"github.com/harborline/charter-booking/internal/schedule"
	queue_publisher "github.com/harborline/charter-booking/internal/service"
)

// PaymentHandler records money movement against bookings and brokers the
// hosted-checkout provider.  A succeeded deposit or full payment confirms a
// pending booking inside the same database transaction.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
	Bookings *repository.BookingRepo
	Boats    *repository.BoatRepo
	Checkout client.CheckoutLinker
}

func NewPaymentHandler(p *repository.PaymentRepo, bk *repository.BookingRepo, bo *repository.BoatRepo, ch client.CheckoutLinker) *PaymentHandler {
	if p == nil || bk == nil || bo == nil {
		panic("nil repository passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: p, Bookings: bk, Boats: bo, Checkout: ch}
}

type recordPaymentReq struct {
	Kind        string  `json:"kind" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	ProviderRef *string `json:"provider_ref"`
}

type paymentResp struct {
	ID          uint64    `json:"id"`
	BookingID   uint64    `json:"booking_id"`
	Kind        string    `json:"kind"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	ProviderRef *string   `json:"provider_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toPaymentResp(p model.PaymentTransaction) paymentResp {
	return paymentResp{
		ID:          p.ID,
		BookingID:   p.BookingID,
		Kind:        p.Kind,
		Amount:      p.Amount,
		Status:      p.Status,
		ProviderRef: p.ProviderRef,
		CreatedAt:   p.CreatedAt,
	}
}

// Record handles POST /v1/bookings/:id/payments.  Staff record a received
// deposit or full payment; a payment against a live hold confirms the
// booking atomically with the payment row.
func (h *PaymentHandler) Record(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}
	if req.Kind != model.PaymentDeposit && req.Kind != model.PaymentFull {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be deposit or full"})
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

	b, err := h.Bookings.GetByIDTx(ctx, tx, companyID, bookingID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if schedule.HoldExpired(b.Status, b.HoldUntil, now) || schedule.Terminal(b.Status) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not payable"})
	}

	p := model.PaymentTransaction{
		CompanyID:   companyID,
		BookingID:   bookingID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Status:      model.PaymentSucceeded,
		ProviderRef: req.ProviderRef,
	}
	if err := h.Payments.CreateTx(ctx, tx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record payment failed"})
	}

	confirmed := false
	if b.Status == schedule.StatusPendingHold {
		if err := h.Bookings.UpdateStatusTx(ctx, tx, companyID, bookingID, schedule.StatusConfirmed); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm booking failed"})
		}
		confirmed = true
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	if confirmed {
		b.Status = schedule.StatusConfirmed
		b.HoldUntil = nil
		h.publishConfirmed(ctx, b)
	}
	return c.JSON(http.StatusCreated, echo.Map{"payment": toPaymentResp(p), "booking_status": b.Status})
}

// CheckoutLink handles POST /v1/bookings/:id/checkout-link: ask the
// provider for a hosted payment page and record the pending transaction.
func (h *PaymentHandler) CheckoutLink(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()
	now := time.Now().UTC()

	b, err := h.Bookings.GetByID(ctx, companyID, bookingID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if schedule.HoldExpired(b.Status, b.HoldUntil, now) || schedule.Terminal(b.Status) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not payable"})
	}
	if h.Checkout == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "payments not configured"})
	}

	idempotencyKey := uuid.NewString()
	link, err := h.Checkout.CreateCheckoutLink(ctx, client.CheckoutRequest{
		Reference:   b.Reference + ":" + idempotencyKey,
		Amount:      b.TotalAmount,
		Currency:    "EUR",
		Description: "Charter " + b.BookingDate + " " + b.StartTime + "-" + b.EndTime,
		Email:       b.CustomerEmail,
	})
	if err != nil {
		if errors.Is(err, client.ErrDisabled) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "payments not configured"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment provider error"})
	}

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

	ref := link.CheckoutID
	p := model.PaymentTransaction{
		CompanyID:   companyID,
		BookingID:   bookingID,
		Kind:        model.PaymentFull,
		Amount:      b.TotalAmount,
		Status:      model.PaymentPending,
		ProviderRef: &ref,
	}
	if err := h.Payments.CreateTx(ctx, tx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record payment failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{"checkout_url": link.URL, "payment": toPaymentResp(p)})
}

// List returns the payment history of a booking.
func (h *PaymentHandler) List(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	payments, err := h.Payments.ListByBooking(ctx, companyID, bookingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]paymentResp, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": out})
}

func (h *PaymentHandler) publishConfirmed(ctx context.Context, b model.Booking) {
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
		log.Printf("payment: publish confirmation for %s failed: %v", b.Reference, err)
	}
}
