package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/charter-booking/internal/repository"
	"github.com/harborline/charter-booking/internal/utils"
)

var bookingTestColumns = []string{
	"id", "company_id", "boat_id", "customer_id", "reference", "customer_name", "customer_email",
	"booking_date", "start_time", "end_time", "passengers", "package_type", "status",
	"hold_until", "total_amount", "notes", "created_at", "updated_at",
}

func newRescheduleContext(t *testing.T, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = utils.NewValidator()
	req := httptest.NewRequest(http.MethodPut, "/v1/bookings/"+id+"/reschedule", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	c.Set("user_id", uint64(9))
	c.Set("company_id", uint64(42))
	c.Set("role", "staff")
	return c, rec
}

func TestRescheduleIntoBlockedSlotRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id=.* FOR UPDATE").
		WithArgs(uint64(55), uint64(42)).
		WillReturnRows(sqlmock.NewRows(bookingTestColumns).AddRow(
			55, 42, 7, nil, "ref-7f3a", "Alice Marsh", "alice@example.com",
			"2025-06-01", "09:00", "11:00", 4, "none", "confirmed",
			nil, 500.0, nil, now, now))
	mock.ExpectExec("UPDATE bookings SET status='cancelled'").
		WithArgs(uint64(42), uint64(7), "2025-06-02", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM bookings\\s+WHERE company_id=.* FOR UPDATE").
		WithArgs(uint64(42), uint64(7), "2025-06-02").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "start_time", "end_time"}))
	mock.ExpectQuery("FROM blocked_slots.* FOR UPDATE").
		WithArgs(uint64(42), "2025-06-02", uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "boat_id", "start_time", "end_time"}).
			AddRow(3, nil, "10:00", "12:00"))
	mock.ExpectRollback()

	h := NewBookingHandler(
		repository.NewBookingRepo(db),
		repository.NewBoatRepo(db),
		repository.NewBlockedSlotRepo(db),
		repository.NewPricingRepo(db),
		repository.NewPaymentRepo(db),
		nil,
	)
	c, rec := newRescheduleContext(t, "55",
		`{"booking_date":"2025-06-02","start_time":"10:00","end_time":"12:00"}`)

	require.NoError(t, h.Reschedule(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "slot is blocked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRescheduleToFreeSlotSucceeds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id=.* FOR UPDATE").
		WithArgs(uint64(55), uint64(42)).
		WillReturnRows(sqlmock.NewRows(bookingTestColumns).AddRow(
			55, 42, 7, nil, "ref-7f3a", "Alice Marsh", "alice@example.com",
			"2025-06-01", "09:00", "11:00", 4, "none", "confirmed",
			nil, 500.0, nil, now, now))
	mock.ExpectExec("UPDATE bookings SET status='cancelled'").
		WithArgs(uint64(42), uint64(7), "2025-06-02", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM bookings\\s+WHERE company_id=.* FOR UPDATE").
		WithArgs(uint64(42), uint64(7), "2025-06-02").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "start_time", "end_time"}).
			AddRow(55, "confirmed", "09:00", "11:00"))
	mock.ExpectQuery("FROM blocked_slots.* FOR UPDATE").
		WithArgs(uint64(42), "2025-06-02", uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "boat_id", "start_time", "end_time"}))
	mock.ExpectExec("UPDATE bookings SET booking_date=").
		WithArgs("2025-06-02", "10:00", "12:00", uint64(55), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	h := NewBookingHandler(
		repository.NewBookingRepo(db),
		repository.NewBoatRepo(db),
		repository.NewBlockedSlotRepo(db),
		repository.NewPricingRepo(db),
		repository.NewPaymentRepo(db),
		nil,
	)
	c, rec := newRescheduleContext(t, "55",
		`{"booking_date":"2025-06-02","start_time":"10:00","end_time":"12:00"}`)

	require.NoError(t, h.Reschedule(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2025-06-02")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRescheduleCancelledBookingRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id=.* FOR UPDATE").
		WithArgs(uint64(55), uint64(42)).
		WillReturnRows(sqlmock.NewRows(bookingTestColumns).AddRow(
			55, 42, 7, nil, "ref-7f3a", "Alice Marsh", "alice@example.com",
			"2025-06-01", "09:00", "11:00", 4, "none", "cancelled",
			nil, 500.0, nil, now, now))
	mock.ExpectRollback()

	h := NewBookingHandler(
		repository.NewBookingRepo(db),
		repository.NewBoatRepo(db),
		repository.NewBlockedSlotRepo(db),
		repository.NewPricingRepo(db),
		repository.NewPaymentRepo(db),
		nil,
	)
	c, rec := newRescheduleContext(t, "55",
		`{"booking_date":"2025-06-02","start_time":"10:00","end_time":"12:00"}`)

	require.NoError(t, h.Reschedule(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
