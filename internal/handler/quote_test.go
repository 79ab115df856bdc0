package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/charter-booking/internal/pricing"
	"github.com/harborline/charter-booking/internal/repository"
	"github.com/harborline/charter-booking/internal/utils"
)

func newQuoteContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = utils.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/quotes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(9))
	c.Set("company_id", uint64(42))
	c.Set("role", "staff")
	return c, rec
}

func TestQuoteItemisesChargesFromLookedUpConfig(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("FROM boats").
		WithArgs(uint64(7), uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_id", "name", "description", "capacity", "litres_per_hour", "hourly_rate", "is_active", "created_at", "updated_at",
		}).AddRow(7, 42, "Sea Breeze", nil, 10, 20.0, 100.0, true, now, now))
	mock.ExpectQuery("FROM pricing_configs").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_id", "fuel_price_per_litre", "drinks_per_person", "food_per_person", "created_at", "updated_at",
		}).AddRow(1, 42, 1.5, 5.0, 3.0, now, now))

	h := NewQuoteHandler(repository.NewBoatRepo(db), repository.NewPricingRepo(db))
	c, rec := newQuoteContext(t, `{"boat_id":7,"start_time":"09:00","end_time":"13:00","passengers":5,"package_type":"charter_full"}`)

	require.NoError(t, h.Quote(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var q pricing.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.InDelta(t, 400.00, q.BaseCost, 0.001)
	assert.InDelta(t, 120.00, q.FuelCost, 0.001)
	assert.InDelta(t, 40.00, q.AddonCost, 0.001)
	assert.InDelta(t, 560.00, q.Total, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteWithoutPricingConfigChargesBaseOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("FROM boats").
		WithArgs(uint64(7), uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_id", "name", "description", "capacity", "litres_per_hour", "hourly_rate", "is_active", "created_at", "updated_at",
		}).AddRow(7, 42, "Sea Breeze", nil, 10, 20.0, 100.0, true, now, now))
	mock.ExpectQuery("FROM pricing_configs").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_id", "fuel_price_per_litre", "drinks_per_person", "food_per_person", "created_at", "updated_at",
		}))

	h := NewQuoteHandler(repository.NewBoatRepo(db), repository.NewPricingRepo(db))
	c, rec := newQuoteContext(t, `{"boat_id":7,"start_time":"09:00","end_time":"11:00","passengers":4,"package_type":"charter_full"}`)

	require.NoError(t, h.Quote(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var q pricing.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.InDelta(t, 200.00, q.BaseCost, 0.001)
	assert.InDelta(t, 0.0, q.FuelCost, 0.001)
	assert.InDelta(t, 0.0, q.AddonCost, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRejectsInvalidTimeRange(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewQuoteHandler(repository.NewBoatRepo(db), repository.NewPricingRepo(db))
	c, rec := newQuoteContext(t, `{"boat_id":7,"start_time":"13:00","end_time":"09:00","passengers":5}`)

	require.NoError(t, h.Quote(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
