package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/harborline/charter-booking/internal/config"
)

func cacheTestContext(companyID uint64, target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/availability")
	c.Set("user_id", uint64(1))
	c.Set("company_id", companyID)
	return c
}

func TestCacheKeySeparatesTenants(t *testing.T) {
	cfg := config.CacheConfig{KeyStrategy: "route_query", Prefix: "cache"}
	target := "/v1/availability?boat_id=7&date=2025-06-01&start=10:00&end=12:00"

	keyA := cacheKeyFrom(cfg, cacheTestContext(1, target))
	keyB := cacheKeyFrom(cfg, cacheTestContext(2, target))
	assert.NotEqual(t, keyA, keyB)

	again := cacheKeyFrom(cfg, cacheTestContext(1, target))
	assert.Equal(t, keyA, again)
}

func TestCacheKeyDistinguishesQueries(t *testing.T) {
	cfg := config.CacheConfig{KeyStrategy: "route_query", Prefix: "cache"}

	a := cacheKeyFrom(cfg, cacheTestContext(1, "/v1/availability?date=2025-06-01"))
	b := cacheKeyFrom(cfg, cacheTestContext(1, "/v1/availability?date=2025-06-02"))
	assert.NotEqual(t, a, b)
}

func TestCaptureWriterFlagsTruncation(t *testing.T) {
	cw := &captureWriter{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK, limit: 8}
	_, err := cw.Write([]byte("0123456789abcdef"))
	assert.NoError(t, err)
	assert.True(t, cw.truncated())
	assert.Equal(t, 8, cw.buf.Len())

	small := &captureWriter{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK, limit: 64}
	_, err = small.Write([]byte("short body"))
	assert.NoError(t, err)
	assert.False(t, small.truncated())
	assert.Equal(t, "short body", small.buf.String())
}
