package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/harborline/charter-booking/internal/client"
	"github.com/harborline/charter-booking/internal/config"
)

// WeatherHandler proxies the marine-weather API with a Redis cache in
// front.  The upstream is metered and forecasts change slowly, so cached
// answers are served for the configured TTL.
type WeatherHandler struct {
	Weather *client.WeatherClient
	Redis   *redis.Client
	TTL     time.Duration
}

func NewWeatherHandler(w *client.WeatherClient, rdb *redis.Client) *WeatherHandler {
	return &WeatherHandler{Weather: w, Redis: rdb, TTL: config.WeatherCacheTTL()}
}

// Forecast handles GET /v1/weather?lat=&lon=&date=.
func (h *WeatherHandler) Forecast(c echo.Context) error {
	lat, errLat := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if errLat != nil || errLon != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coordinates"})
	}
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	if h.Weather == nil || !h.Weather.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "weather not configured"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	key := fmt.Sprintf("weather:%s:%.3f:%.3f", date, lat, lon)
	if h.Redis != nil {
		if bs, err := h.Redis.Get(ctx, key).Bytes(); err == nil {
			var f client.Forecast
			if json.Unmarshal(bs, &f) == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSON(http.StatusOK, f)
			}
		}
	}

	f, err := h.Weather.Forecast(ctx, lat, lon, date)
	if err != nil {
		if errors.Is(err, client.ErrDisabled) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "weather not configured"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "weather provider error"})
	}

	if h.Redis != nil {
		if bs, err := json.Marshal(f); err == nil {
			_ = h.Redis.SetEx(ctx, key, bs, h.TTL).Err()
		}
	}
	c.Response().Header().Set("X-Cache", "MISS")
	return c.JSON(http.StatusOK, f)
}
