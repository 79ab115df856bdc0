package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/harborline/charter-booking/internal/config"
	"github.com/harborline/charter-booking/internal/handler"
	"github.com/harborline/charter-booking/internal/middleware"
	"github.com/harborline/charter-booking/internal/model"
)

// RegisterCustomer registers the self-service surface: availability lookup,
// quoting, booking creation/cancellation, the waitlist and notifications.
// All roles may read availability and quotes; booking writes go through the
// same handlers as the staff surface with the customer tied to the row.
func RegisterCustomer(e *echo.Echo, avail *handler.AvailabilityHandler, bookings *handler.BookingHandler, quotes *handler.QuoteHandler, waitlist *handler.WaitlistHandler, notifications *handler.NotificationHandler, weather *handler.WeatherHandler, cacheCfg config.CacheConfig, rdb *redis.Client, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff, model.RoleCustomer),
	)

	// Availability and weather are cacheable reads.
	cached := g.Group("", middleware.NewRedisCache(cacheCfg, rdb))
	cached.GET("/availability", avail.Check)
	cached.GET("/availability/boats", avail.AvailableBoats)
	cached.GET("/weather", weather.Forecast)

	g.POST("/quotes", quotes.Quote)

	// Customers create their own bookings and can cancel them; staff-only
	// transitions stay on the staff router.
	customer := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	)
	customer.POST("/my-bookings", bookings.Create)
	customer.GET("/my-bookings", bookings.MyBookings)
	customer.GET("/my-bookings/:id", bookings.Get)
	customer.POST("/my-bookings/:id/cancel", bookings.Cancel)

	customer.POST("/waitlist", waitlist.Join)

	g.GET("/notifications", notifications.List)
	g.POST("/notifications/:id/read", notifications.MarkRead)
}
