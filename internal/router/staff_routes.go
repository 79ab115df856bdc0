package router

import (
	"github.com/labstack/echo/v4"

	"github.com/harborline/charter-booking/internal/handler"
	"github.com/harborline/charter-booking/internal/middleware"
	"github.com/harborline/charter-booking/internal/model"
)

// RegisterStaff registers the administration surface: fleet management,
// blackouts, the booking lifecycle, payments, pricing and the waitlist.
// All routes require a staff role; destructive fleet operations and pricing
// changes are narrowed to admin and manager.
func RegisterStaff(e *echo.Echo, boats *handler.BoatHandler, bookings *handler.BookingHandler, blocked *handler.BlockedSlotHandler, payments *handler.PaymentHandler, quotes *handler.QuoteHandler, waitlist *handler.WaitlistHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.StaffRoles...),
	)

	// Fleet.
	g.POST("/boats", boats.Create)
	g.GET("/boats", boats.List)
	g.GET("/boats/:id", boats.Get)
	g.PUT("/boats/:id", boats.Update)

	// Only admin and manager may delete a boat.
	mgr := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleManager),
	)
	mgr.DELETE("/boats/:id", boats.Delete)

	// Blackouts (maintenance / weather).
	g.POST("/blocked-slots", blocked.Create)
	g.GET("/blocked-slots", blocked.List)
	mgr.DELETE("/blocked-slots/:id", blocked.Delete)

	// Booking lifecycle.
	g.POST("/bookings", bookings.Create)
	g.GET("/bookings", bookings.List)
	g.GET("/bookings/calendar", bookings.Calendar)
	g.GET("/bookings/:id", bookings.Get)
	g.POST("/bookings/:id/confirm", bookings.Confirm)
	g.POST("/bookings/:id/cancel", bookings.Cancel)
	g.POST("/bookings/:id/complete", bookings.Complete)
	g.POST("/bookings/:id/no-show", bookings.NoShow)
	g.PUT("/bookings/:id/reschedule", bookings.Reschedule)

	// Payments.
	g.POST("/bookings/:id/payments", payments.Record)
	g.POST("/bookings/:id/checkout-link", payments.CheckoutLink)
	g.GET("/bookings/:id/payments", payments.List)

	// Pricing configuration is money-sensitive; reads are open to staff.
	g.GET("/pricing-config", quotes.GetConfig)
	mgr.PUT("/pricing-config", quotes.UpsertConfig)

	// Waitlist administration.
	g.GET("/waitlist", waitlist.List)
	g.PATCH("/waitlist/:id", waitlist.UpdateStatus)
}
