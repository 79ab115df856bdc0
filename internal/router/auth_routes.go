package router

import (
	"github.com/labstack/echo/v4"

	"github.com/harborline/charter-booking/internal/handler"
	"github.com/harborline/charter-booking/internal/middleware"
	"github.com/harborline/charter-booking/internal/model"
)

// RegisterAuth registers authentication routes.  Unauthenticated token
// operations live under /v1/auth; /v1/me and user administration require a
// valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	// Registration creates a company together with its first admin.
	g.POST("/register", a.RegisterCompany)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access only issues a new
	// access token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a refresh token in the body and needs no JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)

	// User administration is admin-only.
	admin := e.Group("/v1/users",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	admin.POST("", a.CreateUser)
	admin.GET("", a.ListUsers)
}
