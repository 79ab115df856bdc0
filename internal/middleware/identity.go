package middleware

// identity.go holds helpers shared by the rate-limit and cache middleware.
// Keys are derived per authenticated user so one tenant's traffic cannot
// exhaust another's budget; unauthenticated requests share a "guest" bucket.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// identityKey returns a stable string identifier for the caller.  It prefers
// the user_id set by JWTAuth and falls back to "guest" for public routes.
func identityKey(c echo.Context) string {
	if id, ok := c.Get("user_id").(uint64); ok {
		return strconv.FormatUint(id, 10)
	}
	return "guest"
}

// tenantKey returns the caller's company as a cache-key component.  Cached
// responses on tenant-scoped routes must never cross companies, so the key
// always carries the tenant; unauthenticated routes share "public".
func tenantKey(c echo.Context) string {
	if id, ok := c.Get("company_id").(uint64); ok {
		return strconv.FormatUint(id, 10)
	}
	return "public"
}
