package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/harborline/charter-booking/internal/schedule"
)

// getUserID extracts the authenticated user id placed in the context by the
// JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getCompanyID extracts the tenant id from the context.  Every protected
// handler scopes its queries to this value.
func getCompanyID(c echo.Context) (uint64, error) {
	switch t := c.Get("company_id").(type) {
	case uint64:
		return t, nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	}
	return 0, errors.New("invalid company_id in context")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parseSlot validates a date plus start/end clock pair and returns the
// parsed interval.  Dates travel as "YYYY-MM-DD", clock times as "HH:MM".
func parseSlot(date, start, end string) (schedule.Interval, bool) {
	if !validDate(date) {
		return schedule.Interval{}, false
	}
	iv, err := schedule.ParseInterval(start, end)
	if err != nil || !iv.Valid() {
		return schedule.Interval{}, false
	}
	return iv, true
}

// validDate checks the "YYYY-MM-DD" shape without importing time parsing
// everywhere; the database rejects impossible dates on insert.
func validDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, ch := range s {
		if i == 4 || i == 7 {
			continue
		}
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
