// Package metrics wraps Prometheus collectors for the HTTP surface and the
// booking lifecycle.  A private registry keeps the scrape output limited to
// what this service registers.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service's Prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge

	bookingsCreated prometheus.Counter
	holdsExpired    prometheus.Counter
	conflictsDenied prometheus.Counter
}

// NewCollector creates and registers the service metrics under the given
// namespace.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "charter"
	}

	c := &Collector{registry: prometheus.NewRegistry()}

	c.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)
	c.httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
		},
		[]string{"method", "route"},
	)
	c.httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "in_flight_requests",
		Help:      "Requests currently being served",
	})

	c.bookingsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "booking",
		Name:      "created_total",
		Help:      "Bookings successfully created",
	})
	c.holdsExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "booking",
		Name:      "holds_expired_total",
		Help:      "Pending holds flipped to cancelled by the sweep",
	})
	c.conflictsDenied = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "booking",
		Name:      "conflicts_denied_total",
		Help:      "Booking attempts rejected by the availability check",
	})

	c.registry.MustRegister(
		c.httpRequests, c.httpDuration, c.httpInFlight,
		c.bookingsCreated, c.holdsExpired, c.conflictsDenied,
	)
	return c
}

// Middleware records request count, latency and in-flight gauge for every
// request, labelled by the registered route pattern rather than the raw path
// so IDs do not explode cardinality.
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			start := time.Now()
			c.httpInFlight.Inc()
			defer c.httpInFlight.Dec()

			err := next(ec)

			route := ec.Path()
			if route == "" {
				route = ec.Request().URL.Path
			}
			method := ec.Request().Method
			status := ec.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			c.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// BookingCreated increments the created-bookings counter.
func (c *Collector) BookingCreated() { c.bookingsCreated.Inc() }

// HoldsExpired adds the count of holds a sweep cancelled.
func (c *Collector) HoldsExpired(n int64) {
	if n > 0 {
		c.holdsExpired.Add(float64(n))
	}
}

// ConflictDenied increments the availability-rejection counter.
func (c *Collector) ConflictDenied() { c.conflictsDenied.Inc() }

// Handler exposes the registry for scraping at /metrics.
func (c *Collector) Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	return func(ec echo.Context) error {
		h.ServeHTTP(ec.Response(), ec.Request())
		return nil
	}
}
