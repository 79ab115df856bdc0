package main // charter-booking API server entry point

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/harborline/charter-booking/internal/client"
	"github.com/harborline/charter-booking/internal/config"
	"github.com/harborline/charter-booking/internal/database"
	"github.com/harborline/charter-booking/internal/handler"
	"github.com/harborline/charter-booking/internal/metrics"
	"github.com/harborline/charter-booking/internal/middleware"
	"github.com/harborline/charter-booking/internal/queue"
	"github.com/harborline/charter-booking/internal/repository"
	"github.com/harborline/charter-booking/internal/router"
	"github.com/harborline/charter-booking/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	// Redis is optional: without it rate limiting and response caching
	// degrade to pass-through and weather answers skip the cache.
	rdb := config.NewRedisClient()

	// Repositories.
	companies := repository.NewCompanyRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	boats := repository.NewBoatRepo(db)
	bookings := repository.NewBookingRepo(db)
	blocked := repository.NewBlockedSlotRepo(db)
	pricingCfg := repository.NewPricingRepo(db)
	payments := repository.NewPaymentRepo(db)
	notifications := repository.NewNotificationRepo(db)
	waitlist := repository.NewWaitlistRepo(db)

	// Outbound integrations.
	weatherAPI := client.NewWeatherClient(cfg.WeatherAPIURL, cfg.WeatherAPIKey)
	paymentAPI := client.NewPaymentClient(cfg.PaymentAPIURL, cfg.PaymentAPIKey)
	emailAPI := client.NewEmailClient(cfg.EmailAPIURL, cfg.EmailAPIKey)

	collector := metrics.NewCollector("charter")

	// Handlers.
	authH := handler.NewAuthHandler(cfg, companies, users, tokens)
	boatH := handler.NewBoatHandler(boats)
	bookingH := handler.NewBookingHandler(bookings, boats, blocked, pricingCfg, payments, collector)
	availH := handler.NewAvailabilityHandler(bookings, boats, blocked)
	blockedH := handler.NewBlockedSlotHandler(blocked, boats)
	paymentH := handler.NewPaymentHandler(payments, bookings, boats, paymentAPI)
	quoteH := handler.NewQuoteHandler(boats, pricingCfg)
	waitlistH := handler.NewWaitlistHandler(waitlist, boats)
	notificationH := handler.NewNotificationHandler(notifications)
	weatherH := handler.NewWeatherHandler(weatherAPI, rdb)

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator()
	e.Use(echomw.Recover())
	e.Use(collector.Middleware())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, collector)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterStaff(e, boatH, bookingH, blockedH, paymentH, quoteH, waitlistH, cfg.JWTSecret)
	router.RegisterCustomer(e, availH, bookingH, quoteH, waitlistH, notificationH, weatherH,
		config.LoadCacheConfig(), rdb, cfg.JWTSecret)

	// The confirmation consumer runs for the life of the process and
	// reconnects on broker failures.
	consumer := &queue.Consumer{Notifications: notifications, Mailer: emailAPI, EmailFrom: cfg.EmailFrom}
	go func() {
		if err := consumer.Start(); err != nil {
			log.Printf("booking-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
