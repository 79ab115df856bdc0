package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in the
// application: strings for identifiers, secrets and URLs, ints for durations
// and costs.  External provider URLs are optional; when empty the matching
// integration degrades to a no-op.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	DBMaxConns     int    // connection pool size (open and idle)
	DBConnLifeMin  int    // max connection lifetime in minutes
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	WeatherAPIURL string // marine-weather API base URL (optional)
	WeatherAPIKey string // marine-weather API key (optional)
	PaymentAPIURL string // payment-link provider base URL (optional)
	PaymentAPIKey string // payment-link provider API key (optional)
	EmailAPIURL   string // transactional-email provider base URL (optional)
	EmailAPIKey   string // transactional-email provider API key (optional)
	EmailFrom     string // sender address for transactional email
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		DBMaxConns:     atoi(getenv("DB_MAX_CONNS", "25")),
		DBConnLifeMin:  atoi(getenv("DB_CONN_LIFETIME_MIN", "30")),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		WeatherAPIURL: os.Getenv("WEATHER_API_URL"),
		WeatherAPIKey: os.Getenv("WEATHER_API_KEY"),
		PaymentAPIURL: os.Getenv("PAYMENT_API_URL"),
		PaymentAPIKey: os.Getenv("PAYMENT_API_KEY"),
		EmailAPIURL:   os.Getenv("EMAIL_API_URL"),
		EmailAPIKey:   os.Getenv("EMAIL_API_KEY"),
		EmailFrom:     getenv("EMAIL_FROM", "bookings@localhost"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
