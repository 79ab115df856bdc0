// Package client wraps the third-party HTTP services the application
// consumes: the marine-weather API, the payment-link provider and the
// transactional email provider.  Each client is constructed from its base
// URL and key; an empty base URL yields a disabled client so local
// development does not require live credentials.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrDisabled is returned by clients constructed without a base URL.
var ErrDisabled = errors.New("client: integration not configured")

// Forecast is the subset of the marine-weather response the booking pages
// display: sea state and wind for go/no-go decisions on a charter day.
type Forecast struct {
	Date          string  `json:"date"`
	TempC         float64 `json:"temp_c"`
	WindSpeedKts  float64 `json:"wind_speed_kts"`
	WindDirection string  `json:"wind_direction"`
	WaveHeightM   float64 `json:"wave_height_m"`
	Summary       string  `json:"summary"`
}

// WeatherClient fetches marine forecasts from the upstream HTTP API.
// Responses are cached by the handler; the client itself is stateless.
type WeatherClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewWeatherClient returns a client for the marine-weather API.  With an
// empty baseURL every call returns ErrDisabled.
func NewWeatherClient(baseURL, apiKey string) *WeatherClient {
	return &WeatherClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Enabled reports whether the upstream API is configured.
func (c *WeatherClient) Enabled() bool { return c.baseURL != "" }

// Forecast fetches the marine forecast for a location and date
// ("YYYY-MM-DD").
func (c *WeatherClient) Forecast(ctx context.Context, lat, lon float64, date string) (Forecast, error) {
	if !c.Enabled() {
		return Forecast{}, ErrDisabled
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("date", date)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/marine/forecast?"+q.Encode(), nil)
	if err != nil {
		return Forecast{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Forecast{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Forecast{}, errors.New("weather API returned non-OK status: " + resp.Status)
	}

	var f Forecast
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return Forecast{}, err
	}
	return f, nil
}
