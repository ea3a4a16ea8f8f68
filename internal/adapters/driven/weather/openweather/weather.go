// Package openweather provides a weather provider adapter using the
// OpenWeatherMap current weather API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.WeatherProvider = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerMinute matches the OpenWeatherMap free tier
	// limit of 60 calls per minute.
	DefaultRequestsPerMinute = 60
)

// Config holds configuration for the OpenWeatherMap client.
type Config struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openweathermap.org/data/2.5).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerMinute throttles outgoing calls (default: 60).
	RequestsPerMinute int
}

// Client fetches current conditions from OpenWeatherMap.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
}

// weatherResponse is the OpenWeatherMap current weather response.
// Only the fields the report format needs are decoded.
type weatherResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Message string `json:"message"`
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: Please set OPENWEATHER_API_KEY in .env file",
			domain.ErrNotConfigured)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1),
	}, nil
}

// Current returns the present observation at the given coordinates,
// in metric units.
func (c *Client) Current(ctx context.Context, coords domain.Coordinates) (domain.Observation, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Observation{}, err
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric") // Celsius and m/s

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/weather?"+params.Encode(),
		http.NoBody,
	)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("%w: %w", domain.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("%w: read response: %w",
			domain.ErrWeatherUnavailable, err)
	}

	var weatherResp weatherResponse
	if err := json.Unmarshal(body, &weatherResp); err != nil {
		return domain.Observation{}, fmt.Errorf("%w: decode response: %w",
			domain.ErrWeatherUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		detail := weatherResp.Message
		if detail == "" {
			detail = string(body)
		}
		return domain.Observation{}, fmt.Errorf("%w: openweather error (status %d): %s",
			domain.ErrWeatherUnavailable, resp.StatusCode, detail)
	}

	obs := domain.Observation{
		Location:    weatherResp.Name,
		CountryCode: weatherResp.Sys.Country,
		Temperature: weatherResp.Main.Temp,
		FeelsLike:   weatherResp.Main.FeelsLike,
		Humidity:    weatherResp.Main.Humidity,
		WindSpeed:   weatherResp.Wind.Speed,
	}
	if len(weatherResp.Weather) > 0 {
		obs.Conditions = weatherResp.Weather[0].Description
	}
	return obs, nil
}
