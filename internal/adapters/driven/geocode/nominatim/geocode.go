// Package nominatim provides a geocoder adapter using the OpenStreetMap
// Nominatim search API.
package nominatim

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
var _ driven.Geocoder = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the application as the Nominatim
	// usage policy requires.
	DefaultUserAgent = "quaero-cli"
)

// Config holds configuration for the Nominatim client.
type Config struct {
	// BaseURL is the API base URL (default: https://nominatim.openstreetmap.org).
	// Can be changed for a self-hosted Nominatim instance.
	BaseURL string

	// UserAgent is sent with every request (default: quaero-cli).
	UserAgent string

	// Timeout is the request timeout (default: 10s).
	Timeout time.Duration
}

// Client resolves place names to coordinates via Nominatim.
// Requests are limited to one per second per the public usage policy.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
}

// searchResult is a single Nominatim search hit. Coordinates arrive as
// decimal strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewClient creates a new Nominatim client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(1), 1),
	}
}

// Lookup returns coordinates for a place name. Only the best match is
// requested.
func (c *Client) Lookup(ctx context.Context, place string) (domain.Coordinates, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, err
	}

	params := url.Values{}
	params.Set("q", place)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/search?"+params.Encode(),
		http.NoBody,
	)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("nominatim error (status %d): failed to read response", resp.StatusCode)
		}
		return domain.Coordinates{}, fmt.Errorf("nominatim error (status %d): %s", resp.StatusCode, string(body))
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode response: %w", err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("%w: %s", domain.ErrLocationNotFound, place)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
