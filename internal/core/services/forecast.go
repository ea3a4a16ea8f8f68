package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

// Ensure ForecastService implements the interface.
var _ driving.ForecastService = (*ForecastService)(nil)

// DefaultForecastInterval is how often Run refreshes reports when no
// interval is given.
const DefaultForecastInterval = time.Hour

// ForecastService fetches current weather and writes per-country report
// files for the advisor and reporter to consume.
type ForecastService struct {
	weather   driven.WeatherProvider
	geocoder  driven.Geocoder
	reports   driven.ReportStore
	countries []string
	overrides map[string]domain.Coordinates
	now       func() time.Time
}

// NewForecastService creates a new forecast service.
// Empty cfg.Countries means the built-in country list; empty
// cfg.Overrides means the built-in capital overrides.
func NewForecastService(
	weather driven.WeatherProvider,
	geocoder driven.Geocoder,
	reports driven.ReportStore,
	cfg domain.WeatherSettings,
) *ForecastService {
	countries := cfg.Countries
	if len(countries) == 0 {
		countries = domain.Countries()
	}
	overrides := cfg.Overrides
	if len(overrides) == 0 {
		overrides = domain.DefaultCapitalOverrides()
	}
	return &ForecastService{
		weather:   weather,
		geocoder:  geocoder,
		reports:   reports,
		countries: countries,
		overrides: overrides,
		now:       time.Now,
	}
}

// SetClock overrides the report timestamp source. Used by tests.
func (s *ForecastService) SetClock(now func() time.Time) {
	s.now = now
}

// Update fetches current conditions for one country and stores its
// report file.
func (s *ForecastService) Update(ctx context.Context, country string) error {
	country = strings.TrimSpace(country)
	if country == "" {
		return fmt.Errorf("%w: country name is empty", domain.ErrInvalidInput)
	}

	coords, err := s.locate(ctx, country)
	if err != nil {
		return fmt.Errorf("locating %s: %w", country, err)
	}

	obs, err := s.weather.Current(ctx, coords)
	if err != nil {
		return fmt.Errorf("fetching weather for %s: %w", country, err)
	}

	content := domain.FormatReport(obs, s.now())
	if err := s.reports.Save(country, content); err != nil {
		return fmt.Errorf("saving report for %s: %w", country, err)
	}

	logger.Debug("Updated %s: %s, %s", country, obs.Location, obs.Conditions)
	return nil
}

// UpdateAll refreshes every configured country sequentially.
// One country failing must not stop the rest: failures are logged and
// skipped. Only context cancellation aborts the sweep.
func (s *ForecastService) UpdateAll(ctx context.Context) (int, error) {
	logger.Section("Weather Refresh")
	runID := uuid.New().String()
	logger.Info("Refresh %s: updating %d countries", runID, len(s.countries))

	updated := 0
	for _, country := range s.countries {
		if err := ctx.Err(); err != nil {
			logger.Warn("Refresh %s: cancelled after %d countries", runID, updated)
			return updated, err
		}

		if err := s.Update(ctx, country); err != nil {
			logger.Warn("Refresh %s: %s failed: %v", runID, country, err)
			continue
		}
		updated++
	}

	logger.Info("Refresh %s: %d/%d countries updated", runID, updated, len(s.countries))
	return updated, nil
}

// Run refreshes all countries immediately and then on every interval
// tick until the context is cancelled. Cancellation is a clean stop,
// not an error.
func (s *ForecastService) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultForecastInterval
	}
	logger.Info("Forecast loop: refreshing every %s", interval)

	if _, err := s.UpdateAll(ctx); err != nil {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Forecast loop: stopping")
			return nil
		case <-ticker.C:
			if _, err := s.UpdateAll(ctx); err != nil {
				return nil
			}
		}
	}
}

// locate resolves a country to coordinates, consulting the override
// table before the geocoder. Overrides exist for countries whose names
// geocode ambiguously (rivers, states, island groups).
func (s *ForecastService) locate(ctx context.Context, country string) (domain.Coordinates, error) {
	if coords, ok := s.overrides[strings.ToLower(country)]; ok {
		logger.Debug("Using coordinate override for %s", country)
		return coords, nil
	}
	return s.geocoder.Lookup(ctx, country)
}
