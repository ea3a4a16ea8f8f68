package driven

import (
	"context"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// WeatherProvider fetches current conditions for a coordinate pair.
//
// Implementations may include:
//   - OpenWeatherMap (current weather endpoint)
type WeatherProvider interface {
	// Current returns the present observation at the given coordinates.
	// Returns domain.ErrWeatherUnavailable wrapped with detail on API failure.
	Current(ctx context.Context, coords domain.Coordinates) (domain.Observation, error)
}

// Geocoder resolves free-text place names to coordinates.
//
// Implementations may include:
//   - Nominatim (OpenStreetMap)
type Geocoder interface {
	// Lookup returns coordinates for a place name.
	// Returns domain.ErrLocationNotFound when the name resolves to nothing.
	Lookup(ctx context.Context, place string) (domain.Coordinates, error)
}

// ReportStore persists rendered weather report files, one per country.
// Countries are case-insensitive; implementations normalise the name.
type ReportStore interface {
	// Save writes the report content for a country, replacing any
	// previous report.
	Save(country, content string) error

	// Load returns the stored report content for a country.
	// Returns domain.ErrReportNotFound when no report exists.
	Load(country string) (string, error)

	// List returns the countries that currently have a stored report.
	List() ([]string, error)
}
