package driving

import (
	"context"
	"time"
)

// ForecastService fetches current weather and writes per-country report
// files for the advisor and reporter to consume.
type ForecastService interface {
	// Update fetches current conditions for one country and stores its
	// report file.
	Update(ctx context.Context, country string) error

	// UpdateAll refreshes every configured country sequentially.
	// Failures are logged and skipped; the count of successful updates
	// is returned.
	UpdateAll(ctx context.Context) (int, error)

	// Run refreshes all countries immediately and then on every interval
	// tick until the context is cancelled.
	Run(ctx context.Context, interval time.Duration) error
}
