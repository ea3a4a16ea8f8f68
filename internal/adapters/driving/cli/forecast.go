package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
)

var forecastInterval time.Duration

var forecastCmd = &cobra.Command{
	Use:   "forecast [countries...]",
	Short: "Fetch current weather and store report files",
	Long: `Fetches current conditions from OpenWeather and writes one report file
per country for the advisory and report commands to consume.

With country arguments, updates only those countries. Without any, runs
through the configured country list. With --interval, keeps refreshing
the configured list until interrupted.

Requires OPENWEATHER_API_KEY; no LLM credentials are needed.`,
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().DurationVarP(&forecastInterval, "interval", "i", 0, "refresh repeatedly at this interval (e.g. 30m, 1h)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	if forecastService == nil {
		return errors.New("forecast service not configured: set OPENWEATHER_API_KEY in your environment or .env file")
	}

	if forecastInterval > 0 {
		if len(args) > 0 {
			return errors.New("--interval refreshes the configured country list and cannot be combined with country arguments")
		}
		cmd.Printf("Refreshing weather reports every %s. Press Ctrl+C to stop.\n", forecastInterval)
		return forecastService.Run(cmd.Context(), forecastInterval)
	}

	if len(args) > 0 {
		return forecastCountries(cmd, args)
	}

	count, err := forecastService.UpdateAll(cmd.Context())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	cmd.Printf("Updated weather reports for %d countries\n", count)
	return nil
}

// forecastCountries updates the named countries one by one, reporting
// each outcome. The command fails only when nothing could be updated.
func forecastCountries(cmd *cobra.Command, countries []string) error {
	failed := 0
	for _, country := range countries {
		if err := forecastService.Update(cmd.Context(), country); err != nil {
			failed++
			cmd.Printf("%s: %v\n", country, err)
			continue
		}
		cmd.Printf("%s: updated\n", country)
	}

	if failed == len(countries) {
		return errors.New("no weather reports could be updated")
	}
	return nil
}
