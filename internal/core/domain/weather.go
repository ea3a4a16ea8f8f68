package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Observation is a current-weather reading from the weather API,
// in metric units.
type Observation struct {
	// Location is the resolved place name (usually a city).
	Location string

	// CountryCode is the ISO 3166 country code reported by the API.
	CountryCode string

	// Temperature is the air temperature in °C.
	Temperature float64

	// FeelsLike is the perceived temperature in °C.
	FeelsLike float64

	// Humidity is the relative humidity in percent.
	Humidity int

	// Conditions is the human-readable weather description.
	Conditions string

	// WindSpeed is the wind speed in m/s.
	WindSpeed float64
}

// Report field keys as they appear in report files.
const (
	reportKeyGeneratedOn = "Generated on"
	reportKeyLocation    = "Location"
	reportKeyTemperature = "Temperature"
	reportKeyFeelsLike   = "Feels Like"
	reportKeyHumidity    = "Humidity"
	reportKeyWeather     = "Weather"
	reportKeyWindSpeed   = "Wind Speed"
)

// Report is a parsed per-country weather report file. Values keep their
// file formatting ("35°C", "80%") so they can be echoed back verbatim;
// use the typed accessors for rule evaluation.
type Report struct {
	GeneratedOn string
	Location    string
	Temperature string
	FeelsLike   string
	Humidity    string
	Weather     string
	WindSpeed   string
}

// ParseReport reads a report from its "Key: Value" file format.
// Lines without a colon (like the "Weather Forecast" heading) and
// unknown keys are ignored. Values may themselves contain colons, as
// the generation timestamp does: only the first colon splits.
func ParseReport(text string) Report {
	var r Report
	for _, line := range strings.Split(text, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case reportKeyGeneratedOn:
			r.GeneratedOn = value
		case reportKeyLocation:
			r.Location = value
		case reportKeyTemperature:
			r.Temperature = value
		case reportKeyFeelsLike:
			r.FeelsLike = value
		case reportKeyHumidity:
			r.Humidity = value
		case reportKeyWeather:
			r.Weather = value
		case reportKeyWindSpeed:
			r.WindSpeed = value
		}
	}
	return r
}

// TemperatureValue returns the temperature in °C as a number.
// Returns ok=false when the field is absent or malformed; rule
// evaluation treats that as 0.
func (r Report) TemperatureValue() (float64, bool) {
	raw := strings.TrimSpace(strings.TrimSuffix(r.Temperature, "°C"))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// HumidityValue returns the relative humidity percentage as a number.
// Returns ok=false when the field is absent or malformed.
func (r Report) HumidityValue() (int, bool) {
	raw := strings.TrimSpace(strings.TrimSuffix(r.Humidity, "%"))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatReport renders an observation in the report file format.
// The layout is the contract consumed by ParseReport, the advisory
// rules, and the LLM weather prompt; change it and stored files stop
// parsing.
func FormatReport(obs Observation, generatedAt time.Time) string {
	return fmt.Sprintf(`Weather Forecast
Generated on: %s
Location: %s, %s
Temperature: %s°C
Feels Like: %s°C
Humidity: %d%%
Weather: %s
Wind Speed: %s m/s
`,
		generatedAt.Format("2006-01-02 15:04:05"),
		obs.Location, obs.CountryCode,
		formatFloat(obs.Temperature),
		formatFloat(obs.FeelsLike),
		obs.Humidity,
		obs.Conditions,
		formatFloat(obs.WindSpeed),
	)
}

// formatFloat renders a float without trailing zeros ("12.37", "12").
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
