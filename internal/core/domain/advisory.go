package domain

import (
	"fmt"
	"strings"
)

// Advisory is a rule-derived travel advisory for one country.
// The recommendation slices keep the order the rules appended them in.
type Advisory struct {
	Country     string
	Report      Report
	Clothing    []string
	Activities  []string
	Precautions []string
}

// Render formats the advisory as the user-facing report block.
func (a Advisory) Render() string {
	return fmt.Sprintf(`
🌍 Travel Advisory for %s

Current Weather Conditions:
-------------------------
📍 Location: %s
🌡️ Temperature: %s
🌤️ Weather: %s
💨 Wind Speed: %s
💧 Humidity: %s

Travel Recommendations:
---------------------
👔 Suggested Clothing: %s

🎯 Recommended Activities: %s

⚠️ Precautions: %s

🕒 Weather data last updated: %s

Note: This is a general advisory based on current weather conditions. Please check local forecasts and travel guidelines before making plans.
`,
		a.Country,
		orDefault(a.Report.Location, "Not specified"),
		orDefault(a.Report.Temperature, "N/A"),
		orDefault(a.Report.Weather, "N/A"),
		orDefault(a.Report.WindSpeed, "N/A"),
		orDefault(a.Report.Humidity, "N/A"),
		strings.Join(a.Clothing, ", "),
		strings.Join(a.Activities, ", "),
		strings.Join(a.Precautions, ", "),
		orDefault(a.Report.GeneratedOn, "Not specified"),
	)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
