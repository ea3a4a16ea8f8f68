package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

// Ensure AdvisorService implements the interface.
var _ driving.Advisor = (*AdvisorService)(nil)

// AdvisorService derives travel advisories from stored weather reports
// with fixed rules. No LLM is involved.
type AdvisorService struct {
	reports driven.ReportStore
}

// NewAdvisorService creates a new advisor service.
func NewAdvisorService(reports driven.ReportStore) *AdvisorService {
	return &AdvisorService{reports: reports}
}

// Advisory returns the rendered advisory for a country.
// A country without a stored report gets the no-data message, not an
// error: stale or missing weather files are an expected state.
func (s *AdvisorService) Advisory(country string) (string, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return "", fmt.Errorf("%w: country name is empty", domain.ErrInvalidInput)
	}

	text, err := s.reports.Load(country)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			logger.Debug("No report stored for %s", country)
			return fmt.Sprintf("No weather data available for %s", country), nil
		}
		return "", fmt.Errorf("loading report for %s: %w", country, err)
	}

	report := domain.ParseReport(text)
	advisory := buildAdvisory(country, report)

	logger.Debug("Advisory for %s: %d clothing, %d activities, %d precautions",
		country, len(advisory.Clothing), len(advisory.Activities), len(advisory.Precautions))

	return advisory.Render(), nil
}

// Countries returns the countries that currently have a stored report.
func (s *AdvisorService) Countries() ([]string, error) {
	return s.reports.List()
}

// buildAdvisory applies the recommendation rules to a parsed report.
//
// The temperature rules are exclusive (hot wins over cold), the rain
// rule beats the clear-sky rule, and the humidity rule stacks on top of
// either. Missing or malformed values count as zero, which matches
// treating an unreadable report as mild weather.
func buildAdvisory(country string, report domain.Report) domain.Advisory {
	a := domain.Advisory{Country: country, Report: report}

	temp, _ := report.TemperatureValue()
	humidity, _ := report.HumidityValue()
	conditions := strings.ToLower(report.Weather)

	switch {
	case temp > 30:
		a.Clothing = append(a.Clothing, "light cotton clothes", "sun hat", "sunglasses")
		a.Activities = append(a.Activities, "indoor activities during peak hours", "early morning sightseeing")
		a.Precautions = append(a.Precautions, "stay hydrated")
	case temp < 15:
		a.Clothing = append(a.Clothing, "warm jacket", "layers", "thermal wear")
		a.Activities = append(a.Activities, "outdoor activities during sunny hours")
		a.Precautions = append(a.Precautions, "carry warm beverages")
	}

	if strings.Contains(conditions, "rain") {
		a.Clothing = append(a.Clothing, "raincoat", "umbrella")
		a.Activities = append(a.Activities, "indoor cultural activities")
		a.Precautions = append(a.Precautions, "check local weather updates")
	} else if strings.Contains(conditions, "clear") {
		a.Activities = append(a.Activities, "outdoor sightseeing", "photography")
	}

	if humidity > 70 {
		a.Precautions = append(a.Precautions, "carry personal fan/cooling items")
		a.Clothing = append(a.Clothing, "moisture-wicking fabrics")
	}

	return a
}
