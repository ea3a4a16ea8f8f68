package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

// Ensure ReporterService implements the interface.
var _ driving.Reporter = (*ReporterService)(nil)

// reportErrorMessage is the fixed reply for failed report generation.
const reportErrorMessage = "I encountered an error while processing your request."

// defaultWeatherPrompt asks for a structured analysis of a report file.
// Used when no prompt store is configured or the template cannot load.
const defaultWeatherPrompt = `You are a weather information assistant. Analyze the weather data provided and give recommendations.

Weather Data for {country}:
{weather_data}

Please provide a detailed analysis in the following format:

# Weather Report for {country}

## Current Weather Conditions
[Provide exact temperature, humidity, and weather conditions from the data]

## Weather-based Recommendations
[Suggest appropriate activities and precautions based on current conditions]

## Travel Advisory
[Provide specific advice for travelers based on the current weather]

Note: Base all recommendations strictly on the provided weather data.
Do not make assumptions or add information not in the data file.`

// ReporterService produces LLM-written weather analyses from stored
// report files.
type ReporterService struct {
	reports driven.ReportStore
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewReporterService creates a new reporter service.
// The prompts parameter is optional (can be nil).
func NewReporterService(
	reports driven.ReportStore,
	llm driven.LLMService,
	prompts driven.PromptStore,
) *ReporterService {
	return &ReporterService{
		reports: reports,
		llm:     llm,
		prompts: prompts,
	}
}

// Report loads the stored weather report for a country and asks the LLM
// for a structured analysis of it.
//
// Missing reports and generation failures produce fixed replies with a
// nil error so interactive loops keep running. Context cancellation
// propagates.
func (s *ReporterService) Report(ctx context.Context, country string) (string, error) {
	logger.Section("Weather Report")
	logger.Debug("Country: %q", country)

	country = strings.TrimSpace(country)
	if country == "" {
		return "", fmt.Errorf("%w: country name is empty", domain.ErrInvalidInput)
	}

	if s.llm == nil {
		return "", domain.ErrNoProviderConfigured
	}

	data, err := s.reports.Load(country)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			logger.Debug("No report stored for %s", country)
			return fmt.Sprintf("No weather data available for %s", country), nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logger.Warn("Loading report failed: %v", err)
		return reportErrorMessage, nil
	}

	prompt := strings.NewReplacer(
		"{country}", country,
		"{weather_data}", data,
	).Replace(s.promptTemplate())

	analysis, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logger.Warn("Generation failed: %v", err)
		return reportErrorMessage, nil
	}

	logger.Info("Report generated (%d characters)", len(analysis))
	return strings.TrimSpace(analysis), nil
}

// promptTemplate returns the report template, falling back to the
// built-in default when the store is missing or failing.
func (s *ReporterService) promptTemplate() string {
	if s.prompts == nil {
		return defaultWeatherPrompt
	}
	tmpl, err := s.prompts.Load(driven.PromptWeatherReport)
	if err != nil || strings.TrimSpace(tmpl) == "" {
		if err != nil {
			logger.Warn("Loading %s prompt failed: %v (using built-in)", driven.PromptWeatherReport, err)
		}
		return defaultWeatherPrompt
	}
	return tmpl
}
