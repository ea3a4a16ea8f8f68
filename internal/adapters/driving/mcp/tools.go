package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the query to find relevant chunks"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single retrieval hit.
type SearchResultOutput struct {
	Text     string  `json:"text"`
	Source   string  `json:"source,omitempty"`
	Distance float64 `json:"distance"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the indexed documents"`
	Results  int    `json:"results,omitempty" jsonschema:"number of chunks to retrieve as context (default 3)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// AdvisoryInput is the input schema for the advisory tool.
type AdvisoryInput struct {
	Country string `json:"country" jsonschema:"the country to generate a travel advisory for"`
}

// AdvisoryOutput is the output schema for the advisory tool.
type AdvisoryOutput struct {
	Advisory string `json:"advisory"`
}

// WeatherReportInput is the input schema for the weather_report tool.
type WeatherReportInput struct {
	Country string `json:"country" jsonschema:"the country to generate a weather report for"`
}

// WeatherReportOutput is the output schema for the weather_report tool.
type WeatherReportOutput struct {
	Report string `json:"report"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the indexed documents by similarity",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question grounded in the indexed documents",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "advisory",
		Description: "Generate a rule-based travel advisory from stored weather data",
	}, s.handleAdvisory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "weather_report",
		Description: "Generate an LLM analysis of stored weather data",
	}, s.handleWeatherReport)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchResults
	}

	results, err := s.ports.Retriever.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			Text:     results[i].Text,
			Source:   results[i].Metadata["source"],
			Distance: results[i].Distance,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Assistant == nil {
		return nil, AskOutput{}, errors.New("assistant service not configured")
	}

	answer, err := s.ports.Assistant.Ask(ctx, input.Question, input.Results)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{Answer: answer}, nil
}

// handleAdvisory handles the advisory tool invocation.
func (s *Server) handleAdvisory(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AdvisoryInput,
) (*mcp.CallToolResult, AdvisoryOutput, error) {
	if s.ports.Advisor == nil {
		return nil, AdvisoryOutput{}, errors.New("advisor service not configured")
	}

	advisory, err := s.ports.Advisor.Advisory(input.Country)
	if err != nil {
		return nil, AdvisoryOutput{}, err
	}

	return nil, AdvisoryOutput{Advisory: advisory}, nil
}

// handleWeatherReport handles the weather_report tool invocation.
func (s *Server) handleWeatherReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input WeatherReportInput,
) (*mcp.CallToolResult, WeatherReportOutput, error) {
	if s.ports.Reporter == nil {
		return nil, WeatherReportOutput{}, errors.New("reporter service not configured")
	}

	report, err := s.ports.Reporter.Report(ctx, input.Country)
	if err != nil {
		return nil, WeatherReportOutput{}, err
	}

	return nil, WeatherReportOutput{Report: report}, nil
}
