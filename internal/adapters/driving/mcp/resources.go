package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for weather resources.
	uriScheme = "weather://"

	// countriesURI is the static resource listing stored reports.
	countriesURI = uriScheme + "countries"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing countries with stored reports.
	s.server.AddResource(&mcp.Resource{
		URI:         countriesURI,
		Name:        "countries",
		Description: "Countries that currently have a stored weather report",
		MIMEType:    "application/json",
	}, s.handleCountriesResource)

	// Template for a single country's raw report file.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "{country}",
		Name:        "weather-report",
		Description: "Stored weather report for a country",
		MIMEType:    "text/plain",
	}, s.handleReportResource)
}

// handleCountriesResource returns the countries that have a report.
func (s *Server) handleCountriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reports == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	countries, err := s.ports.Reports.List()
	if err != nil {
		return nil, fmt.Errorf("listing countries: %w", err)
	}
	if countries == nil {
		countries = []string{}
	}

	data, err := json.MarshalIndent(countries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling countries: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleReportResource returns the raw report file for a country.
func (s *Server) handleReportResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reports == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	country := extractCountry(req.Params.URI)
	if country == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Reports.Load(country)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("loading report: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     content,
		}},
	}, nil
}

// extractCountry extracts the country name from a URI like
// weather://{country}. Percent-encoding is undone so multi-word names
// round-trip.
func extractCountry(uri string) string {
	if !strings.HasPrefix(uri, uriScheme) {
		return ""
	}

	raw := strings.TrimPrefix(uri, uriScheme)
	country, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return country
}
