// Package weatherfile stores rendered weather reports as flat text
// files, one per country.
package weatherfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

// reportSuffix is appended to the normalised country name to form the
// report file name ("canada_weather.txt").
const reportSuffix = "_weather.txt"

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore persists weather reports under a data directory, one
// file per country. Country names are matched case-insensitively.
type ReportStore struct {
	dir string
}

// NewReportStore creates a report store rooted at dataDir.
// If dataDir is empty, defaults to ~/.quaero/data/weather.
func NewReportStore(dataDir string) (*ReportStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".quaero", "data", "weather")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating weather data directory: %w", err)
	}

	return &ReportStore{dir: dataDir}, nil
}

// Dir returns the directory reports are stored in.
func (s *ReportStore) Dir() string {
	return s.dir
}

// Save writes the report content for a country, replacing any
// previous report.
func (s *ReportStore) Save(country, content string) error {
	name, err := fileName(country)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing report for %s: %w", country, err)
	}
	return nil
}

// Load returns the stored report content for a country.
func (s *ReportStore) Load(country string) (string, error) {
	name, err := fileName(country)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrReportNotFound
		}
		return "", fmt.Errorf("reading report for %s: %w", country, err)
	}
	return string(data), nil
}

// List returns the countries that currently have a stored report,
// sorted. Countries come back in their normalised lowercase form.
func (s *ReportStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing weather data directory: %w", err)
	}

	countries := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, reportSuffix) {
			continue
		}
		countries = append(countries, strings.TrimSuffix(name, reportSuffix))
	}

	sort.Strings(countries)
	return countries, nil
}

// fileName maps a country to its report file name. Names are
// lowercased so lookups are case-insensitive. Path separators are
// rejected so a country name can never escape the data directory.
func fileName(country string) (string, error) {
	normalised := strings.ToLower(strings.TrimSpace(country))
	if normalised == "" {
		return "", fmt.Errorf("country name is empty")
	}
	if strings.ContainsAny(normalised, `/\`) || strings.Contains(normalised, "..") {
		return "", fmt.Errorf("invalid country name: %s", country)
	}
	return normalised + reportSuffix, nil
}
