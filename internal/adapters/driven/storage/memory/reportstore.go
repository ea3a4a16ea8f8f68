package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is an in-memory implementation of driven.ReportStore for testing.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]string
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string]string),
	}
}

// Save stores the report content for a country.
func (s *ReportStore) Save(country, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[strings.ToLower(country)] = content
	return nil
}

// Load returns the stored report content for a country.
func (s *ReportStore) Load(country string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.reports[strings.ToLower(country)]
	if !ok {
		return "", domain.ErrReportNotFound
	}
	return content, nil
}

// List returns the countries that currently have a stored report, sorted.
func (s *ReportStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	countries := make([]string, 0, len(s.reports))
	for country := range s.reports {
		countries = append(countries, country)
	}
	sort.Strings(countries)
	return countries, nil
}
