package mcp

import (
	"context"
	"sort"
	"strings"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// mockRetriever is a mock implementation of driving.Retriever.
type mockRetriever struct {
	results []domain.SearchResult
	stats   domain.IndexStats
	count   int
	err     error
}

func (m *mockRetriever) Ingest(_ context.Context, _ []domain.Document) (int, error) {
	return m.count, m.err
}

func (m *mockRetriever) Search(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	return m.results, m.err
}

func (m *mockRetriever) Stats(_ context.Context) (domain.IndexStats, error) {
	return m.stats, m.err
}

// mockAssistant is a mock implementation of driving.Assistant.
type mockAssistant struct {
	answer string
	count  int
	err    error
}

func (m *mockAssistant) AddDocuments(_ context.Context, _ []domain.Document) (int, error) {
	return m.count, m.err
}

func (m *mockAssistant) Ask(_ context.Context, _ string, _ int) (string, error) {
	return m.answer, m.err
}

// mockAdvisor is a mock implementation of driving.Advisor.
type mockAdvisor struct {
	advisory  string
	countries []string
	err       error
}

func (m *mockAdvisor) Advisory(_ string) (string, error) {
	return m.advisory, m.err
}

func (m *mockAdvisor) Countries() ([]string, error) {
	return m.countries, m.err
}

// mockReporter is a mock implementation of driving.Reporter.
type mockReporter struct {
	report string
	err    error
}

func (m *mockReporter) Report(_ context.Context, _ string) (string, error) {
	return m.report, m.err
}

// mockReportStore is a mock implementation of driven.ReportStore.
type mockReportStore struct {
	reports map[string]string
	listErr error
	loadErr error
}

func (m *mockReportStore) Save(country, content string) error {
	if m.reports == nil {
		m.reports = make(map[string]string)
	}
	m.reports[strings.ToLower(country)] = content
	return nil
}

func (m *mockReportStore) Load(country string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	content, ok := m.reports[strings.ToLower(strings.TrimSpace(country))]
	if !ok {
		return "", domain.ErrReportNotFound
	}
	return content, nil
}

func (m *mockReportStore) List() ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	names := make([]string, 0, len(m.reports))
	for name := range m.reports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
