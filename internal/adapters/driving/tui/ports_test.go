package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// MockAssistant implements driving.Assistant for testing.
type MockAssistant struct {
	AskFunc          func(ctx context.Context, question string, k int) (string, error)
	AddDocumentsFunc func(ctx context.Context, docs []domain.Document) (int, error)
}

func (m *MockAssistant) Ask(ctx context.Context, question string, k int) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question, k)
	}
	return "", nil
}

func (m *MockAssistant) AddDocuments(ctx context.Context, docs []domain.Document) (int, error) {
	if m.AddDocumentsFunc != nil {
		return m.AddDocumentsFunc(ctx, docs)
	}
	return 0, nil
}

func newTestPorts() *Ports {
	return &Ports{
		Assistant: &MockAssistant{},
	}
}

func TestPorts_Validate_Success(t *testing.T) {
	ports := newTestPorts()

	err := ports.Validate()

	require.NoError(t, err)
}

func TestPorts_Validate_MissingAssistant(t *testing.T) {
	ports := &Ports{}

	err := ports.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAssistant)
}
