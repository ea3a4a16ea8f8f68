// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/custodia-labs/quaero-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/quaero-cli/internal/adapters/driven/embedding/openai"
	googlellm "github.com/custodia-labs/quaero-cli/internal/adapters/driven/llm/google"
	groqllm "github.com/custodia-labs/quaero-cli/internal/adapters/driven/llm/groq"
	ollamallm "github.com/custodia-labs/quaero-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/quaero-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of AI service initialisation.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService // Nil when no provider resolved.
	Warnings         []string          // Non-fatal issues that caused fallback.
	FellBack         bool              // True if fell back to retrieval-only mode.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Init creates and validates the AI services from application settings.
// The embedding service is required and its failure is fatal. The LLM is
// optional: when no provider resolves or the ping fails, the result
// carries a warning and answer generation is disabled.
func Init(settings *domain.Settings) (*InitResult, error) {
	result := &InitResult{}

	embSettings := ResolveEmbeddingSettings(settings)
	emb, err := CreateAndValidateEmbeddingService(&embSettings)
	if err != nil {
		return nil, err
	}
	if emb == nil {
		return nil, fmt.Errorf("%w: no embedding provider configured", domain.ErrEmbeddingUnavailable)
	}
	result.EmbeddingService = emb

	llmSettings, err := ResolveLLMSettings(settings)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
		result.FellBack = true
		return result, nil
	}

	llm, err := CreateAndValidateLLMService(&llmSettings)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
		result.FellBack = true
		return result, nil
	}
	result.LLMService = llm

	return result, nil
}

// llmChainEntry binds a provider to its environment credential.
type llmChainEntry struct {
	provider   domain.AIProvider
	credential func(domain.Credentials) string
}

// llmChain is the provider precedence for environment credentials.
// The first entry whose credential is present wins.
var llmChain = []llmChainEntry{
	{domain.AIProviderOpenAI, func(c domain.Credentials) string { return c.OpenAIKey }},
	{domain.AIProviderGroq, func(c domain.Credentials) string { return c.GroqKey }},
	{domain.AIProviderGoogle, func(c domain.Credentials) string { return c.GoogleKey }},
}

// ResolveLLMSettings selects the LLM provider from application settings.
// Environment credentials are checked first, in order: OpenAI, Groq,
// Google. When none is present the wizard-configured provider is used.
// The model comes from the per-provider override when set, otherwise
// the provider default.
func ResolveLLMSettings(settings *domain.Settings) (domain.LLMSettings, error) {
	for _, entry := range llmChain {
		key := entry.credential(settings.Credentials)
		if key == "" {
			continue
		}

		model := settings.ModelOverrides[entry.provider]
		if model == "" {
			model = domain.DefaultLLMModels()[entry.provider]
		}

		return domain.LLMSettings{
			Provider: entry.provider,
			Model:    model,
			APIKey:   key,
		}, nil
	}

	if settings.LLM.IsConfigured() {
		return settings.LLM, nil
	}

	return domain.LLMSettings{}, fmt.Errorf(
		"%w: No valid API key found. Please set one of: OPENAI_API_KEY, GROQ_API_KEY, or GOOGLE_API_KEY in your .env file",
		domain.ErrNoProviderConfigured)
}

// ResolveEmbeddingSettings fills environment-derived gaps in the
// embedding settings. The OpenAI credential falls back to the
// environment key when the wizard never stored one.
func ResolveEmbeddingSettings(settings *domain.Settings) domain.EmbeddingSettings {
	resolved := settings.Embedding
	if resolved.Provider == domain.AIProviderOpenAI && resolved.APIKey == "" {
		resolved.APIKey = settings.Credentials.OpenAIKey
	}
	return resolved
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'quaero settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'quaero settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'quaero settings' to fix",
			domain.ErrLLMUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'quaero settings' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
// This is intended for use in the settings wizard to validate credentials on configuration.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
// This is intended for use in the settings wizard to validate credentials on configuration.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaEmbedding(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIEmbedding(settings)

	case domain.AIProviderGroq, domain.AIProviderGoogle:
		return nil, fmt.Errorf("%s does not support embeddings, use ollama or openai", settings.Provider)

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaLLM(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAILLM(settings)

	case domain.AIProviderGroq:
		return createGroqLLM(settings)

	case domain.AIProviderGoogle:
		return createGoogleLLM(settings)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := domain.EmbeddingDimensions()[settings.Model]
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	dimensions := domain.EmbeddingDimensions()[settings.Model]

	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

// createOllamaLLM creates an Ollama LLM service.
func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createOpenAILLM creates an OpenAI LLM service.
func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createGroqLLM creates a Groq LLM service.
func createGroqLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return groqllm.NewLLMService(groqllm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createGoogleLLM creates a Google LLM service.
func createGoogleLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return googlellm.NewLLMService(googlellm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}
