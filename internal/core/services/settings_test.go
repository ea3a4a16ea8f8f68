package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// mockAIValidator implements driven.AIConfigValidator for testing.
type mockAIValidator struct {
	embedErr     error
	llmErr       error
	embedChecked *domain.EmbeddingSettings
	llmChecked   *domain.LLMSettings
}

func (m *mockAIValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	m.embedChecked = config
	return m.embedErr
}

func (m *mockAIValidator) ValidateLLM(config *domain.LLMSettings) error {
	m.llmChecked = config
	return m.llmErr
}

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	// Verify defaults
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.Embedding.Model, settings.Embedding.Model)
	assert.Equal(t, defaults.Index.Collection, settings.Index.Collection)
	assert.Equal(t, defaults.Retrieval.Results, settings.Retrieval.Results)
	assert.Equal(t, defaults.Chunking.Size, settings.Chunking.Size)
	assert.Equal(t, defaults.Chunking.Overlap, settings.Chunking.Overlap)
	assert.Contains(t, settings.Weather.Overrides, "canada")
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "openai")
	_ = store.Set("embedding.model", "text-embedding-3-large")
	_ = store.Set("llm.provider", "groq")
	_ = store.Set("llm.model", "llama-3.1-8b-instant")
	_ = store.Set("llm.temperature", 0.5)
	_ = store.Set("index.collection", "travel_docs")
	_ = store.Set("retrieval.results", 7)
	_ = store.Set("chunking.size", 300)
	_ = store.Set("chunking.overlap", 50)
	_ = store.Set("weather.api_key", "ow-key")
	_ = store.Set("weather.countries", []string{"India", "Japan"})

	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", settings.Embedding.Model)
	assert.Equal(t, domain.AIProviderGroq, settings.LLM.Provider)
	assert.Equal(t, "llama-3.1-8b-instant", settings.LLM.Model)
	assert.InDelta(t, 0.5, settings.LLM.Temperature, 0.0001)
	assert.Equal(t, "travel_docs", settings.Index.Collection)
	assert.Equal(t, 7, settings.Retrieval.Results)
	assert.Equal(t, 300, settings.Chunking.Size)
	assert.Equal(t, 50, settings.Chunking.Overlap)
	assert.Equal(t, "ow-key", settings.Weather.APIKey)
	assert.Equal(t, []string{"India", "Japan"}, settings.Weather.Countries)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "invalid_provider")
	_ = store.Set("llm.provider", "also_invalid")

	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	// Invalid values should fall back to defaults
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
}

func TestSettingsService_Get_ZeroOverlap(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("chunking.overlap", 0)

	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	// An explicit zero must not be mistaken for "unset".
	assert.Zero(t, settings.Chunking.Overlap)
}

func TestSettingsService_Get_StoredOverrides(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("weather.overrides.atlantis.lat", 1.5)
	_ = store.Set("weather.overrides.atlantis.lon", -2.5)

	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	// Configured overrides replace the built-in table entirely.
	require.Len(t, settings.Weather.Overrides, 1)
	coords := settings.Weather.Overrides["atlantis"]
	assert.InDelta(t, 1.5, coords.Lat, 0.0001)
	assert.InDelta(t, -2.5, coords.Lon, 0.0001)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings := &domain.Settings{
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderGroq,
			Model:    "llama-3.1-8b-instant",
			APIKey:   "gsk-test",
		},
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "text-embedding-3-small",
			APIKey:   "sk-test-key",
		},
		Index: domain.IndexSettings{
			Collection: "travel_docs",
			Path:       "/tmp/index",
		},
		Retrieval: domain.RetrievalSettings{Results: 5},
		Chunking:  domain.ChunkingSettings{Size: 400, Overlap: 100},
		Weather: domain.WeatherSettings{
			APIKey:    "ow-key",
			Countries: []string{"India"},
			Overrides: map[string]domain.Coordinates{
				"canada": {Lat: 45.4215, Lon: -75.6972},
			},
		},
	}

	err := service.Save(settings)
	require.NoError(t, err)

	// Verify values were stored
	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderGroq, retrieved.LLM.Provider)
	assert.Equal(t, "llama-3.1-8b-instant", retrieved.LLM.Model)
	assert.Equal(t, "gsk-test", retrieved.LLM.APIKey)
	assert.Equal(t, domain.AIProviderOpenAI, retrieved.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", retrieved.Embedding.Model)
	assert.Equal(t, "sk-test-key", retrieved.Embedding.APIKey)
	assert.Equal(t, "travel_docs", retrieved.Index.Collection)
	assert.Equal(t, "/tmp/index", retrieved.Index.Path)
	assert.Equal(t, 5, retrieved.Retrieval.Results)
	assert.Equal(t, 400, retrieved.Chunking.Size)
	assert.Equal(t, 100, retrieved.Chunking.Overlap)
	assert.Equal(t, "ow-key", retrieved.Weather.APIKey)
	assert.Equal(t, []string{"India"}, retrieved.Weather.Countries)
	require.Len(t, retrieved.Weather.Overrides, 1)
	assert.InDelta(t, 45.4215, retrieved.Weather.Overrides["canada"].Lat, 0.0001)
}

func TestSettingsService_Save_RemovesStaleOverrides(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("weather.overrides.atlantis.lat", 1.5)
	_ = store.Set("weather.overrides.atlantis.lon", -2.5)
	service := NewSettingsService(store, nil)

	settings, err := service.Get()
	require.NoError(t, err)
	settings.Weather.Overrides = map[string]domain.Coordinates{
		"canada": {Lat: 45.4215, Lon: -75.6972},
	}

	require.NoError(t, service.Save(settings))

	keys := store.Keys("weather.overrides.")
	assert.Equal(t, []string{"weather.overrides.canada.lat", "weather.overrides.canada.lon"}, keys)
}

func TestSettingsService_SetEmbeddingProvider_Local(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetEmbeddingProvider(domain.AIProviderOllama, "", "")

	require.NoError(t, err)
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "all-MiniLM-L6-v2", settings.Embedding.Model)
	assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)
}

func TestSettingsService_SetEmbeddingProvider_Cloud(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "sk-test")

	require.NoError(t, err)
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
	assert.Empty(t, settings.Embedding.BaseURL)
	assert.Equal(t, "sk-test", settings.Embedding.APIKey)
}

func TestSettingsService_SetEmbeddingProvider_RequiresKey(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key required")
}

func TestSettingsService_SetEmbeddingProvider_RejectsNonEmbedding(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetEmbeddingProvider(domain.AIProviderGroq, "", "gsk-test")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support embeddings")
}

func TestSettingsService_SetEmbeddingProvider_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetEmbeddingProvider(domain.AIProvider("carrier-pigeon"), "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid embedding provider")
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	tests := []struct {
		name      string
		provider  domain.AIProvider
		apiKey    string
		wantModel string
		wantURL   string
	}{
		{"openai", domain.AIProviderOpenAI, "sk-test", "gpt-4o-mini", ""},
		{"groq", domain.AIProviderGroq, "gsk-test", "llama-3.1-8b-instant", ""},
		{"google", domain.AIProviderGoogle, "goog-test", "gemini-2.0-flash", ""},
		{"ollama", domain.AIProviderOllama, "", "llama3.2", "http://localhost:11434"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore(), nil)

			err := service.SetLLMProvider(tt.provider, "", tt.apiKey)

			require.NoError(t, err)
			settings, err := service.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, settings.LLM.Provider)
			assert.Equal(t, tt.wantModel, settings.LLM.Model)
			assert.Equal(t, tt.wantURL, settings.LLM.BaseURL)
		})
	}
}

func TestSettingsService_SetLLMProvider_ExplicitModel(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetLLMProvider(domain.AIProviderGroq, "mixtral-8x7b-32768", "gsk-test")

	require.NoError(t, err)
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "mixtral-8x7b-32768", settings.LLM.Model)
}

func TestSettingsService_SetLLMProvider_RequiresKey(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetLLMProvider(domain.AIProviderGoogle, "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key required")
}

func TestSettingsService_SetChunking(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	err := service.SetChunking(300, 50)

	require.NoError(t, err)
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 300, settings.Chunking.Size)
	assert.Equal(t, 50, settings.Chunking.Overlap)
}

func TestSettingsService_SetChunking_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative overlap", 100, -1},
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore(), nil)

			err := service.SetChunking(tt.size, tt.overlap)

			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Validate_Defaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.Validate())
}

func TestSettingsService_Validate_BadOverlap(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("chunking.size", 100)
	_ = store.Set("chunking.overlap", 100)
	service := NewSettingsService(store, nil)

	err := service.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk overlap")
}

func TestSettingsService_Validate_MissingEmbeddingKey(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "openai")
	service := NewSettingsService(store, nil)

	err := service.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires an API key")
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	defaults := service.GetDefaults()

	assert.Equal(t, domain.DefaultSettings(), defaults)
}

func TestSettingsService_ValidateEmbeddingConfig(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "openai")
	_ = store.Set("embedding.api_key", "sk-test")
	validator := &mockAIValidator{}
	service := NewSettingsService(store, validator)

	err := service.ValidateEmbeddingConfig()

	require.NoError(t, err)
	require.NotNil(t, validator.embedChecked)
	assert.Equal(t, domain.AIProviderOpenAI, validator.embedChecked.Provider)
}

func TestSettingsService_ValidateEmbeddingConfig_NilValidator(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.ValidateEmbeddingConfig())
}

func TestSettingsService_ValidateLLMConfig_Error(t *testing.T) {
	validator := &mockAIValidator{llmErr: errors.New("connection refused")}
	service := NewSettingsService(memory.NewConfigStore(), validator)

	err := service.ValidateLLMConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
