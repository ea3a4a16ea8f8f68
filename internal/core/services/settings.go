package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyLLMTemperature   = "llm.temperature"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyIndexCollection  = "index.collection"
	keyIndexPath        = "index.path"
	keyRetrievalResults = "retrieval.results"
	keyChunkSize        = "chunking.size"
	keyChunkOverlap     = "chunking.overlap"
	keyWeatherAPIKey    = "weather.api_key"
	keyWeatherDataDir   = "weather.data_dir"
	keyWeatherCountries = "weather.countries"
	keyWeatherOverrides = "weather.overrides"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
// Credentials and model overrides come from the environment, not the
// config file; callers overlay them with Settings.ApplyEnv afterwards.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		LLM: domain.LLMSettings{
			Provider:    s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:       s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:     s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:      s.configStore.GetString(keyLLMAPIKey),
			Temperature: s.configStore.GetFloat(keyLLMTemperature),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		Index: domain.IndexSettings{
			Collection: s.getString(keyIndexCollection, defaults.Index.Collection),
			Path:       s.configStore.GetString(keyIndexPath),
		},
		Retrieval: domain.RetrievalSettings{
			Results: s.getInt(keyRetrievalResults, defaults.Retrieval.Results),
		},
		Chunking: domain.ChunkingSettings{
			Size:    s.getInt(keyChunkSize, defaults.Chunking.Size),
			Overlap: s.getChunkOverlap(defaults.Chunking.Overlap),
		},
		Weather: domain.WeatherSettings{
			APIKey:    s.configStore.GetString(keyWeatherAPIKey),
			DataDir:   s.configStore.GetString(keyWeatherDataDir),
			Countries: s.configStore.GetStringSlice(keyWeatherCountries),
			Overrides: s.loadOverrides(defaults.Weather.Overrides),
		},
		ModelOverrides: make(map[domain.AIProvider]string),
	}

	return settings, nil
}

// Save persists application settings.
// Environment-sourced fields (Credentials, ModelOverrides) are not
// written; the config file only holds wizard-entered values.
func (s *SettingsService) Save(settings *domain.Settings) error {
	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyLLMTemperature, settings.LLM.Temperature); err != nil {
		return fmt.Errorf("save llm temperature: %w", err)
	}

	// Save embedding settings
	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}

	// Save index settings
	if err := s.configStore.Set(keyIndexCollection, settings.Index.Collection); err != nil {
		return fmt.Errorf("save index collection: %w", err)
	}
	if err := s.configStore.Set(keyIndexPath, settings.Index.Path); err != nil {
		return fmt.Errorf("save index path: %w", err)
	}

	// Save retrieval settings
	if err := s.configStore.Set(keyRetrievalResults, settings.Retrieval.Results); err != nil {
		return fmt.Errorf("save retrieval results: %w", err)
	}

	// Save chunking settings
	if err := s.configStore.Set(keyChunkSize, settings.Chunking.Size); err != nil {
		return fmt.Errorf("save chunking size: %w", err)
	}
	if err := s.configStore.Set(keyChunkOverlap, settings.Chunking.Overlap); err != nil {
		return fmt.Errorf("save chunking overlap: %w", err)
	}

	// Save weather settings
	if settings.Weather.APIKey != "" {
		if err := s.configStore.Set(keyWeatherAPIKey, settings.Weather.APIKey); err != nil {
			return fmt.Errorf("save weather api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyWeatherDataDir, settings.Weather.DataDir); err != nil {
		return fmt.Errorf("save weather data_dir: %w", err)
	}
	if len(settings.Weather.Countries) > 0 {
		if err := s.configStore.Set(keyWeatherCountries, settings.Weather.Countries); err != nil {
			return fmt.Errorf("save weather countries: %w", err)
		}
	}
	if err := s.saveOverrides(settings.Weather.Overrides); err != nil {
		return err
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	// Validate provider supports embeddings
	validProviders := domain.AllEmbeddingProviders()
	valid := false
	for _, p := range validProviders {
		if p == provider {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else {
		defaults := domain.DefaultEmbeddingModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.Embedding.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = "http://localhost:11434"
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.Embedding.BaseURL = ""
	}

	// Set API key
	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		defaults := domain.DefaultLLMModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.LLM.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.LLM.BaseURL = ""
	}

	// Set API key
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetChunking updates the chunk size and overlap.
func (s *SettingsService) SetChunking(size, overlap int) error {
	if size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidInput, size)
	}
	if overlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative, got %d", domain.ErrInvalidInput, overlap)
	}
	if overlap >= size {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidInput, overlap, size)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Chunking.Size = size
	settings.Chunking.Overlap = overlap

	return s.Save(settings)
}

// Validate checks that current settings are internally consistent.
// An unconfigured LLM is not an error here: the assistant degrades to
// retrieval-only operation without one.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Embedding.Provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", settings.Embedding.Provider)
	}
	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("embedding provider %s requires an API key", settings.Embedding.Provider)
	}

	if settings.LLM.Provider != "" && !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", settings.LLM.Provider)
	}

	if settings.Chunking.Size <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", settings.Chunking.Size)
	}
	if settings.Chunking.Overlap < 0 || settings.Chunking.Overlap >= settings.Chunking.Size {
		return fmt.Errorf(
			"chunk overlap %d must be between 0 and chunk size %d",
			settings.Chunking.Overlap, settings.Chunking.Size,
		)
	}

	if settings.Retrieval.Results <= 0 {
		return fmt.Errorf("retrieval results must be positive, got %d", settings.Retrieval.Results)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

// getChunkOverlap reads the overlap with an existence check. Zero is a
// valid configured overlap, so the zero-means-unset shortcut of getInt
// does not apply.
func (s *SettingsService) getChunkOverlap(defaultVal int) int {
	if _, exists := s.configStore.Get(keyChunkOverlap); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(keyChunkOverlap)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

// loadOverrides reads the weather.overrides table into a coordinate map.
// Keys look like weather.overrides.canada.lat. No configured overrides
// means the built-in capital overrides.
func (s *SettingsService) loadOverrides(defaultVal map[string]domain.Coordinates) map[string]domain.Coordinates {
	keys := s.configStore.Keys(keyWeatherOverrides + ".")
	if len(keys) == 0 {
		return defaultVal
	}

	overrides := make(map[string]domain.Coordinates)
	for _, key := range keys {
		rest := strings.TrimPrefix(key, keyWeatherOverrides+".")
		country, field, ok := strings.Cut(rest, ".")
		if !ok {
			continue
		}
		coords := overrides[strings.ToLower(country)]
		switch field {
		case "lat":
			coords.Lat = s.configStore.GetFloat(key)
		case "lon":
			coords.Lon = s.configStore.GetFloat(key)
		default:
			continue
		}
		overrides[strings.ToLower(country)] = coords
	}
	return overrides
}

// saveOverrides writes the override table, removing keys for countries
// that are no longer overridden.
func (s *SettingsService) saveOverrides(overrides map[string]domain.Coordinates) error {
	for _, key := range s.configStore.Keys(keyWeatherOverrides + ".") {
		rest := strings.TrimPrefix(key, keyWeatherOverrides+".")
		country, _, ok := strings.Cut(rest, ".")
		if !ok {
			continue
		}
		if _, keep := overrides[strings.ToLower(country)]; keep {
			continue
		}
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("delete override %s: %w", key, err)
		}
	}

	for country, coords := range overrides {
		name := strings.ToLower(country)
		if err := s.configStore.Set(keyWeatherOverrides+"."+name+".lat", coords.Lat); err != nil {
			return fmt.Errorf("save override %s lat: %w", name, err)
		}
		if err := s.configStore.Set(keyWeatherOverrides+"."+name+".lon", coords.Lon); err != nil {
			return fmt.Errorf("save override %s lon: %w", name, err)
		}
	}
	return nil
}
