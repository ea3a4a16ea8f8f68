package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGroq is the Groq cloud API (OpenAI-compatible).
	AIProviderGroq AIProvider = "groq"

	// AIProviderGoogle is the Google Gemini cloud API.
	AIProviderGoogle AIProvider = "google"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderGroq, AIProviderGoogle:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderGroq || p == AIProviderGoogle
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderGroq:
		return "Groq (cloud)"
	case AIProviderGoogle:
		return "Google Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string

	// Temperature is the sampling temperature. The assistant pins this
	// to 0 so answers stay grounded in the retrieved context.
	Temperature float64
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// IndexSettings holds vector index configuration.
type IndexSettings struct {
	// Collection is the named collection entries are persisted under.
	Collection string

	// Path is the directory holding the index database.
	// Empty means the default data directory under the user dir.
	Path string
}

// RetrievalSettings holds query-time retrieval configuration.
type RetrievalSettings struct {
	// Results is the number of chunks handed to the LLM per question.
	Results int
}

// ChunkingSettings holds document chunking configuration.
type ChunkingSettings struct {
	// Size is the maximum chunk length in runes.
	Size int

	// Overlap is the number of runes consecutive chunks share.
	// Must be smaller than Size.
	Overlap int
}

// WeatherSettings holds weather fetch and advisory configuration.
type WeatherSettings struct {
	// APIKey is the OpenWeather API key.
	APIKey string

	// DataDir is the directory holding per-country report files.
	// Empty means the default weather directory under the user dir.
	DataDir string

	// Countries lists which countries `forecast` refreshes by default.
	// Empty means the built-in list of all countries.
	Countries []string

	// Overrides maps lowercase country names to fixed coordinates,
	// bypassing geocoding for places the geocoder resolves ambiguously.
	Overrides map[string]Coordinates
}

// Credentials holds the provider credentials read from the environment.
// They are never persisted; the config store only sees wizard-entered
// keys, which live on LLMSettings/EmbeddingSettings instead.
type Credentials struct {
	OpenAIKey      string
	GroqKey        string
	GoogleKey      string
	OpenWeatherKey string
}

// Settings holds all application settings, built once at process start
// and passed into components. There is no ambient global configuration.
type Settings struct {
	// LLM holds the explicitly configured LLM provider, if any.
	// Environment credentials take precedence over it.
	LLM LLMSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// Index holds vector index settings.
	Index IndexSettings

	// Retrieval holds query-time retrieval settings.
	Retrieval RetrievalSettings

	// Chunking holds document chunking settings.
	Chunking ChunkingSettings

	// Weather holds weather fetch and advisory settings.
	Weather WeatherSettings

	// Credentials holds environment-provided API keys.
	Credentials Credentials

	// ModelOverrides maps providers to environment-provided model names,
	// consulted before the per-provider defaults.
	ModelOverrides map[AIProvider]string
}

// Environment variable names recognised by ApplyEnv.
//
//nolint:gosec // G101: These are variable names, not credentials.
const (
	EnvOpenAIKey      = "OPENAI_API_KEY"
	EnvGroqKey        = "GROQ_API_KEY"
	EnvGoogleKey      = "GOOGLE_API_KEY"
	EnvOpenAIModel    = "OPENAI_MODEL"
	EnvGroqModel      = "GROQ_MODEL"
	EnvGoogleModel    = "GOOGLE_MODEL"
	EnvCollection     = "CHROMA_COLLECTION_NAME"
	EnvEmbeddingModel = "EMBEDDING_MODEL"
	EnvOpenWeatherKey = "OPENWEATHER_API_KEY"
)

// ApplyEnv overlays environment values onto the settings. The lookup
// function is injected (usually os.Getenv) so the overlay stays testable.
// Only non-empty values overwrite.
func (s *Settings) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvOpenAIKey); v != "" {
		s.Credentials.OpenAIKey = v
	}
	if v := getenv(EnvGroqKey); v != "" {
		s.Credentials.GroqKey = v
	}
	if v := getenv(EnvGoogleKey); v != "" {
		s.Credentials.GoogleKey = v
	}
	if v := getenv(EnvOpenWeatherKey); v != "" {
		s.Credentials.OpenWeatherKey = v
		s.Weather.APIKey = v
	}

	if s.ModelOverrides == nil {
		s.ModelOverrides = make(map[AIProvider]string)
	}
	if v := getenv(EnvOpenAIModel); v != "" {
		s.ModelOverrides[AIProviderOpenAI] = v
	}
	if v := getenv(EnvGroqModel); v != "" {
		s.ModelOverrides[AIProviderGroq] = v
	}
	if v := getenv(EnvGoogleModel); v != "" {
		s.ModelOverrides[AIProviderGoogle] = v
	}

	if v := getenv(EnvCollection); v != "" {
		s.Index.Collection = v
	}
	if v := getenv(EnvEmbeddingModel); v != "" {
		s.Embedding.Model = v
	}
}

// DefaultCollection is the collection name entries are stored under
// unless overridden by settings or environment.
const DefaultCollection = "rag_documents"

// DefaultChunkSize is the default maximum chunk length in runes.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default overlap between chunks in runes.
const DefaultChunkOverlap = 200

// DefaultAskResults is the number of chunks the assistant retrieves
// per question.
const DefaultAskResults = 3

// DefaultSearchResults is the number of results a raw search returns.
const DefaultSearchResults = 5

// DefaultSettings returns settings with sensible defaults.
// The LLM provider is left unconfigured: it is resolved from environment
// credentials at startup, or set explicitly via the settings wizard.
func DefaultSettings() Settings {
	return Settings{
		LLM: LLMSettings{},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    DefaultEmbeddingModels()[AIProviderOllama],
		},
		Index: IndexSettings{
			Collection: DefaultCollection,
		},
		Retrieval: RetrievalSettings{
			Results: DefaultAskResults,
		},
		Chunking: ChunkingSettings{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Weather: WeatherSettings{
			Overrides: DefaultCapitalOverrides(),
		},
		ModelOverrides: make(map[AIProvider]string),
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOpenAI,
		AIProviderGroq,
		AIProviderGoogle,
		AIProviderOllama,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "all-MiniLM-L6-v2",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOpenAI: "gpt-4o-mini",
		AIProviderGroq:   "llama-3.1-8b-instant",
		AIProviderGoogle: "gemini-2.0-flash",
		AIProviderOllama: "llama3.2",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Sentence-transformers names (served locally via Ollama)
		"all-MiniLM-L6-v2":                       384,
		"sentence-transformers/all-MiniLM-L6-v2": 384,
		// Ollama models
		"all-minilm":       384,
		"nomic-embed-text": 768,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
