// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService provides language model text generation.
// This is an optional service - when nil, answer generation is disabled
// and retrieval-only commands still work.
//
// Implementations may include:
//   - OpenAI (gpt-4o-mini)
//   - Groq (llama-3.1-8b-instant)
//   - Google (gemini-2.0-flash)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	// This is used at startup to verify connectivity before answering questions.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	// Zero means the provider default.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	// Grounded answering always uses 0.
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
