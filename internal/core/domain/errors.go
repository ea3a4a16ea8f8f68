package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoProviderConfigured indicates no LLM credential is present in
	// the environment and no provider is configured in settings.
	// Commands that call an LLM fail with this before any network call.
	ErrNoProviderConfigured = errors.New("no LLM provider configured")

	// ErrNotConfigured indicates a required credential or setting is
	// missing for a non-LLM collaborator (e.g. the weather API key).
	ErrNotConfigured = errors.New("not configured")

	// ErrLLMUnavailable indicates the LLM service call failed.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service call failed.
	// Nothing can be ingested or retrieved without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrReportNotFound indicates no weather report file exists for the
	// requested country. Surfaced to users as a no-data message.
	ErrReportNotFound = errors.New("weather report not found")

	// ErrLocationNotFound indicates geocoding produced no coordinates
	// for the requested place name.
	ErrLocationNotFound = errors.New("location not found")

	// ErrWeatherUnavailable indicates the weather API call failed.
	ErrWeatherUnavailable = errors.New("weather service unavailable")
)
