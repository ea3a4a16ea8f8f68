// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the retrieval pipeline to function:
//
//   - EmbeddingService: Generates vector embeddings for chunks and queries
//   - VectorStore: Persists embeddings and answers similarity queries
//   - PostProcessorPipeline: Splits documents into chunks before indexing
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the affected features degrade gracefully:
//
//   - LLMService: Answer generation. Without it, ask/chat are disabled but
//     ingest/search still work.
//   - PromptStore: Customisable prompt templates. Without it, built-in
//     defaults are used.
//   - WeatherProvider, Geocoder, ReportStore: The weather advisory feature.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
