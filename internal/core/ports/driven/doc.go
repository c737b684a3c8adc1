// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - NewsSource: Fetches articles from a news provider
//   - ArticleStore: Article and chunk persistence
//   - VectorIndex: Vector storage and exact similarity search
//   - PreferenceStore: User preference and history persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it, indexing and similarity queries are disabled.
//   - LLMService: Language model operations. Without it, summarisation is disabled.
//   - SummaryCache: Caches generated summaries.
//   - PromptStore: Customisable prompt templates. Without it, built-in prompts are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
