package driven

import "github.com/custodia-labs/newsum/internal/core/domain"

// AIConfigValidator validates AI provider configurations by testing connectivity.
type AIConfigValidator interface {
	// ValidateEmbedding pings the embedding provider.
	// Returns nil if configuration is valid or not configured.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateLLM pings the LLM provider.
	// Returns nil if configuration is valid or not configured.
	ValidateLLM(config *domain.LLMSettings) error
}
