package domain

import "time"

const unknownDescription = "Unknown"

// NewsProvider identifies where articles are fetched from.
type NewsProvider string

// Available news providers.
const (
	// NewsProviderNewsAPI is the newsapi.org /v2/everything endpoint.
	NewsProviderNewsAPI NewsProvider = "newsapi"

	// NewsProviderRSS is a search feed queried by URL template.
	NewsProviderRSS NewsProvider = "rss"
)

// IsValid returns true if the news provider is recognised.
func (p NewsProvider) IsValid() bool {
	switch p {
	case NewsProviderNewsAPI, NewsProviderRSS:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p NewsProvider) RequiresAPIKey() bool {
	return p == NewsProviderNewsAPI
}

// String returns the string representation.
func (p NewsProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p NewsProvider) Description() string {
	switch p {
	case NewsProviderNewsAPI:
		return "NewsAPI (newsapi.org)"
	case NewsProviderRSS:
		return "RSS search feed"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGroq is Groq's OpenAI-compatible cloud API.
	AIProviderGroq AIProvider = "groq"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google's Gemini API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderGroq, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p != AIProviderOllama && p.IsValid()
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// SupportsEmbeddings returns true if the provider offers an embedding endpoint.
func (p AIProvider) SupportsEmbeddings() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderGemini:
		return true
	default:
		return false
	}
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
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// APIKeyEnv returns the environment variable consulted for the provider's key.
func (p AIProvider) APIKeyEnv() string {
	switch p {
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderGroq:
		return "GROQ_API_KEY"
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case AIProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// NewsAPIKeyEnv is the environment variable holding the NewsAPI key.
const NewsAPIKeyEnv = "NEWS_API_KEY"

// CacheBackend selects where generated summaries are cached.
type CacheBackend string

// Available cache backends.
const (
	// CacheNone disables summary caching.
	CacheNone CacheBackend = "none"

	// CacheMemory caches summaries for the lifetime of the process.
	CacheMemory CacheBackend = "memory"

	// CacheRedis caches summaries in a Redis server.
	CacheRedis CacheBackend = "redis"
)

// IsValid returns true if the cache backend is recognised.
func (b CacheBackend) IsValid() bool {
	switch b {
	case CacheNone, CacheMemory, CacheRedis:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b CacheBackend) String() string {
	return string(b)
}

// NewsSettings holds news source configuration.
type NewsSettings struct {
	// Provider is the news source.
	Provider NewsProvider

	// APIKey is the NewsAPI key.
	APIKey string

	// BaseURL overrides the NewsAPI endpoint.
	BaseURL string

	// DaysBack bounds the search window.
	DaysBack int

	// SortBy is the NewsAPI sort order (publishedAt, relevancy, popularity).
	SortBy string

	// RSSURL is the feed URL template with {query} and {lang} placeholders.
	RSSURL string
}

// IsConfigured returns true if the news source can be used.
func (n NewsSettings) IsConfigured() bool {
	if !n.Provider.IsValid() {
		return false
	}
	if n.Provider.RequiresAPIKey() && n.APIKey == "" {
		return false
	}
	return true
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || !e.Provider.SupportsEmbeddings() {
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

	// BaseURL is the API endpoint (for Ollama or OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string

	// Temperature controls sampling randomness.
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

// IndexSettings holds chunking and index lifetime configuration.
type IndexSettings struct {
	// Persist keeps indexed articles and embeddings across sessions.
	// When false the index lives only for the current process.
	Persist bool

	// ChunkSize is the chunk length in characters.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive chunks.
	ChunkOverlap int

	// Oversample multiplies k when searching chunks, before article aggregation.
	Oversample int
}

// HistorySettings bounds search history retention.
type HistorySettings struct {
	// MaxEntries is the retention cap; oldest entries are evicted first.
	MaxEntries int
}

// CacheSettings holds summary cache configuration.
type CacheSettings struct {
	// Backend selects the cache implementation.
	Backend CacheBackend

	// RedisURL is the redis:// connection URL.
	RedisURL string

	// TTL is how long a summary stays cached.
	TTL time.Duration
}

// PromptSettings holds prompt template configuration.
type PromptSettings struct {
	// Watch reloads prompt files when they change on disk.
	Watch bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	// News holds news source settings.
	News NewsSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Index holds chunking and index lifetime settings.
	Index IndexSettings

	// History holds search history retention settings.
	History HistorySettings

	// Cache holds summary cache settings.
	Cache CacheSettings

	// Prompts holds prompt template settings.
	Prompts PromptSettings
}

// Defaults for settings not present in the config file.
const (
	DefaultNewsDaysBack   = 7
	DefaultNewsSortBy     = "publishedAt"
	DefaultRSSURL         = "https://news.google.com/rss/search?q={query}&hl={lang}"
	DefaultChunkSize      = 1000
	DefaultChunkOverlap   = 200
	DefaultOversample     = 4
	DefaultLLMTemperature = 0.7
	DefaultCacheTTL       = 24 * time.Hour
)

// DefaultAppSettings returns settings with sensible defaults.
// API keys are left empty; they come from the config file or environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		News: NewsSettings{
			Provider: NewsProviderNewsAPI,
			DaysBack: DefaultNewsDaysBack,
			SortBy:   DefaultNewsSortBy,
			RSSURL:   DefaultRSSURL,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    DefaultEmbeddingModels()[AIProviderOllama],
			BaseURL:  "http://localhost:11434",
		},
		LLM: LLMSettings{
			Provider:    AIProviderGroq,
			Model:       DefaultLLMModels()[AIProviderGroq],
			Temperature: DefaultLLMTemperature,
		},
		Index: IndexSettings{
			Persist:      false,
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
			Oversample:   DefaultOversample,
		},
		History: HistorySettings{
			MaxEntries: DefaultMaxHistoryEntries,
		},
		Cache: CacheSettings{
			Backend: CacheMemory,
			TTL:     DefaultCacheTTL,
		},
	}
}

// AllNewsProviders returns all available news providers.
func AllNewsProviders() []NewsProvider {
	return []NewsProvider{
		NewsProviderNewsAPI,
		NewsProviderRSS,
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderGemini,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderGroq,
		AIProviderAnthropic,
		AIProviderGemini,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
		AIProviderGemini: "text-embedding-004",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderGroq:      "llama-3.1-8b-instant",
		AIProviderAnthropic: "claude-3-5-haiku-latest",
		AIProviderGemini:    "gemini-2.0-flash",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		"bge-m3":            1024,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		// Gemini models
		"text-embedding-004":   768,
		"gemini-embedding-001": 3072,
	}
}
