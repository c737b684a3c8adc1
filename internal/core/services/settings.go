package services

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyNewsProvider      = "news.provider"
	keyNewsAPIKey        = "news.api_key"
	keyNewsBaseURL       = "news.base_url"
	keyNewsDaysBack      = "news.days_back"
	keyNewsSortBy        = "news.sort_by"
	keyNewsRSSURL        = "news.rss_url"
	keyEmbedProvider     = "embedding.provider"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMTemperature    = "llm.temperature"
	keyIndexPersist      = "index.persist"
	keyIndexChunkSize    = "index.chunk_size"
	keyIndexChunkOverlap = "index.chunk_overlap"
	keyIndexOversample   = "index.oversample"
	keyHistoryMax        = "history.max_entries"
	keyCacheBackend      = "cache.backend"
	keyCacheRedisURL     = "cache.redis_url"
	keyCacheTTL          = "cache.ttl"
	keyPromptsWatch      = "prompts.watch"
)

const defaultOllamaURL = "http://localhost:11434"

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
)

// settingKey describes how a key is parsed and validated by Set.
type settingKey struct {
	kind     settingKind
	validate func(v any) error
}

var settingKeys = map[string]settingKey{
	keyNewsProvider:      {kind: kindString, validate: validNewsProvider},
	keyNewsAPIKey:        {kind: kindString},
	keyNewsBaseURL:       {kind: kindString},
	keyNewsDaysBack:      {kind: kindInt, validate: intAtLeast(1)},
	keyNewsSortBy:        {kind: kindString, validate: validSortBy},
	keyNewsRSSURL:        {kind: kindString},
	keyEmbedProvider:     {kind: kindString, validate: validEmbeddingProvider},
	keyEmbedModel:        {kind: kindString},
	keyEmbedBaseURL:      {kind: kindString},
	keyEmbedAPIKey:       {kind: kindString},
	keyLLMProvider:       {kind: kindString, validate: validLLMProvider},
	keyLLMModel:          {kind: kindString},
	keyLLMBaseURL:        {kind: kindString},
	keyLLMAPIKey:         {kind: kindString},
	keyLLMTemperature:    {kind: kindFloat, validate: validTemperature},
	keyIndexPersist:      {kind: kindBool},
	keyIndexChunkSize:    {kind: kindInt, validate: intAtLeast(1)},
	keyIndexChunkOverlap: {kind: kindInt, validate: intAtLeast(0)},
	keyIndexOversample:   {kind: kindInt, validate: intAtLeast(1)},
	keyHistoryMax:        {kind: kindInt, validate: intAtLeast(1)},
	keyCacheBackend:      {kind: kindString, validate: validCacheBackend},
	keyCacheRedisURL:     {kind: kindString},
	keyCacheTTL:          {kind: kindDuration},
	keyPromptsWatch:      {kind: kindBool},
}

type settingValue struct {
	key string
	val any
}

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
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	embedProvider := s.getAIProvider(keyEmbedProvider, d.Embedding.Provider)
	if !embedProvider.SupportsEmbeddings() {
		embedProvider = d.Embedding.Provider
	}
	llmProvider := s.getAIProvider(keyLLMProvider, d.LLM.Provider)

	settings := &domain.AppSettings{
		News: domain.NewsSettings{
			Provider: s.getNewsProvider(d.News.Provider),
			APIKey:   s.configStore.GetString(keyNewsAPIKey),
			BaseURL:  s.configStore.GetString(keyNewsBaseURL),
			DaysBack: s.getInt(keyNewsDaysBack, d.News.DaysBack),
			SortBy:   s.getString(keyNewsSortBy, d.News.SortBy),
			RSSURL:   s.getString(keyNewsRSSURL, d.News.RSSURL),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: embedProvider,
			Model:    s.getString(keyEmbedModel, domain.DefaultEmbeddingModels()[embedProvider]),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider:    llmProvider,
			Model:       s.getString(keyLLMModel, domain.DefaultLLMModels()[llmProvider]),
			BaseURL:     s.configStore.GetString(keyLLMBaseURL),
			APIKey:      s.configStore.GetString(keyLLMAPIKey),
			Temperature: s.getFloat(keyLLMTemperature, d.LLM.Temperature),
		},
		Index: domain.IndexSettings{
			Persist:      s.getBool(keyIndexPersist, d.Index.Persist),
			ChunkSize:    s.getInt(keyIndexChunkSize, d.Index.ChunkSize),
			ChunkOverlap: s.getInt(keyIndexChunkOverlap, d.Index.ChunkOverlap),
			Oversample:   s.getInt(keyIndexOversample, d.Index.Oversample),
		},
		History: domain.HistorySettings{
			MaxEntries: s.getInt(keyHistoryMax, d.History.MaxEntries),
		},
		Cache: domain.CacheSettings{
			Backend:  s.getCacheBackend(d.Cache.Backend),
			RedisURL: s.configStore.GetString(keyCacheRedisURL),
			TTL:      s.getDuration(keyCacheTTL, d.Cache.TTL),
		},
		Prompts: domain.PromptSettings{
			Watch: s.getBool(keyPromptsWatch, d.Prompts.Watch),
		},
	}

	if settings.Embedding.Provider.IsLocal() && settings.Embedding.BaseURL == "" {
		settings.Embedding.BaseURL = defaultOllamaURL
	}
	if settings.LLM.Provider.IsLocal() && settings.LLM.BaseURL == "" {
		settings.LLM.BaseURL = defaultOllamaURL
	}
	if settings.Index.ChunkOverlap >= settings.Index.ChunkSize {
		settings.Index.ChunkOverlap = d.Index.ChunkOverlap
		if settings.Index.ChunkOverlap >= settings.Index.ChunkSize {
			settings.Index.ChunkOverlap = 0
		}
	}

	return settings, nil
}

// Save persists application settings.
// API keys are written only when they differ from the effective value, so
// keys supplied through the environment are never copied into the file.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	current, err := s.Get()
	if err != nil {
		return err
	}

	values := []settingValue{
		{keyNewsProvider, settings.News.Provider.String()},
		{keyNewsBaseURL, settings.News.BaseURL},
		{keyNewsDaysBack, settings.News.DaysBack},
		{keyNewsSortBy, settings.News.SortBy},
		{keyNewsRSSURL, settings.News.RSSURL},
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMTemperature, settings.LLM.Temperature},
		{keyIndexPersist, settings.Index.Persist},
		{keyIndexChunkSize, settings.Index.ChunkSize},
		{keyIndexChunkOverlap, settings.Index.ChunkOverlap},
		{keyIndexOversample, settings.Index.Oversample},
		{keyHistoryMax, settings.History.MaxEntries},
		{keyCacheBackend, settings.Cache.Backend.String()},
		{keyCacheRedisURL, settings.Cache.RedisURL},
		{keyCacheTTL, settings.Cache.TTL.String()},
		{keyPromptsWatch, settings.Prompts.Watch},
	}
	if settings.News.APIKey != "" && settings.News.APIKey != current.News.APIKey {
		values = append(values, settingValue{keyNewsAPIKey, settings.News.APIKey})
	}
	if settings.Embedding.APIKey != "" && settings.Embedding.APIKey != current.Embedding.APIKey {
		values = append(values, settingValue{keyEmbedAPIKey, settings.Embedding.APIKey})
	}
	if settings.LLM.APIKey != "" && settings.LLM.APIKey != current.LLM.APIKey {
		values = append(values, settingValue{keyLLMAPIKey, settings.LLM.APIKey})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.val); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Keys returns every settable key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Set parses and stores a single setting given as text.
func (s *SettingsService) Set(key, value string) error {
	entry, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	value = strings.TrimSpace(value)
	var parsed any
	switch entry.kind {
	case kindString:
		parsed = value
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		parsed = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: %s must be a duration like 24h", domain.ErrInvalidInput, key)
		}
		parsed = d.String()
	}

	if entry.validate != nil {
		if err := entry.validate(parsed); err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
		}
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SetNewsProvider configures the news source.
func (s *SettingsService) SetNewsProvider(provider domain.NewsProvider, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid news provider: %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	if apiKey != "" {
		settings.News.APIKey = apiKey
	}
	if provider.RequiresAPIKey() && settings.News.APIKey == "" {
		return fmt.Errorf("API key required for %s (set %s or pass a key)", provider, domain.NewsAPIKeyEnv)
	}
	settings.News.Provider = provider

	return s.Save(settings)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}
	if !provider.SupportsEmbeddings() {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	if provider != settings.Embedding.Provider {
		settings.Embedding.APIKey = ""
	}
	if apiKey != "" {
		settings.Embedding.APIKey = apiKey
	}
	if provider.RequiresAPIKey() && settings.Embedding.APIKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings.Embedding.Provider = provider
	settings.Embedding.Model = modelOrDefault(model, domain.DefaultEmbeddingModels()[provider])
	settings.Embedding.BaseURL = baseURLFor(provider, settings.Embedding.BaseURL)

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	if provider != settings.LLM.Provider {
		settings.LLM.APIKey = ""
	}
	if apiKey != "" {
		settings.LLM.APIKey = apiKey
	}
	if provider.RequiresAPIKey() && settings.LLM.APIKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = modelOrDefault(model, domain.DefaultLLMModels()[provider])
	settings.LLM.BaseURL = baseURLFor(provider, settings.LLM.BaseURL)

	return s.Save(settings)
}

// Validate reports configuration problems that stop newsum from fetching.
// Missing AI providers only disable features and are not reported here.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if !settings.News.IsConfigured() {
		errs = append(errs, fmt.Errorf("news provider %q requires an API key (set %s or %s)",
			settings.News.Provider, domain.NewsAPIKeyEnv, keyNewsAPIKey))
	}
	if settings.Cache.Backend == domain.CacheRedis && settings.Cache.RedisURL == "" {
		errs = append(errs, fmt.Errorf("cache backend redis requires %s", keyCacheRedisURL))
	}
	return errors.Join(errs...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
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
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if entry, ok := settingKeys[key]; ok && entry.validate != nil && entry.validate(val) != nil {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(key)
	if entry, ok := settingKeys[key]; ok && entry.validate != nil && entry.validate(val) != nil {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(s.configStore.GetString(key))
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getNewsProvider(defaultVal domain.NewsProvider) domain.NewsProvider {
	p := domain.NewsProvider(s.configStore.GetString(keyNewsProvider))
	if !p.IsValid() {
		return defaultVal
	}
	return p
}

func (s *SettingsService) getAIProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	p := domain.AIProvider(s.configStore.GetString(key))
	if !p.IsValid() {
		return defaultVal
	}
	return p
}

func (s *SettingsService) getCacheBackend(defaultVal domain.CacheBackend) domain.CacheBackend {
	b := domain.CacheBackend(s.configStore.GetString(keyCacheBackend))
	if !b.IsValid() {
		return defaultVal
	}
	return b
}

func modelOrDefault(model, defaultModel string) string {
	if model != "" {
		return model
	}
	return defaultModel
}

// baseURLFor keeps a local provider's URL and clears it for cloud providers.
func baseURLFor(provider domain.AIProvider, current string) string {
	if !provider.IsLocal() {
		return ""
	}
	if current == "" {
		return defaultOllamaURL
	}
	return current
}

// Validators used by Set and the typed getters.

func intAtLeast(lo int) func(any) error {
	return func(v any) error {
		if n, _ := v.(int); n < lo {
			return fmt.Errorf("must be at least %d", lo)
		}
		return nil
	}
}

func validTemperature(v any) error {
	if f, _ := v.(float64); f < 0 || f > 2 {
		return errors.New("must be between 0 and 2")
	}
	return nil
}

func validNewsProvider(v any) error {
	if p := domain.NewsProvider(v.(string)); !p.IsValid() {
		return fmt.Errorf("unknown news provider %q", p)
	}
	return nil
}

func validEmbeddingProvider(v any) error {
	p := domain.AIProvider(v.(string))
	if !p.IsValid() || !p.SupportsEmbeddings() {
		return fmt.Errorf("%q does not support embeddings", p)
	}
	return nil
}

func validLLMProvider(v any) error {
	if p := domain.AIProvider(v.(string)); !p.IsValid() {
		return fmt.Errorf("unknown LLM provider %q", p)
	}
	return nil
}

func validCacheBackend(v any) error {
	if b := domain.CacheBackend(v.(string)); !b.IsValid() {
		return fmt.Errorf("unknown cache backend %q", b)
	}
	return nil
}

func validSortBy(v any) error {
	switch v.(string) {
	case "publishedAt", "relevancy", "popularity":
		return nil
	default:
		return errors.New("must be publishedAt, relevancy or popularity")
	}
}
