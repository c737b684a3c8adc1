// Package env layers environment variables under another ConfigStore.
// Values present in the wrapped store win; a bound environment variable
// fills in keys the store does not set.
package env

import (
	"os"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Binding names the environment variable for a key.
// It receives the wrapped store so the variable can depend on other settings.
type Binding func(store driven.ConfigStore) string

// Static binds a key to a fixed variable name.
func Static(name string) Binding {
	return func(driven.ConfigStore) string { return name }
}

// ProviderKey binds an api_key setting to the variable of the provider selected
// by providerKey, e.g. GROQ_API_KEY when llm.provider is groq.
func ProviderKey(providerKey string, fallback domain.AIProvider) Binding {
	return func(store driven.ConfigStore) string {
		p := domain.AIProvider(store.GetString(providerKey))
		if !p.IsValid() {
			p = fallback
		}
		return p.APIKeyEnv()
	}
}

// DefaultBindings maps config keys to the environment variables newsum reads.
func DefaultBindings() map[string]Binding {
	defaults := domain.DefaultAppSettings()
	return map[string]Binding{
		"news.api_key":      Static(domain.NewsAPIKeyEnv),
		"llm.api_key":       ProviderKey("llm.provider", defaults.LLM.Provider),
		"embedding.api_key": ProviderKey("embedding.provider", defaults.Embedding.Provider),
		"cache.redis_url":   Static("REDIS_URL"),
		"llm.base_url":      Static("LLM_BASE_URL"),
	}
}

// ConfigStore wraps a ConfigStore with environment fallbacks.
type ConfigStore struct {
	inner    driven.ConfigStore
	bindings map[string]Binding
	lookup   func(string) (string, bool)
}

// NewConfigStore wraps inner with the given bindings.
func NewConfigStore(inner driven.ConfigStore, bindings map[string]Binding) *ConfigStore {
	return &ConfigStore{inner: inner, bindings: bindings, lookup: os.LookupEnv}
}

func (s *ConfigStore) fromEnv(key string) (string, bool) {
	bind, ok := s.bindings[key]
	if !ok {
		return "", false
	}
	name := bind(s.inner)
	if name == "" {
		return "", false
	}
	v, ok := s.lookup(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Get retrieves a value, consulting the environment when the store lacks the key.
func (s *ConfigStore) Get(key string) (any, bool) {
	if v, ok := s.inner.Get(key); ok {
		return v, true
	}
	if v, ok := s.fromEnv(key); ok {
		return v, true
	}
	return nil, false
}

// GetString retrieves a string value, consulting the environment when the store value is empty.
func (s *ConfigStore) GetString(key string) string {
	if v := s.inner.GetString(key); v != "" {
		return v
	}
	v, _ := s.fromEnv(key)
	return v
}

// GetInt delegates to the wrapped store.
func (s *ConfigStore) GetInt(key string) int { return s.inner.GetInt(key) }

// GetFloat delegates to the wrapped store.
func (s *ConfigStore) GetFloat(key string) float64 { return s.inner.GetFloat(key) }

// GetBool delegates to the wrapped store.
func (s *ConfigStore) GetBool(key string) bool { return s.inner.GetBool(key) }

// Set writes to the wrapped store only; the environment is never modified.
func (s *ConfigStore) Set(key string, value any) error { return s.inner.Set(key, value) }

// Save delegates to the wrapped store.
func (s *ConfigStore) Save() error { return s.inner.Save() }

// Load delegates to the wrapped store.
func (s *ConfigStore) Load() error { return s.inner.Load() }

// Path returns the wrapped store's path.
func (s *ConfigStore) Path() string { return s.inner.Path() }
