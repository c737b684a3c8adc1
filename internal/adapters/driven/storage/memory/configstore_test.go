package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("llm.model", "m1"))
	require.NoError(t, store.Set("llm.model", "m2"))

	val, ok := store.Get("llm.model")
	assert.True(t, ok)
	assert.Equal(t, "m2", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	tests := []struct {
		name  string
		value any
		str   string
		i     int
		f     float64
		b     bool
	}{
		{name: "string", value: "x", str: "x"},
		{name: "int", value: 7, i: 7, f: 7},
		{name: "int64", value: int64(9), i: 9, f: 9},
		{name: "float64", value: 0.5, i: 0, f: 0.5},
		{name: "bool", value: true, b: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("k", tt.value))

			assert.Equal(t, tt.str, store.GetString("k"))
			assert.Equal(t, tt.i, store.GetInt("k"))
			assert.InDelta(t, tt.f, store.GetFloat("k"), 1e-9)
			assert.Equal(t, tt.b, store.GetBool("k"))
		})
	}
}

func TestConfigStore_NoOps(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrent(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("counter", n)
			_ = store.GetInt("counter")
		}(i)
	}
	wg.Wait()
	_, ok := store.Get("counter")
	assert.True(t, ok)
}

func TestConfigStore_Seed(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"llm.provider": "ollama", "llm.model": "llama3"},
		map[string]any{"llm.model": "mistral"},
	)

	assert.Equal(t, "ollama", store.GetString("llm.provider"))
	assert.Equal(t, "mistral", store.GetString("llm.model"), "later seeds win")
}
