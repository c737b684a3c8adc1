package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsum/internal/core/ports/driven"
)

func TestNewLLMService_RequiresKey(t *testing.T) {
	_, err := NewLLMService(context.Background(), Config{})
	assert.Error(t, err)
}

func TestNewLLMService_Defaults(t *testing.T) {
	s, err := NewLLMService(context.Background(), Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, s.ModelName())
	assert.NoError(t, s.Close())
}

func TestLLMService_Generate(t *testing.T) {
	var body map[string]any
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "Chipmakers face new export limits."}]},
				"finishReason": "STOP"
			}]
		}`))
	}))
	defer server.Close()

	s, err := NewLLMService(context.Background(), Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	out, err := s.Generate(context.Background(), "Summarize", driven.GenerateOptions{
		System:      "You summarize news.",
		MaxTokens:   150,
		Temperature: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Chipmakers face new export limits.", out)
	assert.True(t, strings.HasSuffix(path, DefaultModel+":generateContent"), path)

	gen, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 150, gen["maxOutputTokens"])
	assert.NotNil(t, body["systemInstruction"])
}

func TestLLMService_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	s, err := NewLLMService(context.Background(), Config{APIKey: "bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Generate(context.Background(), "x", driven.GenerateOptions{})
	assert.ErrorContains(t, err, "gemini API error")
}
