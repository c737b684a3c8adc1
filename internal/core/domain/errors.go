package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown provider or backend name.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Summarisation is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Indexing and similarity queries are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// Pipeline Errors.

	// ErrFetch indicates the news source could not be reached or answered
	// with an error payload.
	ErrFetch = errors.New("fetch failed")

	// ErrAuth indicates the news or AI provider rejected the API key.
	ErrAuth = errors.New("authentication invalid")

	// ErrEmptyIndex indicates a similarity query ran before anything was indexed.
	ErrEmptyIndex = errors.New("index is empty")

	// ErrEmbedding indicates the embedding backend failed to embed text.
	ErrEmbedding = errors.New("embedding failed")

	// ErrSummarization indicates the language model failed to produce a summary.
	ErrSummarization = errors.New("summarization failed")

	// ErrPersistence indicates preferences or history could not be read or written.
	// Callers treat it as non-fatal and keep in-memory state.
	ErrPersistence = errors.New("persistence failed")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
