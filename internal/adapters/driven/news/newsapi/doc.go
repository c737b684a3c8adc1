// Package newsapi fetches articles from the NewsAPI /v2/everything endpoint.
//
// Requests carry the API key in the X-Api-Key header and are throttled by a
// token bucket. A 429 response sets a backoff window honouring Retry-After;
// fetches inside it fail at once with domain.ErrRateLimited.
// Rejected keys are reported as both domain.ErrFetch and domain.ErrAuth so
// callers can prompt for a new key.
package newsapi
