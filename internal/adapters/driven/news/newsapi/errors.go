package newsapi

import (
	"fmt"
)

// API error codes that mean the key itself was rejected.
const (
	CodeAPIKeyInvalid  = "apiKeyInvalid"
	CodeAPIKeyMissing  = "apiKeyMissing"
	CodeAPIKeyDisabled = "apiKeyDisabled"
	CodeRateLimited    = "rateLimited"
)

// APIError is a NewsAPI error payload or unexpected HTTP status.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("newsapi: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("newsapi: unexpected status %d: %s", e.StatusCode, e.Message)
}

// isAuthFailure reports whether the key was rejected.
func (e *APIError) isAuthFailure() bool {
	switch e.Code {
	case CodeAPIKeyInvalid, CodeAPIKeyMissing, CodeAPIKeyDisabled:
		return true
	}
	return e.StatusCode == 401 || e.StatusCode == 403
}

// isRateLimited reports whether the request was throttled upstream.
func (e *APIError) isRateLimited() bool {
	return e.StatusCode == 429 || e.Code == CodeRateLimited
}
