package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSessionService indicates that no session was provided.
	ErrNoSessionService = errors.New("session service is required")
)
