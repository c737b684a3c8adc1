package topics

import "errors"

// ErrNoPreferenceService indicates that no preference service was provided.
var ErrNoPreferenceService = errors.New("preference service is required")
