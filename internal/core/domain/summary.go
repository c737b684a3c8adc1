package domain

import "strings"

// SummaryMode selects between the brief and detailed summarisation strategies.
type SummaryMode string

// Available summary modes.
const (
	// SummaryBrief produces a 1-2 sentence summary via map-reduce.
	SummaryBrief SummaryMode = "brief"

	// SummaryDetailed produces a single paragraph from all articles at once.
	SummaryDetailed SummaryMode = "detailed"
)

// ParseSummaryMode converts user input into a SummaryMode.
func ParseSummaryMode(s string) (SummaryMode, error) {
	m := SummaryMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", ErrInvalidInput
	}
	return m, nil
}

// IsValid returns true if the summary mode is recognised.
func (m SummaryMode) IsValid() bool {
	switch m {
	case SummaryBrief, SummaryDetailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SummaryMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SummaryMode) Description() string {
	switch m {
	case SummaryBrief:
		return "Brief (1-2 sentences)"
	case SummaryDetailed:
		return "Detailed (one paragraph)"
	default:
		return unknownDescription
	}
}

// Toggle returns the other mode.
func (m SummaryMode) Toggle() SummaryMode {
	if m == SummaryDetailed {
		return SummaryBrief
	}
	return SummaryDetailed
}

// SummaryRequest asks for a summary of indexed articles.
type SummaryRequest struct {
	// ArticleIDs selects the articles to summarise.
	ArticleIDs []string

	// Mode is the summarisation strategy.
	Mode SummaryMode
}
