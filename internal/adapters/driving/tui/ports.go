// Package tui provides the interactive terminal interface for newsum.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Session runs searches, similarity queries and summaries.
	Session driving.SessionService

	// Summary summarises articles outside the current results, e.g. similarity hits.
	Summary driving.SummaryService

	// Preferences manages topics, preferences and history.
	// Defaults to the session's preference service.
	Preferences driving.PreferenceService
}

// NewPorts creates a Ports aggregate over a session.
func NewPorts(session driving.SessionService, summary driving.SummaryService) *Ports {
	return &Ports{Session: session, Summary: summary}
}

// Validate ensures the required ports are set, filling Preferences from the session.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Preferences == nil {
		p.Preferences = p.Session.Preferences()
	}
	if p.Preferences == nil {
		return ErrMissingPreferenceService
	}
	return nil
}
