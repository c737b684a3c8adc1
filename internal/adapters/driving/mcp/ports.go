package mcp

import (
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Session runs searches and similarity queries and holds the current results.
	Session driving.SessionService

	// Summary summarises indexed articles by ID. Optional.
	Summary driving.SummaryService

	// Index resolves indexed articles for the article resource. Optional.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
