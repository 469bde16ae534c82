package mcp

import (
	"github.com/custodia-labs/gemctl/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Resources reads engines, data stores, collections and documents.
	Resources driving.ResourceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Resources == nil {
		return ErrMissingResourceService
	}
	return nil
}
