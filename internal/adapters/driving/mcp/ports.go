package mcp

import (
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. A single injection point for dependency injection.
type Ports struct {
	// Ask answers questions and performs similarity search.
	Ask driving.AskService

	// Docs lists indexed pages. Optional; without it the pages
	// resource reports an empty index.
	Docs driven.DocumentStore
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	return nil
}
