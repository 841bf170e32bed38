package tui

import (
	"errors"

	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driving"
)

// ErrMissingAskService is returned when the ask service is not provided.
var ErrMissingAskService = errors.New("tui: ask service is required")

// Ports aggregates the driving port interfaces required by the chat UI.
type Ports struct {
	// Ask answers questions about the indexed documentation.
	Ask driving.AskService

	// Settings provides the current retrieval parameters. Optional;
	// without it the query defaults apply.
	Settings driving.SettingsService

	// ConfigPath is the settings file to watch for changes. Optional;
	// empty disables hot reload.
	ConfigPath string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	return nil
}
