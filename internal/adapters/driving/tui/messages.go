package tui

import "github.com/askdocs-labs/askdocs-cli/internal/core/domain"

// answerReceived carries a completed ask call back to the model.
type answerReceived struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// configChanged signals that the settings file was modified on disk.
type configChanged struct{}

// watcherStopped signals that config watching ended, usually because
// the watcher was closed at quit.
type watcherStopped struct{}
