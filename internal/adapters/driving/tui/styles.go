package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains the pre-configured lipgloss styles for the chat view.
type Styles struct {
	// Title renders the header line.
	Title lipgloss.Style

	// Question renders the user's questions in the transcript.
	Question lipgloss.Style

	// Answer renders generated answers.
	Answer lipgloss.Style

	// Source renders citation lines under an answer.
	Source lipgloss.Style

	// Warning renders grounding-failure and reload notices.
	Warning lipgloss.Style

	// Error renders failures.
	Error lipgloss.Style

	// Status renders the bottom status line.
	Status lipgloss.Style

	// Input frames the question input.
	Input lipgloss.Style
}

// DefaultStyles returns the default chat styling.
func DefaultStyles() *Styles {
	var (
		primary = lipgloss.Color("#7C3AED") // Purple
		muted   = lipgloss.Color("#6C7086") // Medium gray
		warning = lipgloss.Color("#F9E2AF") // Yellow
		errCol  = lipgloss.Color("#F38BA8") // Red
		border  = lipgloss.Color("#45475A") // Border gray
	)

	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		Question: lipgloss.NewStyle().Bold(true),
		Answer:   lipgloss.NewStyle(),
		Source:   lipgloss.NewStyle().Foreground(muted),
		Warning:  lipgloss.NewStyle().Foreground(warning),
		Error:    lipgloss.NewStyle().Foreground(errCol),
		Status:   lipgloss.NewStyle().Foreground(muted),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
	}
}
