package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/askdocs-labs/askdocs-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat with the indexed documentation",
	Long: `Launches an interactive terminal session for asking questions
about the indexed documentation.

Controls:
  Enter    - Ask the typed question
  ↑/↓      - Scroll the conversation
  Ctrl+S   - Toggle source citations
  Esc, q   - Quit (q only when the input is empty)`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps a TUI crash from eating its stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := ensureAskService(); err != nil {
		return err
	}

	configPath := ""
	if configStore != nil {
		configPath = configStore.Path()
	}

	app, err := tui.NewApp(&tui.Ports{
		Ask:        askService,
		Settings:   settingsService,
		ConfigPath: configPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create chat UI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}
	return nil
}
