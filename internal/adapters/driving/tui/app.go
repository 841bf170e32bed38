// Package tui implements the interactive chat interface for askdocs.
//
// The UI is a single conversation view: a scrollable transcript of
// questions and grounded answers, a question input, and a status line.
// When a config file path is provided, edits to the settings file are
// picked up without restarting the session.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
)

// App is the bubbletea model for the chat session.
type App struct {
	ports  *Ports
	styles *Styles
	ctx    context.Context

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	// watcher observes the settings file; nil when hot reload is off.
	watcher *fsnotify.Watcher

	transcript  []string
	showSources bool
	waiting     bool
	status      string

	width  int
	height int
	ready  bool
}

// NewApp creates the chat application model.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	styles := DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask a question about the docs..."
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Title

	app := &App{
		ports:       ports,
		styles:      styles,
		ctx:         context.Background(),
		input:       input,
		spinner:     sp,
		showSources: true,
		status:      "Enter to ask, Ctrl+S toggles sources, Esc quits",
	}

	if ports.ConfigPath != "" {
		watcher, err := fsnotify.NewWatcher()
		if err == nil {
			// Watch the directory: editors replace the file on save,
			// which a file-level watch would lose track of.
			if err := watcher.Add(filepath.Dir(ports.ConfigPath)); err == nil {
				app.watcher = watcher
			} else {
				watcher.Close() //nolint:errcheck,gosec
			}
		}
	}

	return app, nil
}

// WithContext sets the context used for ask calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init initialises the model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if a.watcher != nil {
		cmds = append(cmds, a.waitForConfigChange())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case answerReceived:
		a.handleAnswer(msg)
		return a, nil

	case configChanged:
		a.status = "Settings file changed; new questions use the updated settings"
		return a, a.waitForConfigChange()

	case watcherStopped:
		return a, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		a.close()
		return a, tea.Quit

	case tea.KeyCtrlS:
		a.showSources = !a.showSources
		if a.showSources {
			a.status = "Source citations on"
		} else {
			a.status = "Source citations off"
		}
		return a, nil

	case tea.KeyEnter:
		return a.submit()

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd

	default:
		// q quits only from an empty input, so it stays typeable.
		if msg.String() == "q" && a.input.Value() == "" {
			a.close()
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
}

func (a *App) submit() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(a.input.Value())
	if question == "" || a.waiting {
		return a, nil
	}

	a.transcript = append(a.transcript, a.styles.Question.Render("> "+question))
	a.refreshViewport()

	a.input.SetValue("")
	a.waiting = true
	a.status = "Thinking..."

	return a, tea.Batch(a.spinner.Tick, a.ask(question))
}

// ask runs the query off the UI loop and reports back as a message.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		query := a.buildQuery(question)
		answer, err := a.ports.Ask.Ask(a.ctx, query)
		return answerReceived{Question: question, Answer: answer, Err: err}
	}
}

// buildQuery applies the current settings to the question. Settings are
// read per question, so file edits apply to the next ask.
func (a *App) buildQuery(question string) domain.Query {
	query := domain.NewQuery(question)
	query.IncludeSources = a.showSources

	if a.ports.Settings != nil {
		if settings, err := a.ports.Settings.Get(); err == nil {
			query.MaxChunks = settings.Retrieval.MaxChunks
			query.Temperature = settings.Retrieval.Temperature
		}
	}
	return query
}

func (a *App) handleAnswer(msg answerReceived) {
	a.waiting = false
	a.status = "Enter to ask, Ctrl+S toggles sources, Esc quits"

	if msg.Err != nil {
		a.transcript = append(a.transcript, a.styles.Error.Render(fmt.Sprintf("Error: %v", msg.Err)))
		a.refreshViewport()
		return
	}

	block := []string{a.styles.Answer.Render(msg.Answer.Answer)}

	if msg.Answer.GroundingFailed {
		block = append(block, a.styles.Warning.Render("(no relevant indexed content was found)"))
	}

	if a.showSources && len(msg.Answer.Sources) > 0 {
		for i, source := range msg.Answer.Sources {
			title := source.SourceTitle
			if title == "" {
				title = source.SourceURL
			}
			block = append(block, a.styles.Source.Render(
				fmt.Sprintf("  [%d] %s (%.2f)", i+1, title, source.RelevanceScore)))
			block = append(block, a.styles.Source.Render("      "+source.SourceURL))
		}
	}

	a.transcript = append(a.transcript, strings.Join(block, "\n"))
	a.refreshViewport()
}

func (a *App) setDimensions(width, height int) {
	a.width = width
	a.height = height

	// Title, status and the bordered input take the fixed rows.
	viewportHeight := height - 7
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !a.ready {
		a.viewport = viewport.New(width, viewportHeight)
		a.ready = true
	} else {
		a.viewport.Width = width
		a.viewport.Height = viewportHeight
	}
	a.input.Width = width - 6
	a.refreshViewport()
}

func (a *App) refreshViewport() {
	if !a.ready {
		return
	}
	wrap := a.styles.Answer.Width(a.viewport.Width)
	a.viewport.SetContent(wrap.Render(strings.Join(a.transcript, "\n\n")))
	a.viewport.GotoBottom()
}

// View renders the chat screen.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("askdocs chat"))
	b.WriteString("\n\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n")

	if a.waiting {
		b.WriteString(a.spinner.View())
		b.WriteString(" ")
	}
	b.WriteString(a.styles.Status.Render(a.status))
	b.WriteString("\n")
	b.WriteString(a.styles.Input.Width(a.width - 2).Render(a.input.View()))
	return b.String()
}

// waitForConfigChange blocks until the settings file changes.
func (a *App) waitForConfigChange() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-a.watcher.Events:
				if !ok {
					return watcherStopped{}
				}
				if event.Name == a.ports.ConfigPath &&
					event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					return configChanged{}
				}
			case _, ok := <-a.watcher.Errors:
				if !ok {
					return watcherStopped{}
				}
			}
		}
	}
}

func (a *App) close() {
	if a.watcher != nil {
		a.watcher.Close() //nolint:errcheck,gosec
		a.watcher = nil
	}
}
