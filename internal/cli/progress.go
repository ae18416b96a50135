package cli

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	lipglossv2 "charm.land/lipgloss/v2"
	"golang.org/x/term"
)

// Theme holds the color scheme for CLI output.
type Theme struct {
	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Accent:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

func (t Theme) successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// isTTY reports whether stdout is an interactive terminal. Styling and
// the spinner are disabled when output is piped.
func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// doneMsg signals that the background work finished.
type doneMsg struct{}

// spinnerModel is the bubbletea model shown while a search runs.
type spinnerModel struct {
	spinner  spinner.Model
	label    string
	theme    Theme
	quitting bool
}

func newSpinnerModel(label string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipglossv2.NewStyle().Foreground(lipglossv2.Color(string(defaultTheme.Accent)))
	return spinnerModel{
		spinner: s,
		label:   label,
		theme:   defaultTheme,
	}
}

// Init returns the initial command (start spinning).
func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and returns the updated model.
func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the spinner line.
func (m spinnerModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	hint := m.theme.hintStyle().Render("Ctrl+C to abort")
	return tea.NewView(fmt.Sprintf("%s %s  %s\n", m.spinner.View(), m.label, hint))
}

// runWithSpinner executes fn while showing an animated spinner. When
// stdout is not a terminal, fn runs directly with no UI.
func runWithSpinner(label string, fn func() error) error {
	if !isTTY() {
		return fn()
	}

	p := tea.NewProgram(newSpinnerModel(label))
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
		p.Send(doneMsg{})
	}()

	if _, uiErr := p.Run(); uiErr != nil {
		// The work itself is unaffected by a UI failure.
		return <-errCh
	}
	return <-errCh
}
