package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// doneMsg signals that the background work finished.
type doneMsg struct{}

// spinnerModel shows a spinner while a long-running command executes.
type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    <-chan struct{}
}

func newSpinnerModel(label string, done <-chan struct{}) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	return spinnerModel{spinner: s, label: label, done: done}
}

func (m spinnerModel) Init() tea.Cmd {
	wait := func() tea.Msg {
		<-m.done
		return doneMsg{}
	}
	return tea.Batch(m.spinner.Tick, wait)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		// The compose command keeps running; keys only affect the display.
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	return m.spinner.View() + " " + m.label
}

// RunWithSpinner executes work while displaying a spinner, falling back to
// a plain call when stdout is not a terminal. The work runs exactly once
// either way, and its error is always the one returned.
func RunWithSpinner(label string, work func() error) error {
	if !isTerminal(os.Stdout) {
		return work()
	}

	var workErr error
	done := make(chan struct{})
	go func() {
		workErr = work()
		close(done)
	}()

	if _, err := tea.NewProgram(newSpinnerModel(label, done)).Run(); err != nil {
		// Display-only failure; wait for the work to finish regardless.
		<-done
	}
	return workErr
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
