package spinner

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type messageMsg string

type stopMsg struct{}

type model struct {
	spinner  spinner.Model
	quitting bool
	message  string
}

func InitialModel(message string) model {
	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6"))
	return model{
		spinner: s,
		message: message,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messageMsg:
		m.message = string(msg)
		return m, nil

	case stopMsg:
		m.quitting = true
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

// Spinner shows a status line while work runs in the background
type Spinner struct {
	program *tea.Program
	done    chan struct{}
}

// Start runs a spinner on w. It neither reads input nor handles signals, so
// interrupts reach the caller's context
func Start(message string, w io.Writer) *Spinner {
	s := &Spinner{
		program: tea.NewProgram(InitialModel(message), tea.WithOutput(w), tea.WithInput(nil), tea.WithoutSignalHandler()),
		done:    make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		if _, err := s.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			fmt.Fprintf(os.Stderr, "Error running spinner: %v\n", err)
		}
	}()
	return s
}

// Update replaces the status text
func (s *Spinner) Update(message string) {
	s.program.Send(messageMsg(message))
}

// Stop clears the spinner line and waits for it to exit
func (s *Spinner) Stop() {
	s.program.Send(stopMsg{})
	<-s.done
}
