// Package tui is the terminal front end for a practice session.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"chordtrainer/internal/core/model"
	"chordtrainer/internal/core/practice"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller is the part of trainer.Trainer the terminal view drives.
type Controller interface {
	Start(globalInterval int) error
	Stop() (model.SessionRecord, bool, error)
	Skip()
	Running() bool
	Subscribe(buffer int) <-chan practice.Event
}

// Options configures Run.
type Options struct {
	SetName  string
	Interval int
	Input    io.Reader
	Output   io.Writer
}

type (
	engineEventMsg practice.Event
	eventsClosedMsg struct{}
)

// Model is the Bubble Tea model for the practice screen.
type Model struct {
	controller Controller
	events     <-chan practice.Event
	setName    string
	interval   int

	keys     keyMap
	help     help.Model
	bar      progress.Model
	state    practice.State
	chord    string
	total    int
	left     int
	status   string
	failed   bool
	saved    int
	quitting bool
}

// NewModel creates the practice screen and subscribes to controller events.
func NewModel(controller Controller, opts Options) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40
	return Model{
		controller: controller,
		events:     controller.Subscribe(64),
		setName:    opts.SetName,
		interval:   opts.Interval,
		keys:       defaultKeys(),
		help:       help.New(),
		bar:        bar,
		state:      practice.StateIdle,
		status:     "Press s to start.",
	}
}

// Init starts listening for engine events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan practice.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return engineEventMsg(event)
	}
}

// Update handles keys and engine events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case engineEventMsg:
		m.applyEvent(practice.Event(msg))
		return m, waitForEvent(m.events)
	case eventsClosedMsg:
		return m, nil
	case tea.WindowSizeMsg:
		width := msg.Width - 12
		if width > 60 {
			width = 60
		}
		if width > 10 {
			m.bar.Width = width
		}
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stop()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		if m.controller.Running() {
			m.stop()
			return m, nil
		}
		if err := m.controller.Start(m.interval); err != nil {
			m.setError(err)
			return m, nil
		}
		m.failed = false
		m.status = "Practicing " + m.setName
	case key.Matches(msg, m.keys.Next):
		if m.controller.Running() {
			m.controller.Skip()
		}
	}
	return m, nil
}

func (m *Model) stop() {
	record, ok, err := m.controller.Stop()
	if !ok {
		return
	}
	m.saved++
	m.state = practice.StateIdle
	m.chord = ""
	m.left = 0
	if err != nil {
		m.setError(fmt.Errorf("session of %ds not saved: %w", record.Duration, err))
		return
	}
	m.failed = false
	m.status = fmt.Sprintf("Session saved: %d seconds.", record.Duration)
}

func (m *Model) setError(err error) {
	m.failed = true
	m.status = err.Error()
}

func (m *Model) applyEvent(event practice.Event) {
	switch event.Type {
	case practice.EventStarted:
		m.state = practice.StateRunning
	case practice.EventChord:
		m.state = practice.StateRunning
		m.chord = event.Chord
		m.total = event.Interval
		m.left = event.Interval
	case practice.EventTick:
		m.chord = event.Chord
		m.total = event.Interval
		m.left = event.Remaining
	case practice.EventSkipped:
		m.state = practice.StateSkipping
	case practice.EventStopped:
		m.state = practice.StateIdle
		m.chord = ""
		m.left = 0
	}
}

// View renders the practice screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body strings.Builder
	body.WriteString(titleStyle.Render("Chord Trainer"))
	body.WriteString(mutedStyle.Render("  " + m.setName))
	body.WriteString("\n")

	chord := m.chord
	if chord == "" {
		chord = "-"
	}
	body.WriteString(chordStyle.Render(chord))
	body.WriteString("\n")

	if m.state != practice.StateIdle && m.total > 0 {
		body.WriteString(timerStyle.Render(fmt.Sprintf("%2ds ", m.left)))
		body.WriteString(m.bar.ViewAs(float64(m.left) / float64(m.total)))
	} else {
		body.WriteString(mutedStyle.Render("idle"))
	}
	body.WriteString("\n\n")

	if m.failed {
		body.WriteString(errStyle.Render(m.status))
	} else {
		body.WriteString(okStyle.Render(m.status))
	}
	body.WriteString("\n")
	body.WriteString(m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, frameStyle.Render(body.String()))
}

// Run shows the practice screen until the user quits or ctx is cancelled.
// A session still running on exit is stopped and logged.
func Run(ctx context.Context, controller Controller, opts Options) error {
	programOptions := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOptions = append(programOptions, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOptions = append(programOptions, tea.WithOutput(opts.Output))
	}

	program := tea.NewProgram(NewModel(controller, opts), programOptions...)
	_, err := program.Run()
	if controller.Running() {
		if _, _, stopErr := controller.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal trainer: %w", err)
	}
	return nil
}
