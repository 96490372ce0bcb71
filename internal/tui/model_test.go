package tui

import (
	"errors"
	"testing"
	"time"

	"chordtrainer/internal/core/model"
	"chordtrainer/internal/core/practice"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	running  bool
	started  []int
	skips    int
	stops    int
	startErr error
	stopErr  error
	events   chan practice.Event
}

func newFakeController() *fakeController {
	return &fakeController{events: make(chan practice.Event, 8)}
}

func (f *fakeController) Start(globalInterval int) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = append(f.started, globalInterval)
	f.running = true
	return nil
}

func (f *fakeController) Stop() (model.SessionRecord, bool, error) {
	if !f.running {
		return model.SessionRecord{}, false, nil
	}
	f.running = false
	f.stops++
	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	return model.NewSessionRecord(start, start.Add(42*time.Second)), true, f.stopErr
}

func (f *fakeController) Skip()         { f.skips++ }
func (f *fakeController) Running() bool { return f.running }

func (f *fakeController) Subscribe(int) <-chan practice.Event {
	return f.events
}

func press(t *testing.T, m Model, keys string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	if keys == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestToggleStartsAndStops(t *testing.T) {
	controller := newFakeController()
	m := NewModel(controller, Options{SetName: "default_chords.csv", Interval: 20})

	m, _ = press(t, m, "s")
	assert.Equal(t, []int{20}, controller.started)
	assert.True(t, controller.running)

	m, _ = press(t, m, "s")
	assert.Equal(t, 1, controller.stops)
	assert.Contains(t, m.status, "42 seconds")
	assert.False(t, m.failed)
}

func TestStartErrorIsShown(t *testing.T) {
	controller := newFakeController()
	controller.startErr = practice.ErrEmptySet
	m := NewModel(controller, Options{Interval: 15})

	m, _ = press(t, m, "s")
	assert.True(t, m.failed)
	assert.Equal(t, practice.ErrEmptySet.Error(), m.status)
}

func TestSaveFailureIsShown(t *testing.T) {
	controller := newFakeController()
	controller.stopErr = errors.New("disk full")
	m := NewModel(controller, Options{Interval: 15})

	m, _ = press(t, m, "s")
	m, _ = press(t, m, "s")
	assert.True(t, m.failed)
	assert.Contains(t, m.status, "disk full")
}

func TestNextOnlySkipsWhileRunning(t *testing.T) {
	controller := newFakeController()
	m := NewModel(controller, Options{Interval: 15})

	m, _ = press(t, m, "n")
	assert.Zero(t, controller.skips)

	m, _ = press(t, m, "s")
	m, _ = press(t, m, "n")
	_, _ = press(t, m, " ")
	assert.Equal(t, 2, controller.skips)
}

func TestQuitStopsRunningSession(t *testing.T) {
	controller := newFakeController()
	m := NewModel(controller, Options{Interval: 15})

	m, _ = press(t, m, "s")
	m, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 1, controller.stops)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestEngineEventsUpdateView(t *testing.T) {
	controller := newFakeController()
	m := NewModel(controller, Options{SetName: "triads.csv", Interval: 15})

	updated, cmd := m.Update(engineEventMsg(practice.Event{Type: practice.EventChord, Chord: "F#m", Interval: 12}))
	m = updated.(Model)
	assert.NotNil(t, cmd, "keeps listening")
	assert.Equal(t, "F#m", m.chord)
	assert.Equal(t, 12, m.left)

	updated, _ = m.Update(engineEventMsg(practice.Event{Type: practice.EventTick, Chord: "F#m", Interval: 12, Remaining: 7}))
	m = updated.(Model)
	assert.Equal(t, 7, m.left)
	view := m.View()
	assert.Contains(t, view, "F#m")
	assert.Contains(t, view, " 7s")
	assert.Contains(t, view, "triads.csv")

	updated, _ = m.Update(engineEventMsg(practice.Event{Type: practice.EventStopped}))
	m = updated.(Model)
	assert.Equal(t, practice.StateIdle, m.state)
	assert.Contains(t, m.View(), "idle")
}

func TestWaitForEventReportsClosedChannel(t *testing.T) {
	events := make(chan practice.Event)
	close(events)
	assert.Equal(t, eventsClosedMsg{}, waitForEvent(events)())
}
