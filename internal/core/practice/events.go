package practice

import (
	"time"

	"chordtrainer/internal/core/model"
)

// State represents the current Engine mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	// StateSkipping lasts from a consumed skip until the next chord is drawn.
	StateSkipping State = "skipping"
)

// EventType defines the type of Engine event.
type EventType string

const (
	EventStarted EventType = "started"
	EventChord   EventType = "chord"
	EventTick    EventType = "tick"
	EventSkipped EventType = "skipped"
	EventStopped EventType = "stopped"
)

// Event represents an Engine update for observers.
type Event struct {
	Type      EventType
	State     State
	Chord     string
	Interval  int
	Remaining int
	Record    *model.SessionRecord
	At        time.Time
}
