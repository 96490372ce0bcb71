// Package trainer ties the practice engine to chord set storage and the
// progress log. Every front end drives practice through a Trainer.
package trainer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"chordtrainer/internal/core/model"
	"chordtrainer/internal/core/practice"

	"github.com/rs/zerolog/log"
)

// ErrNoSetSelected indicates Start was called before a chord set was chosen.
var ErrNoSetSelected = errors.New("no chord set selected")

// SetSource loads chord sets by identifier.
type SetSource interface {
	Load(id string) (*model.ChordSet, error)
}

// RecordAppender persists finished sessions.
type RecordAppender interface {
	Append(record model.SessionRecord) error
}

// Engine is the part of practice.Engine the trainer drives.
type Engine interface {
	Start(set *model.ChordSet, globalInterval int) error
	Stop() (model.SessionRecord, bool)
	Skip()
	UpdateSet(set *model.ChordSet) error
	State() practice.State
	Subscribe(buffer int) <-chan practice.Event
}

// Trainer owns the active chord set and the session lifecycle.
type Trainer struct {
	mu        sync.Mutex
	engine    Engine
	sets      SetSource
	log       RecordAppender
	activeID  string
	activeSet *model.ChordSet
}

// New creates a Trainer.
func New(engine Engine, sets SetSource, appender RecordAppender) *Trainer {
	return &Trainer{
		engine: engine,
		sets:   sets,
		log:    appender,
	}
}

// SelectSet loads id and makes it the active set. A running session picks
// up the new chords on its next draw.
func (trainer *Trainer) SelectSet(id string) (*model.ChordSet, error) {
	set, err := trainer.sets.Load(id)
	if err != nil {
		return nil, err
	}
	trainer.activate(id, set)
	return set.Clone(), nil
}

func (trainer *Trainer) activate(id string, set *model.ChordSet) {
	trainer.mu.Lock()
	trainer.activeID = id
	trainer.activeSet = set
	trainer.mu.Unlock()

	if trainer.engine.State() != practice.StateIdle {
		if err := trainer.engine.UpdateSet(set); err != nil {
			log.Warn().Err(err).Str("set", id).Msg("keeping previous chords for running session")
		}
	}
	log.Info().Str("set", id).Int("chords", set.Len()).Msg("chord set selected")
}

// ActiveSet returns the active identifier and a copy of its chords.
func (trainer *Trainer) ActiveSet() (string, *model.ChordSet) {
	trainer.mu.Lock()
	defer trainer.mu.Unlock()
	return trainer.activeID, trainer.activeSet.Clone()
}

// ClearActive forgets the active set, for example after it was deleted.
func (trainer *Trainer) ClearActive(id string) {
	trainer.mu.Lock()
	defer trainer.mu.Unlock()
	if normalize(trainer.activeID) == normalize(id) {
		trainer.activeID = ""
		trainer.activeSet = nil
	}
}

// Reload re-reads the active set from storage.
func (trainer *Trainer) Reload() (*model.ChordSet, error) {
	trainer.mu.Lock()
	id := trainer.activeID
	trainer.mu.Unlock()
	if id == "" {
		return nil, ErrNoSetSelected
	}
	return trainer.SelectSet(id)
}

// HandleSetChanged reloads the active set when name refers to it. Writes
// that leave the chords unchanged are ignored.
func (trainer *Trainer) HandleSetChanged(name string) {
	trainer.mu.Lock()
	active, current := trainer.activeID, trainer.activeSet
	trainer.mu.Unlock()
	if active == "" || normalize(active) != normalize(name) {
		return
	}

	edited, err := trainer.sets.Load(active)
	if err != nil {
		log.Warn().Err(err).Str("set", name).Msg("reload of edited chord set failed")
		return
	}
	if current.Equal(edited) {
		log.Debug().Str("set", active).Msg("chord set unchanged")
		return
	}
	trainer.activate(active, edited)
}

// Start begins a session over the active set.
func (trainer *Trainer) Start(globalInterval int) error {
	trainer.mu.Lock()
	set := trainer.activeSet
	trainer.mu.Unlock()
	if set == nil {
		return ErrNoSetSelected
	}
	if err := trainer.engine.Start(set, globalInterval); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

// Skip moves on to the next chord.
func (trainer *Trainer) Skip() {
	trainer.engine.Skip()
}

// State returns the engine mode.
func (trainer *Trainer) State() practice.State {
	return trainer.engine.State()
}

// Running reports whether a session is active.
func (trainer *Trainer) Running() bool {
	return trainer.engine.State() != practice.StateIdle
}

// Subscribe registers an engine observer.
func (trainer *Trainer) Subscribe(buffer int) <-chan practice.Event {
	return trainer.engine.Subscribe(buffer)
}

// Stop ends the session and appends its record to the log. The returned
// error only reports a failed append; the session has ended either way.
func (trainer *Trainer) Stop() (model.SessionRecord, bool, error) {
	record, ok := trainer.engine.Stop()
	if !ok {
		return model.SessionRecord{}, false, nil
	}

	if err := trainer.log.Append(record); err != nil {
		log.Error().Err(err).Int("duration", record.Duration).Msg("session record not saved")
		return record, true, fmt.Errorf("save session: %w", err)
	}
	log.Info().
		Time("start", record.Start).
		Int("duration", record.Duration).
		Msg("session saved")
	return record, true, nil
}

// Shutdown stops a running session and saves it. Calling it again, or with
// no session running, does nothing.
func (trainer *Trainer) Shutdown() {
	if _, ok, _ := trainer.Stop(); ok {
		log.Info().Msg("unfinished session flushed on shutdown")
	}
}

func normalize(id string) string {
	id = filepath.Base(strings.TrimSpace(id))
	return strings.TrimSuffix(id, ".csv")
}
