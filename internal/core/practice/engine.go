package practice

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"chordtrainer/internal/core/model"
)

// ErrEmptySet indicates a session was requested for a set without chords.
var ErrEmptySet = errors.New("chord set is empty")

// Config contains runtime options for Engine.
type Config struct {
	TickInterval time.Duration
	Rand         *rand.Rand
	Now          func() time.Time
}

// Engine draws random chords and counts each one down, one tick at a time.
type Engine struct {
	mu             sync.Mutex
	options        Config
	rng            *rand.Rand
	state          State
	set            *model.ChordSet
	globalInterval int
	startedAt      time.Time
	cancel         context.CancelFunc
	done           chan struct{}
	skipCh         chan struct{}
	events         []chan Event
}

// New creates an Engine with the provided options.
func New(options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	rng := options.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Engine{
		options: options,
		rng:     rng,
		state:   StateIdle,
	}
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	engine.events = append(engine.events, ch)
	engine.mu.Unlock()
	return ch
}

// State returns the current mode.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// StartedAt returns the start time of the running session, or the zero time.
func (engine *Engine) StartedAt() time.Time {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state == StateIdle {
		return time.Time{}
	}
	return engine.startedAt
}

// Start begins a session with a private copy of set.
// Calling Start while a session is active does nothing.
func (engine *Engine) Start(set *model.ChordSet, globalInterval int) error {
	engine.mu.Lock()
	if engine.state != StateIdle {
		engine.mu.Unlock()
		return nil
	}
	if set.Len() == 0 {
		engine.mu.Unlock()
		return ErrEmptySet
	}
	if globalInterval <= 0 {
		globalInterval = model.DefaultInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	engine.set = set.Clone()
	engine.globalInterval = globalInterval
	engine.startedAt = engine.options.Now()
	engine.state = StateRunning
	engine.cancel = cancel
	engine.done = make(chan struct{})
	engine.skipCh = make(chan struct{}, 1)
	done, skip, startedAt := engine.done, engine.skipCh, engine.startedAt

	engine.emitLocked(Event{
		Type:     EventStarted,
		State:    StateRunning,
		Interval: globalInterval,
		At:       startedAt,
	})
	engine.mu.Unlock()

	go engine.run(ctx, done, skip)
	return nil
}

// Skip ends the current chord's countdown early.
func (engine *Engine) Skip() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state != StateRunning {
		return
	}
	select {
	case engine.skipCh <- struct{}{}:
	default:
	}
}

// UpdateSet replaces the chords used for subsequent draws of the running
// session. While idle it does nothing; Start takes its own set.
func (engine *Engine) UpdateSet(set *model.ChordSet) error {
	if set.Len() == 0 {
		return ErrEmptySet
	}
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state == StateIdle {
		return nil
	}
	engine.set = set.Clone()
	return nil
}

// Stop ends the session and returns its record.
// It waits for the countdown goroutine, which exits within one tick.
func (engine *Engine) Stop() (model.SessionRecord, bool) {
	engine.mu.Lock()
	if engine.state == StateIdle {
		engine.mu.Unlock()
		return model.SessionRecord{}, false
	}
	engine.cancel()
	record := model.NewSessionRecord(engine.startedAt, engine.options.Now())
	engine.state = StateIdle
	engine.cancel = nil
	done := engine.done
	engine.mu.Unlock()

	<-done

	engine.emit(Event{
		Type:   EventStopped,
		State:  StateIdle,
		Record: &record,
		At:     record.End,
	})
	return record, true
}

// Close stops any session and closes observers.
func (engine *Engine) Close() {
	engine.Stop()

	engine.mu.Lock()
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) run(ctx context.Context, done chan<- struct{}, skip <-chan struct{}) {
	defer close(done)

	for {
		chord, interval, ok := engine.nextChord(ctx)
		if !ok {
			return
		}
		if !engine.countdown(ctx, skip, chord, interval) {
			return
		}
	}
}

func (engine *Engine) nextChord(ctx context.Context) (string, int, bool) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if ctx.Err() != nil {
		return "", 0, false
	}

	names := engine.set.Names()
	chord := names[engine.rng.Intn(len(names))]
	interval := engine.set.Resolve(chord, engine.globalInterval)
	engine.state = StateRunning

	engine.emitLocked(Event{
		Type:     EventChord,
		State:    StateRunning,
		Chord:    chord,
		Interval: interval,
		At:       engine.options.Now(),
	})
	return chord, interval, true
}

// countdown reports false once the session has been cancelled.
func (engine *Engine) countdown(ctx context.Context, skip <-chan struct{}, chord string, interval int) bool {
	ticker := time.NewTicker(engine.options.TickInterval)
	defer ticker.Stop()

	for remaining := interval; remaining > 0; remaining-- {
		if !engine.emitIfActive(ctx, Event{
			Type:      EventTick,
			State:     StateRunning,
			Chord:     chord,
			Interval:  interval,
			Remaining: remaining,
		}) {
			return false
		}

		select {
		case <-ctx.Done():
			return false
		case <-skip:
			return engine.markSkipped(ctx, chord, remaining)
		case <-ticker.C:
		}
	}
	return ctx.Err() == nil
}

func (engine *Engine) markSkipped(ctx context.Context, chord string, remaining int) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	engine.state = StateSkipping
	engine.emitLocked(Event{
		Type:      EventSkipped,
		State:     StateSkipping,
		Chord:     chord,
		Remaining: remaining,
		At:        engine.options.Now(),
	})
	return true
}

func (engine *Engine) emitIfActive(ctx context.Context, event Event) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	event.At = engine.options.Now()
	engine.emitLocked(event)
	return true
}

func (engine *Engine) emit(event Event) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.emitLocked(event)
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
