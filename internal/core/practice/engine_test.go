package practice

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"chordtrainer/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTick = 10 * time.Millisecond

func newTestEngine() *Engine {
	return New(Config{
		TickInterval: testTick,
		Rand:         rand.New(rand.NewSource(1)),
	})
}

func waitFor(t *testing.T, events <-chan Event, eventType EventType, timeout time.Duration) Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case event, ok := <-events:
			require.True(t, ok, "event channel closed while waiting for %s", eventType)
			if event.Type == eventType {
				return event
			}
		case <-deadline:
			require.FailNow(t, "timed out waiting for event", "type %s", eventType)
		}
	}
}

func TestStartStopYieldsOneRecord(t *testing.T) {
	engine := newTestEngine()
	events := engine.Subscribe(64)

	require.NoError(t, engine.Start(model.DefaultChordSet(), 15))
	assert.Equal(t, StateRunning, engine.State())

	record, ok := engine.Stop()
	require.True(t, ok)
	assert.GreaterOrEqual(t, record.Duration, 0)
	assert.Equal(t, StateIdle, engine.State())

	stopped := waitFor(t, events, EventStopped, time.Second)
	require.NotNil(t, stopped.Record)
	assert.Equal(t, record, *stopped.Record)

	_, ok = engine.Stop()
	assert.False(t, ok, "second stop is a no-op")
}

func TestStartRejectsEmptySet(t *testing.T) {
	engine := newTestEngine()

	assert.ErrorIs(t, engine.Start(model.NewChordSet("empty"), 15), ErrEmptySet)
	assert.ErrorIs(t, engine.Start(nil, 15), ErrEmptySet)
	assert.Equal(t, StateIdle, engine.State())
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	engine := newTestEngine()
	defer engine.Close()

	require.NoError(t, engine.Start(model.DefaultChordSet(), 15))
	startedAt := engine.StartedAt()

	require.NoError(t, engine.Start(model.NewChordSet("empty"), 15))
	assert.Equal(t, StateRunning, engine.State())
	assert.Equal(t, startedAt, engine.StartedAt())
}

func TestExplicitIntervalsOverrideGlobal(t *testing.T) {
	engine := newTestEngine()
	defer engine.Close()
	events := engine.Subscribe(128)

	set := model.NewChordSet("pair", model.ChordEntry{Name: "A", Interval: 15}, model.ChordEntry{Name: "D", Interval: 15})
	require.NoError(t, engine.Start(set, 20))

	chord := waitFor(t, events, EventChord, time.Second)
	assert.Contains(t, []string{"A", "D"}, chord.Chord)
	assert.Equal(t, 15, chord.Interval)

	for expected := 15; expected > 10; expected-- {
		tick := waitFor(t, events, EventTick, time.Second)
		assert.Equal(t, chord.Chord, tick.Chord)
		assert.Equal(t, 15, tick.Interval)
		assert.Equal(t, expected, tick.Remaining)
	}
}

func TestUnparsableIntervalFallsBackToGlobal(t *testing.T) {
	engine := newTestEngine()
	defer engine.Close()
	events := engine.Subscribe(64)

	require.NoError(t, engine.Start(model.NewChordSet("fallback", model.ChordEntry{Name: "X"}), 7))

	chord := waitFor(t, events, EventChord, time.Second)
	assert.Equal(t, "X", chord.Chord)
	assert.Equal(t, 7, chord.Interval)

	tick := waitFor(t, events, EventTick, time.Second)
	assert.Equal(t, 7, tick.Remaining)
}

func TestNonPositiveGlobalIntervalUsesDefault(t *testing.T) {
	engine := newTestEngine()
	defer engine.Close()
	events := engine.Subscribe(64)

	require.NoError(t, engine.Start(model.NewChordSet("fallback", model.ChordEntry{Name: "X"}), 0))

	chord := waitFor(t, events, EventChord, time.Second)
	assert.Equal(t, model.DefaultInterval, chord.Interval)
}

func TestSkipAdvancesToNextChord(t *testing.T) {
	engine := newTestEngine()
	defer engine.Close()
	events := engine.Subscribe(128)

	require.NoError(t, engine.Start(model.NewChordSet("long", model.ChordEntry{Name: "E", Interval: 1000}), 15))
	waitFor(t, events, EventChord, time.Second)
	waitFor(t, events, EventTick, time.Second)

	engine.Skip()

	skipped := waitFor(t, events, EventSkipped, 10*testTick)
	assert.Equal(t, "E", skipped.Chord)
	next := waitFor(t, events, EventChord, 10*testTick)
	assert.Equal(t, 1000, next.Interval)
	assert.Equal(t, StateRunning, engine.State())
}

func TestSkipWhileIdleIsNoop(t *testing.T) {
	engine := newTestEngine()
	engine.Skip()
	assert.Equal(t, StateIdle, engine.State())
}

func TestCountdownAdvancesWithoutSkip(t *testing.T) {
	engine := newTestEngine()
	defer engine.Close()
	events := engine.Subscribe(256)

	require.NoError(t, engine.Start(model.NewChordSet("short", model.ChordEntry{Name: "G", Interval: 2}), 15))

	first := waitFor(t, events, EventChord, time.Second)
	assert.Equal(t, 2, first.Interval)
	second := waitFor(t, events, EventChord, time.Second)
	assert.Equal(t, "G", second.Chord, "draws are with replacement")
}

func TestEventsAreOrderedPerChord(t *testing.T) {
	engine := newTestEngine()
	events := engine.Subscribe(512)

	set := model.NewChordSet("order",
		model.ChordEntry{Name: "A", Interval: 3},
		model.ChordEntry{Name: "D", Interval: 2},
	)
	require.NoError(t, engine.Start(set, 15))
	time.Sleep(20 * testTick)
	engine.Stop()

	var current string
	expected := 0
	for {
		event := <-events
		if event.Type == EventStopped {
			break
		}
		switch event.Type {
		case EventChord:
			assert.Zero(t, expected, "previous countdown finished before next chord")
			current = event.Chord
			expected = event.Interval
		case EventTick:
			assert.Equal(t, current, event.Chord)
			assert.Equal(t, expected, event.Remaining)
			expected--
		}
	}
}

func TestNoEventsAfterStop(t *testing.T) {
	engine := newTestEngine()
	events := engine.Subscribe(256)

	require.NoError(t, engine.Start(model.DefaultChordSet(), 15))
	waitFor(t, events, EventTick, time.Second)

	begin := time.Now()
	engine.Stop()
	assert.Less(t, time.Since(begin), 5*testTick, "stop is observed within one tick")

	waitFor(t, events, EventStopped, time.Second)
	select {
	case event := <-events:
		t.Fatalf("unexpected event after stop: %+v", event)
	case <-time.After(5 * testTick):
	}
}

func TestStopRecordUsesClock(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)
	engine := New(Config{
		TickInterval: testTick,
		Now: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return now
		},
	})

	require.NoError(t, engine.Start(model.DefaultChordSet(), 15))
	start := engine.StartedAt()

	mu.Lock()
	now = now.Add(90*time.Second + 500*time.Millisecond)
	mu.Unlock()

	record, ok := engine.Stop()
	require.True(t, ok)
	assert.Equal(t, start, record.Start)
	assert.Equal(t, 90, record.Duration)
}

func TestUpdateSetWhileIdleIsIgnored(t *testing.T) {
	engine := newTestEngine()
	defer engine.Close()

	require.NoError(t, engine.UpdateSet(model.NewChordSet("later", model.ChordEntry{Name: "F", Interval: 1})))
	engine.mu.Lock()
	assert.Nil(t, engine.set)
	engine.mu.Unlock()
	assert.Equal(t, StateIdle, engine.State())
}

func TestUpdateSetSwapsChords(t *testing.T) {
	engine := newTestEngine()
	defer engine.Close()
	events := engine.Subscribe(256)

	require.NoError(t, engine.Start(model.NewChordSet("before", model.ChordEntry{Name: "A", Interval: 1}), 15))
	waitFor(t, events, EventChord, time.Second)

	assert.ErrorIs(t, engine.UpdateSet(model.NewChordSet("empty")), ErrEmptySet)
	require.NoError(t, engine.UpdateSet(model.NewChordSet("after", model.ChordEntry{Name: "F", Interval: 1})))

	deadline := time.After(time.Second)
	for {
		select {
		case event := <-events:
			if event.Type == EventChord && event.Chord == "F" {
				return
			}
		case <-deadline:
			t.Fatal("updated set was never drawn")
		}
	}
}

func TestCloseClosesSubscribers(t *testing.T) {
	engine := newTestEngine()
	events := engine.Subscribe(64)

	require.NoError(t, engine.Start(model.DefaultChordSet(), 15))
	engine.Close()

	assert.Equal(t, StateIdle, engine.State())
	for range events {
	}
}
