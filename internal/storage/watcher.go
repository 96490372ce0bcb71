package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// SetChangeCallback receives the file name of a changed chord set.
type SetChangeCallback func(name string)

// SetWatcherConfig holds configuration for the watcher.
type SetWatcherConfig struct {
	Dir                string
	StabilityThreshold time.Duration
	OnChange           SetChangeCallback
}

// SetWatcher reports edits made to chord set files outside the program.
// Editors that save through a temporary file and rename are covered by
// watching the directory rather than the file.
type SetWatcher struct {
	watcher            *fsnotify.Watcher
	dir                string
	stabilityThreshold time.Duration
	onChange           SetChangeCallback
	done               chan struct{}
	debounceTimers     map[string]*time.Timer
	debounceMu         sync.Mutex
	stopOnce           sync.Once
}

// NewSetWatcher creates a watcher for config.Dir.
func NewSetWatcher(config SetWatcherConfig) (*SetWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create set watcher: %w", err)
	}
	if config.StabilityThreshold <= 0 {
		config.StabilityThreshold = 100 * time.Millisecond
	}

	return &SetWatcher{
		watcher:            watcher,
		dir:                config.Dir,
		stabilityThreshold: config.StabilityThreshold,
		onChange:           config.OnChange,
		done:               make(chan struct{}),
		debounceTimers:     make(map[string]*time.Timer),
	}, nil
}

// Start begins watching the set directory.
func (w *SetWatcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch set directory: %w", err)
	}
	go w.eventLoop()

	log.Debug().Str("dir", w.dir).Msg("set watcher started")
	return nil
}

// Stop releases the watcher. It is safe to call more than once.
func (w *SetWatcher) Stop() error {
	var closeErr error
	w.stopOnce.Do(func() {
		close(w.done)

		w.debounceMu.Lock()
		for _, timer := range w.debounceTimers {
			timer.Stop()
		}
		clear(w.debounceTimers)
		w.debounceMu.Unlock()

		closeErr = w.watcher.Close()
	})
	if closeErr != nil {
		return fmt.Errorf("close set watcher: %w", closeErr)
	}
	return nil
}

func (w *SetWatcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("set watcher error")
		case <-w.done:
			return
		}
	}
}

func (w *SetWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	name := filepath.Base(event.Name)
	if !strings.EqualFold(filepath.Ext(name), setExtension) || strings.HasPrefix(name, ".") {
		return
	}
	w.debounce(name)
}

func (w *SetWatcher) debounce(name string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[name]; exists {
		timer.Stop()
	}
	w.debounceTimers[name] = time.AfterFunc(w.stabilityThreshold, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimers, name)
		w.debounceMu.Unlock()

		select {
		case <-w.done:
			return
		default:
		}
		if w.onChange != nil {
			w.onChange(name)
		}
	})
}
