package platform

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// ShutdownHook runs a cleanup function exactly once, either when the process
// receives an interrupt or terminate signal or when Run is called from a
// deferred exit path. A process killed without signals skips it.
type ShutdownHook struct {
	once      sync.Once
	closeOnce sync.Once
	cleanup   func()
	signals   chan os.Signal
	done      chan struct{}
}

// NewShutdownHook installs the signal handler. onSignal runs after cleanup
// when a signal triggered it, typically to quit the UI loop.
func NewShutdownHook(cleanup func(), onSignal func()) *ShutdownHook {
	hook := &ShutdownHook{
		cleanup: cleanup,
		signals: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}
	signal.Notify(hook.signals, shutdownSignals...)
	go hook.wait(onSignal)
	return hook
}

// Run performs the cleanup if it has not run yet.
func (hook *ShutdownHook) Run() {
	hook.once.Do(func() {
		if hook.cleanup != nil {
			hook.cleanup()
		}
	})
}

// Close detaches the signal handler without running the cleanup.
func (hook *ShutdownHook) Close() {
	hook.closeOnce.Do(func() {
		signal.Stop(hook.signals)
		close(hook.done)
	})
}

func (hook *ShutdownHook) wait(onSignal func()) {
	select {
	case <-hook.signals:
		hook.Run()
		if onSignal != nil {
			onSignal()
		}
	case <-hook.done:
	}
}
