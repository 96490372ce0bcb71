package platform

import (
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShutdownHookRunsOnce(t *testing.T) {
	var calls atomic.Int32
	hook := NewShutdownHook(func() { calls.Add(1) }, nil)
	defer hook.Close()

	hook.Run()
	hook.Run()

	assert.Equal(t, int32(1), calls.Load())
}

func TestShutdownHookRunsOnSignal(t *testing.T) {
	var calls atomic.Int32
	signalled := make(chan struct{})
	hook := NewShutdownHook(func() { calls.Add(1) }, func() { close(signalled) })
	defer hook.Close()

	hook.signals <- os.Interrupt

	select {
	case <-signalled:
	case <-time.After(time.Second):
		t.Fatal("signal was not handled")
	}
	hook.Run()
	assert.Equal(t, int32(1), calls.Load())
}

func TestShutdownHookCloseSkipsCleanup(t *testing.T) {
	var calls atomic.Int32
	hook := NewShutdownHook(func() { calls.Add(1) }, nil)

	hook.Close()
	hook.Close()

	assert.Equal(t, int32(0), calls.Load())
}
