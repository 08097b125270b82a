// internal/handlers/handler_test.go
package handlers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mediasync/internal/events"
)

// blockingHandler runs until its context is cancelled, recording both
// transitions.
type blockingHandler struct {
	started atomic.Bool
	stopped atomic.Bool
}

func (h *blockingHandler) Name() string { return "blocking" }

func (h *blockingHandler) Start(ctx context.Context) error {
	h.started.Store(true)
	<-ctx.Done()
	h.stopped.Store(true)
	return ctx.Err()
}

func TestHandler_StopsOnCancel(t *testing.T) {
	h := &blockingHandler{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.Start(ctx) }()

	time.Sleep(10 * time.Millisecond)
	assert.True(t, h.started.Load())
	assert.False(t, h.stopped.Load())

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	assert.True(t, h.stopped.Load())
}

func TestBaseHandler_DefaultsLogger(t *testing.T) {
	bus := events.NewBus(nil, nil)
	defer bus.Close()

	base := NewBaseHandler(bus, nil)
	assert.Same(t, bus, base.Bus())
	assert.NotNil(t, base.Logger())
}
