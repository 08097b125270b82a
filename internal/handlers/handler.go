// internal/handlers/handler.go
package handlers

import (
	"context"
	"log/slog"

	"github.com/vmunix/mediasync/internal/events"
)

// Handler is a long-running consumer of bus events.
type Handler interface {
	// Start blocks until ctx is cancelled, processing events as they
	// arrive.
	Start(ctx context.Context) error

	// Name identifies the handler in logs.
	Name() string
}

// BaseHandler carries the dependencies every handler needs. Embed it
// and use Bus and Logger from Start.
type BaseHandler struct {
	bus *events.Bus
	log *slog.Logger
}

// NewBaseHandler wires a handler to the bus. A nil logger falls back to
// slog.Default.
func NewBaseHandler(bus *events.Bus, logger *slog.Logger) *BaseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BaseHandler{bus: bus, log: logger}
}

func (h *BaseHandler) Bus() *events.Bus     { return h.bus }
func (h *BaseHandler) Logger() *slog.Logger { return h.log }
