// Package signal cancels in-flight deploy status fetches on Ctrl+C.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages (to avoid circular dependencies)
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ExitInterrupted is the conventional exit status after SIGINT (128 + 2).
const ExitInterrupted = 130

// Handler cancels a context when SIGINT or SIGTERM arrives.
//
//	h := signal.NewHandler(context.Background())
//	defer h.Stop()
//	err := cli.Execute(h.Context(), info)
//	if h.Received() != nil {
//	    os.Exit(signal.ExitInterrupted)
//	}
type Handler struct {
	ctx     context.Context //nolint:containedctx // the handler owns the context lifecycle
	cancel  context.CancelFunc
	done    chan struct{}
	sigChan chan os.Signal

	mu       sync.Mutex
	received os.Signal
	once     sync.Once
	stopOnce sync.Once
}

// NewHandler starts listening for SIGINT and SIGTERM. The returned handler's
// context is a child of parent.
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		// signal.Notify does not block; a buffer of one keeps the first signal.
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the context canceled on the first signal.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Received returns the first signal received, or nil.
func (h *Handler) Received() os.Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.received
}

// Stop stops listening and cancels the context. It is safe to call more than once.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel()
	})
}

// handleSignal records sig and cancels the context. Only the first call has effect.
func (h *Handler) handleSignal(sig os.Signal) {
	h.once.Do(func() {
		h.mu.Lock()
		h.received = sig
		h.mu.Unlock()
		h.cancel()
	})
}

func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case sig := <-h.sigChan:
			h.handleSignal(sig)
		}
	}
}
