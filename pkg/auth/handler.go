package auth

import (
	"fmt"
	"sync"

	"github.com/pion/logging"

	"github.com/bandkit/band2/pkg/transport"
)

// CompletionFunc receives the terminal result of a push-driven handshake:
// either an Outcome with a nil error, or a zero Outcome with the error
// that aborted the run. Invoked exactly once.
type CompletionFunc func(Outcome, error)

// HandlerConfig configures a push-driven handshake.
type HandlerConfig struct {
	// Channel carries the handshake. Required.
	Channel transport.Channel

	// Key is the pairing key for this run.
	Key Key

	// OnComplete receives the terminal result. Required.
	OnComplete CompletionFunc

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Handler drives the handshake from the channel's notification delivery
// path instead of a blocking loop: each inbound reply advances the
// machine on the caller's notification goroutine, and the terminal
// result is reported through the completion callback.
//
// Semantically equivalent to Authenticate; use it when the transport
// owns an event loop and blocking is not an option. The handler owns no
// goroutine and applies no timeout; bound the run by calling Cancel.
type Handler struct {
	ch       transport.Channel
	complete CompletionFunc
	log      logging.LeveledLogger

	mu       sync.Mutex
	machine  *Machine
	started  bool
	finished bool
}

// NewHandler creates a push-driven handshake. Call Start to begin.
func NewHandler(config HandlerConfig) (*Handler, error) {
	if config.Channel == nil {
		return nil, fmt.Errorf("auth: nil channel")
	}
	if config.OnComplete == nil {
		return nil, fmt.Errorf("auth: nil completion callback")
	}

	h := &Handler{
		ch:       config.Channel,
		complete: config.OnComplete,
		machine:  NewMachine(config.Key),
	}
	if config.LoggerFactory != nil {
		h.log = config.LoggerFactory.NewLogger("auth")
	}
	return h, nil
}

// Start subscribes to the auth characteristic and sends the opening
// frame. Valid exactly once. A subscribe or send failure is returned
// directly and the completion callback is never invoked.
func (h *Handler) Start() error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return ErrInvalidState
	}
	h.started = true
	h.mu.Unlock()

	if err := h.ch.Subscribe(transport.CharAuth, h.handleNotification); err != nil {
		return fmt.Errorf("subscribing auth characteristic: %w", err)
	}

	h.mu.Lock()
	frame, err := h.machine.Start()
	h.mu.Unlock()
	if err != nil {
		h.teardown()
		return err
	}

	if h.log != nil {
		h.log.Debugf("host -> device: % x", frame)
	}
	if err := h.ch.Send(transport.CharAuth, frame); err != nil {
		h.teardown()
		return fmt.Errorf("sending handshake frame: %w", err)
	}
	return nil
}

// Cancel aborts an in-flight handshake. The subscription is torn down
// before the cancellation is reported through the completion callback.
// Canceling a finished run is a no-op.
func (h *Handler) Cancel() {
	h.finish(Outcome{}, ErrCanceled)
}

func (h *Handler) handleNotification(data []byte) {
	h.mu.Lock()
	if h.finished {
		h.mu.Unlock()
		return
	}
	if h.log != nil {
		h.log.Debugf("device -> host: % x", data)
	}
	send, done, err := h.machine.Advance(data)
	h.mu.Unlock()

	if err != nil {
		h.finish(Outcome{}, err)
		return
	}
	if send != nil {
		if h.log != nil {
			h.log.Debugf("host -> device: % x", send)
		}
		if err := h.ch.Send(transport.CharAuth, send); err != nil {
			h.finish(Outcome{}, fmt.Errorf("sending handshake frame: %w", err))
			return
		}
	}
	if done != nil {
		if h.log != nil {
			h.log.Infof("handshake finished: %s", done.Status)
		}
		h.finish(*done, nil)
	}
}

// finish tears down the subscription and reports the result, once.
func (h *Handler) finish(o Outcome, err error) {
	h.mu.Lock()
	if h.finished {
		h.mu.Unlock()
		return
	}
	h.finished = true
	h.mu.Unlock()

	h.teardown()
	h.complete(o, err)
}

func (h *Handler) teardown() {
	_ = h.ch.Unsubscribe(transport.CharAuth)
}
