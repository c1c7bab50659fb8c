package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/pion/logging"
	"github.com/pion/transport/v3/deadline"

	"github.com/bandkit/band2/pkg/transport"
)

// DefaultReplyTimeout bounds the wait for each device reply when the
// config does not override it. The protocol itself defines no timeout;
// without one an unresponsive band would suspend the caller forever.
const DefaultReplyTimeout = 10 * time.Second

// replyQueueDepth sizes the notification queue. A handshake exchanges at
// most three replies, so the queue never fills in practice.
const replyQueueDepth = 8

// Config configures a pull-driven handshake run.
type Config struct {
	// Timeout bounds the wait for each device reply.
	// Zero means DefaultReplyTimeout.
	Timeout time.Duration

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Authenticate runs the full handshake over the channel's auth endpoint
// with default configuration. See AuthenticateWith.
func Authenticate(ctx context.Context, ch transport.Channel, key Key) (Outcome, error) {
	return AuthenticateWith(ctx, ch, key, Config{})
}

// AuthenticateWith runs the full handshake to completion and returns its
// terminal outcome. It subscribes to the auth characteristic for the
// duration of the run, consumes replies in delivery order from a FIFO
// queue, and unsubscribes on every exit path, including cancellation.
//
// Transport failures, malformed replies and crypto input errors abort
// the run with an error and no outcome. A protocol-level rejection by
// the device (key mismatch, aborted registration, unknown code) is a
// terminal Outcome and a nil error.
//
// One channel supports one handshake at a time; a second concurrent run
// fails to subscribe.
func AuthenticateWith(ctx context.Context, ch transport.Channel, key Key, config Config) (Outcome, error) {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultReplyTimeout
	}

	var log logging.LeveledLogger
	if config.LoggerFactory != nil {
		log = config.LoggerFactory.NewLogger("auth")
	}

	m := NewMachine(key)

	replies := make(chan []byte, replyQueueDepth)
	err := ch.Subscribe(transport.CharAuth, func(data []byte) {
		buf := make([]byte, len(data))
		copy(buf, data)
		select {
		case replies <- buf:
		default:
			// Beyond protocol depth; the machine would reject the
			// excess reply anyway.
		}
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("subscribing auth characteristic: %w", err)
	}
	defer ch.Unsubscribe(transport.CharAuth) //nolint:errcheck // teardown is unconditional

	frame, err := m.Start()
	if err != nil {
		return Outcome{}, err
	}
	if log != nil {
		log.Debugf("host -> device: % x", frame)
	}
	if err := ch.Send(transport.CharAuth, frame); err != nil {
		return Outcome{}, fmt.Errorf("sending handshake frame: %w", err)
	}

	d := deadline.New()
	for {
		d.Set(time.Now().Add(timeout))

		select {
		case raw := <-replies:
			if log != nil {
				log.Debugf("device -> host: % x", raw)
			}
			send, done, err := m.Advance(raw)
			if err != nil {
				return Outcome{}, err
			}
			if send != nil {
				if log != nil {
					log.Debugf("host -> device: % x", send)
				}
				if err := ch.Send(transport.CharAuth, send); err != nil {
					return Outcome{}, fmt.Errorf("sending handshake frame: %w", err)
				}
			}
			if done != nil {
				if log != nil {
					log.Infof("handshake finished: %s", done.Status)
				}
				return *done, nil
			}

		case <-d.Done():
			return Outcome{}, ErrTimeout

		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		}
	}
}
