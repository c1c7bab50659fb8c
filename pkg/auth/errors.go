package auth

import "errors"

// Handshake errors. These abort a run without producing an Outcome; a
// protocol-level rejection by the device is an Outcome, not an error.
var (
	// ErrInvalidState means a step was driven out of order (started
	// twice, advanced before start, advanced after completion).
	ErrInvalidState = errors.New("auth: invalid machine state")

	// ErrMalformedMessage means a reply could not hold a reply code.
	// Treated as a transport-quality failure.
	ErrMalformedMessage = errors.New("auth: reply shorter than reply code")

	// ErrTimeout means the device did not reply within the configured
	// per-reply timeout.
	ErrTimeout = errors.New("auth: timed out waiting for device reply")

	// ErrCanceled means the caller canceled the handshake.
	ErrCanceled = errors.New("auth: handshake canceled")
)
