// Package auth implements the challenge-response handshake that unlocks
// the band's command interface.
//
// # Protocol Flow
//
// Without key registration (reset = false):
//
//	Host                            Band
//	----                            ----
//	secret request      ------>
//	                    <------     challenge (16 random bytes)
//	AES(key, challenge) ------>
//	                    <------     auth ok / key mismatch
//
// With key registration (reset = true), the run is preceded by:
//
//	key message         ------>
//	                    <------     key accepted / key aborted
//
// The core logic lives in Machine, a pure transition function over
// (state, reply). Two drivers realize it: Authenticate pumps replies
// from a blocking loop, Handler advances on notification callbacks.
// Both establish exactly one subscription per run and tear it down on
// every exit path.
package auth

import (
	"github.com/bandkit/band2/pkg/crypto"
	"github.com/bandkit/band2/pkg/wire"
)

// State identifies the handshake step the machine is waiting on.
type State int

const (
	// StateInit means no frame has been sent yet.
	StateInit State = iota

	// StateAwaitKeyAccepted means the key message was sent (reset mode).
	StateAwaitKeyAccepted

	// StateAwaitChallenge means the secret request was sent.
	StateAwaitChallenge

	// StateAwaitAuthResult means the encrypted challenge was sent.
	StateAwaitAuthResult

	// StateDone is terminal; no further frames are sent or expected.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateAwaitKeyAccepted:
		return "AwaitKeyAccepted"
	case StateAwaitChallenge:
		return "AwaitChallenge"
	case StateAwaitAuthResult:
		return "AwaitAuthResult"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Machine is the pure handshake state machine. It owns no I/O and no
// concurrency; drivers feed it replies one at a time and send whatever
// frames it returns. Each step is attempted exactly once: any unexpected
// reply terminates the whole run.
//
// Machine is not safe for concurrent use; the drivers serialize access.
type Machine struct {
	key        Key
	state      State
	registered bool
}

// NewMachine creates a machine for one handshake run with the given key.
func NewMachine(key Key) *Machine {
	return &Machine{key: key, state: StateInit}
}

// State returns the current handshake state.
func (m *Machine) State() State {
	return m.state
}

// Start produces the opening frame: the key message in reset mode, the
// secret request otherwise. Valid exactly once, from StateInit.
func (m *Machine) Start() ([]byte, error) {
	if m.state != StateInit {
		return nil, ErrInvalidState
	}

	if m.key.reset {
		frame, err := wire.EncodeKeyMessage(m.key.secret[:])
		if err != nil {
			return nil, err
		}
		m.state = StateAwaitKeyAccepted
		return frame, nil
	}

	m.state = StateAwaitChallenge
	return wire.EncodeSecretRequest(), nil
}

// Advance consumes one device reply and returns the next frame to send
// (nil if none) and the terminal outcome (nil while the run continues).
// Exactly one of send and done is non-nil on success.
//
// A reply too short to carry a code yields ErrMalformedMessage; a
// challenge body that is not exactly 16 bytes yields a crypto input
// error. Both abort the run without an outcome.
func (m *Machine) Advance(reply []byte) (send []byte, done *Outcome, err error) {
	code, body, err := wire.DecodeAuthReply(reply)
	if err != nil {
		return nil, nil, ErrMalformedMessage
	}

	switch m.state {
	case StateAwaitKeyAccepted:
		if code != wire.ReplyKeyAccepted {
			return nil, m.finish(code), nil
		}
		m.registered = true
		m.state = StateAwaitChallenge
		return wire.EncodeSecretRequest(), nil, nil

	case StateAwaitChallenge:
		if code != wire.ReplyChallenge {
			return nil, m.finish(code), nil
		}
		ciphertext, err := crypto.EncryptChallenge(m.key.secret[:], body)
		if err != nil {
			return nil, nil, err
		}
		frame, err := wire.EncodeEncryptedReply(ciphertext)
		if err != nil {
			return nil, nil, err
		}
		m.state = StateAwaitAuthResult
		return frame, nil, nil

	case StateAwaitAuthResult:
		return nil, m.finish(code), nil

	default:
		return nil, nil, ErrInvalidState
	}
}

func (m *Machine) finish(code wire.ReplyCode) *Outcome {
	m.state = StateDone
	return &Outcome{
		Status:        statusFor(code),
		Code:          code,
		KeyRegistered: m.registered,
	}
}
