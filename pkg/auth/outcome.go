package auth

import "github.com/bandkit/band2/pkg/wire"

// Status classifies how a handshake terminated.
type Status int

const (
	// StatusUnknown means the device sent a reply code outside the
	// known enumeration; Outcome.Code carries the observed bytes.
	StatusUnknown Status = iota

	// StatusAuthOK means authentication succeeded.
	StatusAuthOK

	// StatusKeyMismatch means the device rejected the encrypted
	// challenge.
	StatusKeyMismatch

	// StatusKeyAborted means the device aborted key registration.
	StatusKeyAborted

	// StatusKeyAccepted and StatusChallengeIssued only appear as
	// terminal statuses when the device sent that code at a step that
	// did not expect it.
	StatusKeyAccepted
	StatusChallengeIssued
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusAuthOK:
		return "AuthOK"
	case StatusKeyMismatch:
		return "KeyMismatch"
	case StatusKeyAborted:
		return "KeyAborted"
	case StatusKeyAccepted:
		return "KeyAccepted"
	case StatusChallengeIssued:
		return "ChallengeIssued"
	default:
		return "Unknown"
	}
}

// Outcome is the terminal result of one handshake run. Produced exactly
// once per run.
type Outcome struct {
	// Status classifies the result.
	Status Status

	// Code is the reply code that terminated the run. Meaningful for
	// distinguishing unknown codes from known rejections.
	Code wire.ReplyCode

	// KeyRegistered reports whether the device accepted a new key
	// during this run (reset mode) before the terminal status.
	KeyRegistered bool
}

// OK reports whether the handshake authenticated successfully.
func (o Outcome) OK() bool {
	return o.Status == StatusAuthOK
}

func statusFor(code wire.ReplyCode) Status {
	switch code {
	case wire.ReplyAuthOK:
		return StatusAuthOK
	case wire.ReplyKeyMismatch:
		return StatusKeyMismatch
	case wire.ReplyKeyAborted:
		return StatusKeyAborted
	case wire.ReplyKeyAccepted:
		return StatusKeyAccepted
	case wire.ReplyChallenge:
		return StatusChallengeIssued
	default:
		return StatusUnknown
	}
}
