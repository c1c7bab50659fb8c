package wire

import "errors"

// Codec errors.
var (
	// Auth frame errors
	ErrShortMessage = errors.New("wire: message shorter than reply code")
	ErrInvalidKey   = errors.New("wire: pairing key must be 16 bytes")
	ErrInvalidBlock = errors.New("wire: ciphertext must be 16 bytes")

	// Datetime frame errors
	ErrShortDateTime   = errors.New("wire: datetime frame too short")
	ErrInvalidDateTime = errors.New("wire: datetime field out of range")

	// Alarm command errors
	ErrInvalidAlarmSlot = errors.New("wire: alarm slot must be 0-5")
	ErrInvalidAlarmTime = errors.New("wire: alarm time out of range")

	// Battery report errors
	ErrShortBatteryReport = errors.New("wire: battery report shorter than 18 bytes")
)
