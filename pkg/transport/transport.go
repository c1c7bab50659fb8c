// Package transport defines the duplex byte channel the protocol core
// talks through, the logical characteristics it addresses, and two
// implementations: an in-memory Pipe for deterministic tests and a GATT
// client for real bands.
//
// The core never manages connection lifecycle, service discovery or
// pairing at the radio level; those belong to the caller and the BLE
// stack. A Channel only moves bytes to and from named endpoints.
package transport

import "errors"

// Transport errors.
var (
	ErrClosed                = errors.New("transport: channel closed")
	ErrUnknownCharacteristic = errors.New("transport: characteristic not available")
	ErrAlreadySubscribed     = errors.New("transport: characteristic already subscribed")
	ErrNotSubscribed         = errors.New("transport: characteristic not subscribed")
	ErrNoValue               = errors.New("transport: characteristic has no value")
)

// Characteristic is an opaque logical endpoint name. The core treats
// these as constants; a real transport resolves them to GATT attribute
// handles.
type Characteristic string

// NotificationHandler receives one inbound notification payload. The
// slice is owned by the transport; handlers must not retain it.
type NotificationHandler func(data []byte)

// Channel is the collaborator contract required from the external
// transport: send bytes to an endpoint, subscribe to its notifications,
// and read its current value once.
//
// Implementations must deliver notifications for one characteristic in
// the order the device sent them.
type Channel interface {
	// Send writes data to the characteristic.
	Send(char Characteristic, data []byte) error

	// Subscribe starts notification delivery for the characteristic.
	// At most one subscription per characteristic is supported.
	Subscribe(char Characteristic, handler NotificationHandler) error

	// Unsubscribe stops notification delivery for the characteristic.
	Unsubscribe(char Characteristic) error

	// ReadOnce reads the current value of the characteristic.
	ReadOnce(char Characteristic) ([]byte, error)
}
