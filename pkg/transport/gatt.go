package transport

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-ble/ble"
	"github.com/pion/logging"
)

// ErrNilClient is returned when a GATT channel is built without a
// connected BLE client.
var ErrNilClient = errors.New("transport: nil BLE client")

// knownCharacteristics lists every endpoint the channel resolves during
// construction. A band that lacks one simply cannot serve that endpoint;
// operations against it fail with ErrUnknownCharacteristic.
var knownCharacteristics = []Characteristic{
	CharAuth,
	CharTime,
	CharBattery,
	CharAlarm,
	CharAlert,
	CharHeartRateControl,
	CharHeartRateData,
}

// GATTConfig configures a GATT channel.
type GATTConfig struct {
	// Client is a connected BLE client (e.g. from ble.Dial). Required.
	Client ble.Client

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// GATT implements Channel over a connected BLE GATT client. It resolves
// the logical characteristics to attribute handles once, at construction.
//
// Connection lifecycle stays with the caller: dial before NewGATT, cancel
// the connection after.
type GATT struct {
	client ble.Client
	chars  map[Characteristic]*ble.Characteristic
	log    logging.LeveledLogger

	mu   sync.Mutex
	subs map[Characteristic]bool
}

// NewGATT discovers the device profile and indexes the characteristics
// the protocol uses.
func NewGATT(config GATTConfig) (*GATT, error) {
	if config.Client == nil {
		return nil, ErrNilClient
	}

	g := &GATT{
		client: config.Client,
		chars:  make(map[Characteristic]*ble.Characteristic),
		subs:   make(map[Characteristic]bool),
	}
	if config.LoggerFactory != nil {
		g.log = config.LoggerFactory.NewLogger("gatt")
	}

	profile, err := config.Client.DiscoverProfile(true)
	if err != nil {
		return nil, fmt.Errorf("discovering profile: %w", err)
	}

	for _, name := range knownCharacteristics {
		uuid, err := ble.Parse(string(name))
		if err != nil {
			return nil, fmt.Errorf("parsing UUID %q: %w", name, err)
		}
		if c := profile.FindCharacteristic(ble.NewCharacteristic(uuid)); c != nil {
			g.chars[name] = c
		} else if g.log != nil {
			g.log.Warnf("characteristic %s not offered by device", name)
		}
	}

	return g, nil
}

func (g *GATT) lookup(char Characteristic) (*ble.Characteristic, error) {
	c, ok := g.chars[char]
	if !ok {
		return nil, ErrUnknownCharacteristic
	}
	return c, nil
}

// Send writes the frame without response, matching how the band expects
// command and handshake writes.
func (g *GATT) Send(char Characteristic, data []byte) error {
	c, err := g.lookup(char)
	if err != nil {
		return err
	}
	if g.log != nil {
		g.log.Debugf("host -> device %s: % x", char, data)
	}
	return g.client.WriteCharacteristic(c, data, true)
}

// Subscribe starts notification delivery for the characteristic.
func (g *GATT) Subscribe(char Characteristic, handler NotificationHandler) error {
	c, err := g.lookup(char)
	if err != nil {
		return err
	}

	g.mu.Lock()
	if g.subs[char] {
		g.mu.Unlock()
		return ErrAlreadySubscribed
	}
	g.subs[char] = true
	g.mu.Unlock()

	err = g.client.Subscribe(c, false, func(req []byte) {
		if g.log != nil {
			g.log.Debugf("device -> host %s: % x", char, req)
		}
		handler(req)
	})
	if err != nil {
		g.mu.Lock()
		delete(g.subs, char)
		g.mu.Unlock()
	}
	return err
}

// Unsubscribe stops notification delivery for the characteristic.
func (g *GATT) Unsubscribe(char Characteristic) error {
	c, err := g.lookup(char)
	if err != nil {
		return err
	}

	g.mu.Lock()
	if !g.subs[char] {
		g.mu.Unlock()
		return ErrNotSubscribed
	}
	delete(g.subs, char)
	g.mu.Unlock()

	return g.client.Unsubscribe(c, false)
}

// ReadOnce reads the current value of the characteristic.
func (g *GATT) ReadOnce(char Characteristic) ([]byte, error) {
	c, err := g.lookup(char)
	if err != nil {
		return nil, err
	}
	return g.client.ReadCharacteristic(c)
}
