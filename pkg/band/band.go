// Package band is the command surface of the fitness band: time sync,
// battery status, alarms, notifications and heart-rate requests, encoded
// with pkg/wire and pushed through an already-authenticated channel.
//
// Every command is a single round trip at most; only the authentication
// handshake (pkg/auth) has protocol state.
package band

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pion/logging"
	"github.com/pion/transport/v3/deadline"

	"github.com/bandkit/band2/pkg/auth"
	"github.com/bandkit/band2/pkg/transport"
	"github.com/bandkit/band2/pkg/wire"
)

// Errors.
var (
	ErrNilChannel        = errors.New("band: nil channel")
	ErrShortMeasurement  = errors.New("band: heart-rate notification too short")
	ErrMeasurementAbsent = errors.New("band: no heart-rate measurement before timeout")
)

// DefaultReadTimeout bounds the wait for a heart-rate measurement.
const DefaultReadTimeout = 30 * time.Second

// Heart-rate control sequences: continuous measurement off, then on.
var (
	hrContinuousOff = []byte{0x15, 0x02, 0x00}
	hrContinuousOn  = []byte{0x15, 0x02, 0x01}
)

// Config configures a Band.
type Config struct {
	// Channel is the transport to the device. Required.
	Channel transport.Channel

	// Timeout bounds waits for device notifications (heart rate).
	// Zero means DefaultReadTimeout.
	Timeout time.Duration

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Band issues commands to a connected, authenticated device.
type Band struct {
	ch            transport.Channel
	timeout       time.Duration
	loggerFactory logging.LoggerFactory
	log           logging.LeveledLogger
}

// New creates a Band over the given channel.
func New(config Config) (*Band, error) {
	if config.Channel == nil {
		return nil, ErrNilChannel
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultReadTimeout
	}

	b := &Band{
		ch:            config.Channel,
		timeout:       timeout,
		loggerFactory: config.LoggerFactory,
	}
	if config.LoggerFactory != nil {
		b.log = config.LoggerFactory.NewLogger("band")
	}
	return b, nil
}

// Authenticate runs the pairing handshake on this band's channel. The
// command interface is locked until it reports StatusAuthOK.
func (b *Band) Authenticate(ctx context.Context, key auth.Key) (auth.Outcome, error) {
	return auth.AuthenticateWith(ctx, b.ch, key, auth.Config{
		LoggerFactory: b.loggerFactory,
	})
}

// Ring makes the band vibrate with the given notification style.
func (b *Band) Ring(style NotificationType) error {
	return b.ch.Send(transport.CharAlert, []byte{byte(style)})
}

// SetTime writes the band's wall clock.
func (b *Band) SetTime(t time.Time) error {
	frame, err := wire.NewDateTime(t).Encode()
	if err != nil {
		return err
	}
	return b.ch.Send(transport.CharTime, frame)
}

// Time reads the band's wall clock, interpreted in loc (the frame
// carries no zone).
func (b *Band) Time(loc *time.Location) (time.Time, error) {
	raw, err := b.ch.ReadOnce(transport.CharTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading time: %w", err)
	}
	dt, err := wire.DecodeDateTime(raw)
	if err != nil {
		return time.Time{}, err
	}
	return dt.Time(loc), nil
}

// Battery reads and decodes the battery report.
func (b *Band) Battery() (wire.BatteryReport, error) {
	raw, err := b.ch.ReadOnce(transport.CharBattery)
	if err != nil {
		return wire.BatteryReport{}, fmt.Errorf("reading battery: %w", err)
	}
	return wire.DecodeBatteryReport(raw)
}

// Alarm describes one alarm slot.
type Alarm struct {
	// Slot is the alarm position, 0 through wire.MaxAlarmSlot.
	Slot int

	Hour   int
	Minute int

	// Days selects the weekdays the alarm repeats on. Ignored when
	// Once is set.
	Days []wire.Weekday

	// Once fires the alarm a single time instead of weekly.
	Once bool

	// SmartWakeup lets the band pick a light-sleep moment shortly
	// before the set time.
	SmartWakeup bool

	// Disabled writes the slot without arming it.
	Disabled bool
}

// SetAlarm configures an alarm slot.
func (b *Band) SetAlarm(a Alarm) error {
	var action byte
	if !a.Disabled {
		action |= wire.AlarmActionEnabled
	}
	if a.SmartWakeup {
		action |= wire.AlarmActionSmartWakeup
	}

	var days byte
	if a.Once {
		days = wire.AlarmDaysOnce
	} else {
		days = wire.DaysMask(a.Days...)
	}

	frame, err := wire.EncodeAlarmCommand(a.Slot, action, a.Hour, a.Minute, days)
	if err != nil {
		return err
	}
	return b.ch.Send(transport.CharAlarm, frame)
}

// QuickAlarm arms a one-shot smart-wakeup alarm in the given slot.
func (b *Band) QuickAlarm(slot, hour, minute int) error {
	return b.SetAlarm(Alarm{
		Slot:        slot,
		Hour:        hour,
		Minute:      minute,
		Once:        true,
		SmartWakeup: true,
	})
}

// UnsetAlarm clears an alarm slot.
func (b *Band) UnsetAlarm(slot int) error {
	frame, err := wire.EncodeAlarmCommand(slot, 0, 0, 0, 0)
	if err != nil {
		return err
	}
	return b.ch.Send(transport.CharAlarm, frame)
}

// HeartRate requests one heart-rate measurement: it subscribes to the
// measurement characteristic, starts continuous measurement via the
// control point, waits for the first reading and stops notifications
// before returning.
func (b *Band) HeartRate(ctx context.Context) (int, error) {
	measurements := make(chan []byte, 1)
	err := b.ch.Subscribe(transport.CharHeartRateData, func(data []byte) {
		buf := make([]byte, len(data))
		copy(buf, data)
		select {
		case measurements <- buf:
		default:
		}
	})
	if err != nil {
		return 0, fmt.Errorf("subscribing heart-rate data: %w", err)
	}
	defer b.ch.Unsubscribe(transport.CharHeartRateData) //nolint:errcheck // teardown is unconditional

	if err := b.ch.Send(transport.CharHeartRateControl, hrContinuousOff); err != nil {
		return 0, fmt.Errorf("writing heart-rate control: %w", err)
	}
	if err := b.ch.Send(transport.CharHeartRateControl, hrContinuousOn); err != nil {
		return 0, fmt.Errorf("writing heart-rate control: %w", err)
	}

	d := deadline.New()
	d.Set(time.Now().Add(b.timeout))

	select {
	case raw := <-measurements:
		if len(raw) < 2 {
			return 0, ErrShortMeasurement
		}
		if b.log != nil {
			b.log.Debugf("heart rate: %d", raw[1])
		}
		return int(raw[1]), nil
	case <-d.Done():
		return 0, ErrMeasurementAbsent
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
