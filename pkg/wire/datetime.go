package wire

import (
	"encoding/binary"
	"time"
)

// DateTime is the wall-clock value carried by the time characteristic.
type DateTime struct {
	Year    int // signed 16-bit on the wire
	Month   int // 1-12
	Day     int // 1-31
	Hour    int // 0-23
	Minute  int // 0-59
	Second  int // 0-59
	Weekday Weekday
}

// NewDateTime converts a time.Time into the device representation,
// mapping Go's Sunday-based weekday onto the Monday-based one.
func NewDateTime(t time.Time) DateTime {
	return DateTime{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: Weekday((int(t.Weekday()) + 6) % 7),
	}
}

// Time converts the device representation back into a time.Time in the
// given location. The weekday field is derived from the date and not
// consulted.
func (d DateTime) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second, 0, loc)
}

// Validate checks every field against its wire range.
func (d DateTime) Validate() error {
	switch {
	case d.Year < -32768 || d.Year > 32767,
		d.Month < 1 || d.Month > 12,
		d.Day < 1 || d.Day > 31,
		d.Hour < 0 || d.Hour > 23,
		d.Minute < 0 || d.Minute > 59,
		d.Second < 0 || d.Second > 59,
		d.Weekday < Monday || d.Weekday > Sunday:
		return ErrInvalidDateTime
	}
	return nil
}

// Encode builds the 10-byte datetime frame: little-endian signed 16-bit
// year, then month, day, hour, minute, second, weekday, followed by two
// reserved zero bytes.
func (d DateTime) Encode() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, DateTimeFrameSize)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(int16(d.Year)))
	buf[2] = byte(d.Month)
	buf[3] = byte(d.Day)
	buf[4] = byte(d.Hour)
	buf[5] = byte(d.Minute)
	buf[6] = byte(d.Second)
	buf[7] = byte(d.Weekday)
	// buf[8:10] reserved
	return buf, nil
}

// DecodeDateTime parses a 10-byte datetime frame, ignoring the reserved
// trailing bytes.
func DecodeDateTime(raw []byte) (DateTime, error) {
	if len(raw) < DateTimeFrameSize {
		return DateTime{}, ErrShortDateTime
	}
	return DateTime{
		Year:    int(int16(binary.LittleEndian.Uint16(raw[0:2]))),
		Month:   int(raw[2]),
		Day:     int(raw[3]),
		Hour:    int(raw[4]),
		Minute:  int(raw[5]),
		Second:  int(raw[6]),
		Weekday: Weekday(raw[7]),
	}, nil
}

// decodeShortDate parses the 7-byte date stamp embedded in battery
// reports: little-endian signed 16-bit year, month, day, then three
// reserved bytes. Time-of-day fields are zero.
func decodeShortDate(raw []byte) DateTime {
	return DateTime{
		Year:  int(int16(binary.LittleEndian.Uint16(raw[0:2]))),
		Month: int(raw[2]),
		Day:   int(raw[3]),
	}
}
