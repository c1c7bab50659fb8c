package wire

import "fmt"

// Frame size constants.
const (
	// KeySize is the size of the shared pairing key in bytes.
	KeySize = 16

	// ChallengeSize is the size of the device-issued random challenge.
	ChallengeSize = 16

	// ReplyCodeSize is the size of the reply code prefixing every
	// handshake notification.
	ReplyCodeSize = 3

	// DateTimeFrameSize is the size of the time characteristic frame.
	DateTimeFrameSize = 10

	// AlarmCommandSize is the size of an alarm configuration command.
	AlarmCommandSize = 5

	// BatteryReportMinSize is the minimum size of a battery report frame.
	BatteryReportMinSize = 18
)

// ReplyCode is the 3-byte tag at the start of every handshake notification.
type ReplyCode [ReplyCodeSize]byte

// Known reply codes issued by the device during the handshake.
var (
	// ReplyKeyAccepted signals the pairing key registration succeeded.
	ReplyKeyAccepted = ReplyCode{0x10, 0x01, 0x01}

	// ReplyChallenge signals a random challenge follows in the body.
	ReplyChallenge = ReplyCode{0x10, 0x02, 0x01}

	// ReplyAuthOK signals authentication succeeded.
	ReplyAuthOK = ReplyCode{0x10, 0x03, 0x01}

	// ReplyKeyMismatch signals the encrypted challenge did not verify.
	ReplyKeyMismatch = ReplyCode{0x10, 0x03, 0x04}

	// ReplyKeyAborted signals the device aborted key registration.
	ReplyKeyAborted = ReplyCode{0x10, 0x01, 0x02}
)

// Known reports whether the code is part of the closed enumeration the
// device is specified to send. Anything else must be surfaced to the
// caller as an unknown code, never silently defaulted.
func (c ReplyCode) Known() bool {
	switch c {
	case ReplyKeyAccepted, ReplyChallenge, ReplyAuthOK, ReplyKeyMismatch, ReplyKeyAborted:
		return true
	default:
		return false
	}
}

// String returns the code name, or its hex bytes if unknown.
func (c ReplyCode) String() string {
	switch c {
	case ReplyKeyAccepted:
		return "KeyAccepted"
	case ReplyChallenge:
		return "Challenge"
	case ReplyAuthOK:
		return "AuthOK"
	case ReplyKeyMismatch:
		return "KeyMismatch"
	case ReplyKeyAborted:
		return "KeyAborted"
	default:
		return fmt.Sprintf("Unknown(%02x %02x %02x)", c[0], c[1], c[2])
	}
}

// Weekday is a day of the week as the device numbers it: Monday is 0
// through Sunday is 6. This convention is used consistently by the days
// bitmask and the datetime frame; note it differs from time.Weekday,
// which starts the week on Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// String returns the weekday name.
func (d Weekday) String() string {
	names := [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return names[d]
}

// BatteryStatus is the charging state reported in a battery report.
type BatteryStatus int

const (
	// BatteryNormal means the band is discharging.
	BatteryNormal BatteryStatus = iota

	// BatteryCharging means the band is on the charger.
	BatteryCharging
)

// String returns the status name.
func (s BatteryStatus) String() string {
	switch s {
	case BatteryNormal:
		return "Normal"
	case BatteryCharging:
		return "Charging"
	default:
		return fmt.Sprintf("BatteryStatus(%d)", int(s))
	}
}
