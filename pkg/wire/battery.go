package wire

// BatteryReport is the decoded battery characteristic frame.
type BatteryReport struct {
	// Level is the charge percentage.
	Level int

	// Status reports whether the band is on the charger.
	Status BatteryStatus

	// LastOff is the date the band last powered off (date fields only).
	LastOff DateTime

	// LastCharge is the date of the last full charge (date fields only).
	LastCharge DateTime
}

// Battery report field offsets.
const (
	batteryLevelOffset  = 1
	batteryStatusOffset = 2

	batteryLastOffStart    = 3
	batteryLastChargeStart = 11
	batteryStampSize       = 7
)

// DecodeBatteryReport parses a battery characteristic frame. The frame
// must be at least 18 bytes; anything shorter is a malformed report, not
// a partial one.
func DecodeBatteryReport(raw []byte) (BatteryReport, error) {
	if len(raw) < BatteryReportMinSize {
		return BatteryReport{}, ErrShortBatteryReport
	}

	status := BatteryNormal
	if raw[batteryStatusOffset] != 0 {
		status = BatteryCharging
	}

	return BatteryReport{
		Level:      int(raw[batteryLevelOffset]),
		Status:     status,
		LastOff:    decodeShortDate(raw[batteryLastOffStart : batteryLastOffStart+batteryStampSize]),
		LastCharge: decodeShortDate(raw[batteryLastChargeStart : batteryLastChargeStart+batteryStampSize]),
	}, nil
}
