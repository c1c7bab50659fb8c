package wire

// Alarm command layout: [0x02, action|slot, hour, minute, days].
const alarmOpcode = 0x02

// Alarm action mask bits (high nibble of the second command byte; the low
// bits carry the slot).
const (
	// AlarmActionEnabled arms the alarm slot.
	AlarmActionEnabled = 0x80

	// AlarmActionSmartWakeup lets the band fire within a light-sleep
	// window before the set time.
	AlarmActionSmartWakeup = 0x40
)

// AlarmDaysOnce is the days-mask bit selecting a one-shot alarm instead
// of a weekly repetition.
const AlarmDaysOnce = 0x80

// MaxAlarmSlot is the highest alarm slot the band exposes.
const MaxAlarmSlot = 5

// DaysMask folds a set of weekdays into the repetition bitmask: bit i is
// set iff weekday i (Monday = 0) is present. The result is independent of
// argument order and duplicates.
func DaysMask(days ...Weekday) byte {
	var mask byte
	for _, d := range days {
		if d >= Monday && d <= Sunday {
			mask |= 1 << uint(d)
		}
	}
	return mask
}

// EncodeAlarmCommand builds the 5-byte alarm configuration command.
// Slot must be 0 through MaxAlarmSlot; hour and minute must be a valid
// time of day. The action mask and days mask are passed through verbatim.
func EncodeAlarmCommand(slot int, action byte, hour, minute int, days byte) ([]byte, error) {
	if slot < 0 || slot > MaxAlarmSlot {
		return nil, ErrInvalidAlarmSlot
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, ErrInvalidAlarmTime
	}
	return []byte{alarmOpcode, action | byte(slot), byte(hour), byte(minute), days}, nil
}
