package transport

// GATT characteristic UUIDs of the band. The vendor characteristics live
// under the 0x3512 vendor service; the rest are standard Bluetooth SIG
// assigned numbers.
const (
	// CharAuth is the bidirectional handshake endpoint. All handshake
	// frames are written here and all replies arrive as notifications
	// on it.
	CharAuth Characteristic = "00000009-0000-3512-2118-0009af100700"

	// CharTime is the read/write current-time endpoint (10-byte frame).
	CharTime Characteristic = "00002a2b-0000-1000-8000-00805f9b34fb"

	// CharBattery is the read-only battery report endpoint.
	CharBattery Characteristic = "00000006-0000-3512-2118-0009af100700"

	// CharAlarm is the write-only alarm configuration endpoint.
	CharAlarm Characteristic = "00000003-0000-3512-2118-0009af100700"

	// CharAlert is the write-only immediate-alert endpoint used to make
	// the band vibrate.
	CharAlert Characteristic = "00002a06-0000-1000-8000-00805f9b34fb"

	// CharHeartRateControl is the write-only heart-rate control point.
	CharHeartRateControl Characteristic = "00002a39-0000-1000-8000-00805f9b34fb"

	// CharHeartRateData notifies heart-rate measurements.
	CharHeartRateData Characteristic = "00002a37-0000-1000-8000-00805f9b34fb"
)
