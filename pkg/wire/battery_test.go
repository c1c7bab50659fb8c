package wire

import "testing"

func TestDecodeBatteryReport(t *testing.T) {
	raw := make([]byte, BatteryReportMinSize)
	raw[1] = 87 // level
	raw[2] = 1  // charging

	// last off: 2023-12-24 (0x07E7 little-endian)
	raw[3], raw[4] = 0xE7, 0x07
	raw[5], raw[6] = 12, 24

	// last charge: 2024-01-02 (0x07E8 little-endian)
	raw[11], raw[12] = 0xE8, 0x07
	raw[13], raw[14] = 1, 2

	report, err := DecodeBatteryReport(raw)
	if err != nil {
		t.Fatalf("DecodeBatteryReport failed: %v", err)
	}

	if report.Level != 87 {
		t.Errorf("Expected level 87, got %d", report.Level)
	}
	if report.Status != BatteryCharging {
		t.Errorf("Expected Charging, got %s", report.Status)
	}
	if report.LastOff.Year != 2023 || report.LastOff.Month != 12 || report.LastOff.Day != 24 {
		t.Errorf("Unexpected last off: %+v", report.LastOff)
	}
	if report.LastCharge.Year != 2024 || report.LastCharge.Month != 1 || report.LastCharge.Day != 2 {
		t.Errorf("Unexpected last charge: %+v", report.LastCharge)
	}
}

func TestDecodeBatteryReportNormal(t *testing.T) {
	raw := make([]byte, BatteryReportMinSize)
	raw[1] = 100

	report, err := DecodeBatteryReport(raw)
	if err != nil {
		t.Fatalf("DecodeBatteryReport failed: %v", err)
	}
	if report.Status != BatteryNormal {
		t.Errorf("Expected Normal, got %s", report.Status)
	}
}

func TestDecodeBatteryReportShort(t *testing.T) {
	if _, err := DecodeBatteryReport(make([]byte, 17)); err != ErrShortBatteryReport {
		t.Errorf("Expected ErrShortBatteryReport, got %v", err)
	}
}
