package pciid

import "testing"

func TestParseID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		raw     string
		want    uint16
		wantErr bool
	}{
		{"Plain", "1002", 0x1002, false},
		{"Prefixed", "0x73df", 0x73df, false},
		{"UpperPrefix", "0X10DE", 0x10de, false},
		{"Whitespace", " 8086 \n", 0x8086, false},
		{"Short", "a", 0xa, false},
		{"Empty", "", 0, true},
		{"PrefixOnly", "0x", 0, true},
		{"TooWide", "12345", 0, true},
		{"NotHex", "zzzz", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseID(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %#04x", tc.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseID(%q) returned error: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("ParseID(%q) = %#04x, want %#04x", tc.raw, got, tc.want)
			}
		})
	}
}

func TestFormatID(t *testing.T) {
	t.Parallel()

	if got := FormatID(0x10de); got != "10de" {
		t.Fatalf("FormatID(0x10de) = %q", got)
	}
	if got := FormatID(0xa); got != "000a" {
		t.Fatalf("FormatID(0xa) = %q", got)
	}
}

func TestParsePair(t *testing.T) {
	t.Parallel()

	vendor, device, err := ParsePair("1002:73DF")
	if err != nil {
		t.Fatalf("ParsePair returned error: %v", err)
	}
	if vendor != 0x1002 || device != 0x73df {
		t.Fatalf("ParsePair = %#04x:%#04x", vendor, device)
	}

	if _, _, err := ParsePair("1002"); err == nil {
		t.Fatalf("expected error for pair without separator")
	}
	if _, _, err := ParsePair("1002:xyz"); err == nil {
		t.Fatalf("expected error for non-hex device id")
	}
}

func TestParsePNPDeviceID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		raw        string
		wantVendor uint16
		wantDevice uint16
		wantErr    bool
	}{
		{"NVIDIA", `PCI\VEN_10DE&DEV_2684&SUBSYS_889D1043&REV_A1\4&2283F625&0&0019`, 0x10de, 0x2684, false},
		{"IntelLowercase", `pci\ven_8086&dev_a780&subsys_00000000`, 0x8086, 0xa780, false},
		{"DeviceAtEnd", `PCI\VEN_1002&DEV_744C`, 0x1002, 0x744c, false},
		{"NotPCI", `USB\VID_046D&PID_C52B`, 0, 0, true},
		{"MissingDevice", `PCI\VEN_10DE&REV_A1`, 0, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			vendor, device, err := ParsePNPDeviceID(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePNPDeviceID(%q) returned error: %v", tc.raw, err)
			}
			if vendor != tc.wantVendor || device != tc.wantDevice {
				t.Fatalf("ParsePNPDeviceID(%q) = %#04x/%#04x, want %#04x/%#04x",
					tc.raw, vendor, device, tc.wantVendor, tc.wantDevice)
			}
		})
	}
}

func TestNormalizeBusAddress(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		raw  string
		want string
	}{
		{"0000:0A:00.0", "0000:0a:00.0"},
		{"00000000:65:00.0", "0000:65:00.0"},
		{" 0000:01:00.0\n", "0000:01:00.0"},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := NormalizeBusAddress(tc.raw); got != tc.want {
			t.Fatalf("NormalizeBusAddress(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
