package pciid

import (
	"strings"
	"testing"

	"github.com/jaypipes/pcidb"
)

func TestSplitChipMarketing(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		input      string
		wantFamily string
		wantModel  string
	}{
		{"AMD", "Navi 31 [Radeon RX 7900 XTX]", "Navi 31", "Radeon RX 7900 XTX"},
		{"NVIDIA", "AD102 [GeForce RTX 4090]", "AD102", "GeForce RTX 4090"},
		{"Intel", "DG2 [Arc A770]", "DG2", "Arc A770"},
		{"NoBrackets", "UHD Graphics 630", "", "UHD Graphics 630"},
		{"Whitespace", "  Navi 10 [Radeon RX 5700]  ", "Navi 10", "Radeon RX 5700"},
		{"EmptyBrackets", "Navi 10 []", "", "Navi 10 []"},
		{"LeadingBracket", "[weird]", "", "[weird]"},
		{"Empty", "", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			family, model := SplitChipMarketing(tc.input)
			if family != tc.wantFamily || model != tc.wantModel {
				t.Fatalf("SplitChipMarketing(%q) = %q/%q, want %q/%q",
					tc.input, family, model, tc.wantFamily, tc.wantModel)
			}
		})
	}
}

func TestLooksGeneric(t *testing.T) {
	t.Parallel()

	generic := []string{"", "  ", "amdgpu", "Radeon", "i915", "unknown", "PCI Device 1002:73df", "0x73df"}
	for _, name := range generic {
		if !LooksGeneric(name) {
			t.Errorf("expected %q to be generic", name)
		}
	}

	specific := []string{"AMD Radeon RX 6800", "NVIDIA GeForce RTX 4090", "Intel Arc A770"}
	for _, name := range specific {
		if LooksGeneric(name) {
			t.Errorf("expected %q to be specific", name)
		}
	}
}

func TestResolveNameUsesPCIDatabase(t *testing.T) {
	t.Parallel()

	db, err := pcidb.New()
	if err != nil {
		t.Skipf("pcidb unavailable: %v", err)
	}

	const (
		vendorID uint16 = 0x1002
		deviceID uint16 = 0x73bf
	)

	product, ok := db.Products[FormatID(vendorID)+FormatID(deviceID)]
	if !ok || product == nil || product.Name == "" {
		t.Skipf("pcidb missing product for %s%s", FormatID(vendorID), FormatID(deviceID))
	}

	name := ResolveName(vendorID, deviceID, 0, 0)
	if name != product.Name {
		t.Fatalf("expected name %q, got %q", product.Name, name)
	}

	if got := ResolveName(0xffff, 0xffff, 0, 0); got != "" {
		t.Fatalf("expected empty name for unknown product, got %q", got)
	}
}

func TestVendorName(t *testing.T) {
	t.Parallel()

	if _, err := pcidb.New(); err != nil {
		t.Skipf("pcidb unavailable: %v", err)
	}

	name := VendorName(VendorAMD)
	if name == "" {
		t.Skip("pcidb has no AMD vendor entry")
	}
	if !strings.Contains(strings.ToLower(name), "amd") && !strings.Contains(strings.ToLower(name), "ati") {
		t.Fatalf("unexpected AMD vendor name %q", name)
	}
}
