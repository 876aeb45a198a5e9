package backend

import (
	"testing"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
	"github.com/SpikeHD/gpuinfo/internal/pciid"
)

func TestForDispatchesByVendorID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		vendorID uint16
		want     string
	}{
		{"nvidia", pciid.VendorNVIDIA, VendorNVIDIA},
		{"amd", pciid.VendorAMD, VendorAMD},
		{"intel", pciid.VendorIntel, VendorIntel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, ok := For(adapter.Handle{VendorID: tc.vendorID})
			if !ok {
				t.Fatalf("expected a backend for vendor %#04x", tc.vendorID)
			}
			if b.Vendor() != tc.want {
				t.Errorf("expected vendor %q, got %q", tc.want, b.Vendor())
			}
		})
	}
}

func TestForRejectsUnknownVendor(t *testing.T) {
	t.Parallel()

	if b, ok := For(adapter.Handle{VendorID: 0x1af4}); ok {
		t.Fatalf("expected no backend for a virtio adapter, got %q", b.Vendor())
	}
}

func TestBackendClaimsAreDisjoint(t *testing.T) {
	t.Parallel()

	for _, vendorID := range []uint16{pciid.VendorNVIDIA, pciid.VendorAMD, pciid.VendorIntel} {
		h := adapter.Handle{VendorID: vendorID}
		claims := 0
		for _, b := range Active() {
			if b.Accepts(h) {
				claims++
			}
		}
		if claims != 1 {
			t.Errorf("expected exactly one claim for vendor %#04x, got %d", vendorID, claims)
		}
	}
}

func TestActiveProbeOrder(t *testing.T) {
	t.Parallel()

	want := []string{VendorNVIDIA, VendorAMD, VendorIntel}
	active := Active()
	if len(active) != len(want) {
		t.Fatalf("expected %d backends, got %d", len(want), len(active))
	}
	for i, b := range active {
		if b.Vendor() != want[i] {
			t.Errorf("expected %q at position %d, got %q", want[i], i, b.Vendor())
		}
	}
}
