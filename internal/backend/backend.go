// Package backend implements the per-vendor query adapters and their
// dispatch. Exactly one backend owns any given adapter handle, decided by
// the PCI vendor identifier before any native interface is touched.
package backend

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
	"github.com/SpikeHD/gpuinfo/internal/pciid"
)

// Vendor labels reported in identities.
const (
	VendorNVIDIA  = "NVIDIA"
	VendorAMD     = "AMD"
	VendorIntel   = "Intel"
	VendorUnknown = "Unknown"
)

var (
	// ErrUnavailable reports that the native interface behind a backend
	// cannot be reached: driver not loaded, library missing, device gone.
	ErrUnavailable = errors.New("backend unavailable")
	// ErrNoTelemetry reports that a backend takes no samples at all,
	// either for this build or for this vendor on this platform.
	ErrNoTelemetry = errors.New("telemetry not supported")
)

// Identity is the vendor-resolved identity of one adapter.
type Identity struct {
	Vendor   string
	Model    string
	Family   string
	DeviceID uint32
	Discrete bool
}

// Sample is one telemetry snapshot in canonical units: bytes, integer
// percent, millidegrees Celsius. Pointer fields are nil when the source
// does not expose the value.
type Sample struct {
	TotalVRAMBytes    *uint64
	UsedVRAMBytes     *uint64
	LoadPct           *uint32
	TemperatureMilliC *int32
}

// Backend is one vendor query adapter.
type Backend interface {
	// Vendor returns the vendor label this backend serves.
	Vendor() string
	// Accepts reports whether the handle belongs to this backend's
	// vendor, checked on the PCI vendor identifier alone.
	Accepts(h adapter.Handle) bool
	// Identify builds the adapter's identity. It does not fail: native
	// lookups degrade to pci.ids data and the handle itself.
	Identify(h adapter.Handle) Identity
	// Telemetry takes a fresh sample. ErrUnavailable and ErrNoTelemetry
	// are the only expected failure modes.
	Telemetry(h adapter.Handle, logger *slog.Logger) (Sample, error)
}

// IdentifyUnknown normalizes a handle no compiled-in backend claims.
func IdentifyUnknown(h adapter.Handle) Identity {
	return identityFromPCI(h, VendorUnknown)
}

func identityFromPCI(h adapter.Handle, vendor string) Identity {
	name := displayName(h)
	family, model := pciid.SplitChipMarketing(name)
	if model == "" {
		model = fallbackModel(h, vendor)
	}
	return Identity{
		Vendor:   vendor,
		Model:    model,
		Family:   family,
		DeviceID: uint32(h.DeviceID),
	}
}

// displayName prefers pci.ids data over the OS-reported adapter name; the
// reported name only wins when the database has nothing and the name is not
// a bare driver label.
func displayName(h adapter.Handle) string {
	if name := pciid.ResolveName(h.VendorID, h.DeviceID, h.SubVendorID, h.SubDeviceID); name != "" {
		return name
	}
	if !pciid.LooksGeneric(h.Name) {
		return h.Name
	}
	return ""
}

func fallbackModel(h adapter.Handle, vendor string) string {
	label := vendor
	if label == VendorUnknown || label == "" {
		label = pciid.VendorName(h.VendorID)
	}
	if label == "" {
		label = "PCI"
	}
	return fmt.Sprintf("%s Device %s", label, pciid.FormatID(h.DeviceID))
}

// reportedMemorySample carries the one telemetry-adjacent value the OS
// adapter list provides: the adapter memory size. Everything else needs a
// native vendor interface.
func reportedMemorySample(h adapter.Handle) (Sample, error) {
	if h.VRAMBytes == 0 {
		return Sample{}, ErrNoTelemetry
	}
	total := h.VRAMBytes
	return Sample{TotalVRAMBytes: &total}, nil
}
