package gpuinfo

import (
	"log/slog"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
	"github.com/SpikeHD/gpuinfo/internal/backend"
)

// Vendor identifies an adapter manufacturer.
type Vendor string

const (
	VendorNVIDIA  Vendor = "NVIDIA"
	VendorAMD     Vendor = "AMD"
	VendorIntel   Vendor = "Intel"
	VendorUnknown Vendor = "Unknown"
)

// Device is one normalized GPU adapter. It is an immutable snapshot:
// identity fields are always populated, Telemetry reflects the moment the
// device was built and is nil when the owning backend supplies none. Call
// Info for fresh telemetry.
type Device struct {
	Vendor     Vendor
	Model      string
	Family     string
	DeviceID   uint32
	BusAddress string
	Discrete   bool
	Telemetry  *Telemetry

	backend backend.Backend
	handle  adapter.Handle
	logger  *slog.Logger
}

// Telemetry is one live metrics snapshot in canonical units: bytes for
// VRAM, integer percent 0-100 for load, millidegrees Celsius for
// temperature. Each field is independently optional: nil means the source
// exposes no such value, which is distinct from a reading of zero.
type Telemetry struct {
	TotalVRAMBytes    *uint64
	UsedVRAMBytes     *uint64
	LoadPct           *uint32
	TemperatureMilliC *int32
}

// Info re-queries telemetry through the owning backend against the same
// handle. Every call goes back to the native source; nothing is cached. A
// nil result means telemetry is unavailable for this device right now.
func (d *Device) Info() *Telemetry {
	if d == nil || d.backend == nil {
		return nil
	}
	return telemetryView(d.backend, d.handle, d.logger)
}
