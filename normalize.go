package gpuinfo

import (
	"errors"
	"log/slog"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
	"github.com/SpikeHD/gpuinfo/internal/backend"
)

// newDevice folds one raw handle into a canonical Device: dispatch to the
// owning backend, identify, probe telemetry. Handles no backend claims
// still become devices, with an Unknown vendor and no telemetry.
func newDevice(h adapter.Handle, logger *slog.Logger) *Device {
	b, ok := backend.For(h)

	var id backend.Identity
	if ok {
		id = b.Identify(h)
	} else {
		id = backend.IdentifyUnknown(h)
		logger.Debug("no backend claims adapter",
			"bus", h.BusAddress, "vendor_id", h.VendorID)
	}

	d := &Device{
		Vendor:     Vendor(id.Vendor),
		Model:      id.Model,
		Family:     id.Family,
		DeviceID:   id.DeviceID,
		BusAddress: h.BusAddress,
		Discrete:   id.Discrete,
		handle:     h,
		logger:     logger,
	}
	if ok {
		d.backend = b
		d.Telemetry = telemetryView(b, h, logger)
	}
	return d
}

// telemetryView probes the backend once and normalizes the sample. Backend
// failures downgrade the view to nil; they never propagate as errors.
func telemetryView(b backend.Backend, h adapter.Handle, logger *slog.Logger) *Telemetry {
	sample, err := b.Telemetry(h, logger)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrNoTelemetry):
			logger.Debug("backend takes no telemetry",
				"vendor", b.Vendor(), "bus", h.BusAddress)
		case errors.Is(err, backend.ErrUnavailable):
			logger.Warn("backend unavailable, serving identity only",
				"vendor", b.Vendor(), "bus", h.BusAddress, "err", err)
		default:
			logger.Warn("telemetry query failed",
				"vendor", b.Vendor(), "bus", h.BusAddress, "err", err)
		}
		return nil
	}
	return normalizeSample(sample, b.Vendor(), h.BusAddress, logger)
}

// normalizeSample maps a backend sample onto the canonical view. Backends
// already deliver canonical units, so only field presence and the load
// range are enforced here: LoadPct never leaves 0-100, and a sample with
// no fields at all means the device has no telemetry view.
func normalizeSample(sample backend.Sample, vendor, bus string, logger *slog.Logger) *Telemetry {
	view := &Telemetry{
		TotalVRAMBytes:    sample.TotalVRAMBytes,
		UsedVRAMBytes:     sample.UsedVRAMBytes,
		TemperatureMilliC: sample.TemperatureMilliC,
	}
	if sample.LoadPct != nil {
		load := *sample.LoadPct
		if load > 100 {
			logger.Warn("clamping out-of-range load",
				"vendor", vendor, "bus", bus, "load", load)
			load = 100
		}
		view.LoadPct = &load
	}
	if view.TotalVRAMBytes == nil && view.UsedVRAMBytes == nil && view.LoadPct == nil && view.TemperatureMilliC == nil {
		return nil
	}
	return view
}
