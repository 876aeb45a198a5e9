//go:build !nonvidia

package backend

import (
	"log/slog"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
	"github.com/SpikeHD/gpuinfo/internal/pciid"
)

type nvidiaBackend struct{}

func newNVIDIA() Backend { return nvidiaBackend{} }

func (nvidiaBackend) Vendor() string { return VendorNVIDIA }

func (nvidiaBackend) Accepts(h adapter.Handle) bool {
	return h.VendorID == pciid.VendorNVIDIA
}

func (nvidiaBackend) Identify(h adapter.Handle) Identity {
	id := identityFromPCI(h, VendorNVIDIA)
	// NVIDIA ships no integrated PCI GPUs.
	id.Discrete = true
	if name, family, ok := nvmlIdentity(h); ok {
		if name != "" {
			id.Model = name
		}
		if id.Family == "" {
			id.Family = family
		}
	}
	return id
}

func (nvidiaBackend) Telemetry(h adapter.Handle, logger *slog.Logger) (Sample, error) {
	if !telemetryEnabled {
		return Sample{}, ErrNoTelemetry
	}
	return nvmlSample(h, logger)
}
