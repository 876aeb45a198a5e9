//go:build !nointel

package backend

import (
	"log/slog"
	"strings"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
	"github.com/SpikeHD/gpuinfo/internal/pciid"
)

type intelBackend struct{}

func newIntel() Backend { return intelBackend{} }

func (intelBackend) Vendor() string { return VendorIntel }

func (intelBackend) Accepts(h adapter.Handle) bool {
	return h.VendorID == pciid.VendorIntel
}

func (intelBackend) Identify(h adapter.Handle) Identity {
	id := identityFromPCI(h, VendorIntel)
	id.Discrete = intelDiscrete(id.Family, id.Model)
	return id
}

func (intelBackend) Telemetry(h adapter.Handle, logger *slog.Logger) (Sample, error) {
	if !telemetryEnabled {
		return Sample{}, ErrNoTelemetry
	}
	return intelSample(h, logger)
}

// intelDiscrete reports whether the part is one of the Xe dedicated cards.
// Everything else Intel puts on PCI is processor graphics.
func intelDiscrete(family, model string) bool {
	for _, candidate := range []string{family, model} {
		lower := strings.ToLower(candidate)
		if lower == "" {
			continue
		}
		for _, marker := range []string{"dg1", "dg2", "battlemage", "bmg", "arc "} {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}
