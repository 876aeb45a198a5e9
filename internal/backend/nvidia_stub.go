//go:build !linux || !nvml

package backend

import (
	"log/slog"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
)

// Built without the nvml tag: identity comes from pci.ids and telemetry
// from the adapter list alone.
func nvmlSample(h adapter.Handle, logger *slog.Logger) (Sample, error) {
	_ = logger
	return reportedMemorySample(h)
}

func nvmlIdentity(adapter.Handle) (name, family string, ok bool) {
	return "", "", false
}
