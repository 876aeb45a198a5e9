//go:build !linux

package backend

import (
	"log/slog"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
)

// Without a native AMD interface the adapter list's memory size is all the
// telemetry there is.
func amdSample(h adapter.Handle, logger *slog.Logger) (Sample, error) {
	_ = logger
	return reportedMemorySample(h)
}
