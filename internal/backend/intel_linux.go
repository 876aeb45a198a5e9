//go:build linux

package backend

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
)

const (
	lmemTotalFile = "lmem_total_bytes"
	lmemAvailFile = "lmem_avail_bytes"
)

// intelSample reads what the i915/xe sysfs interface offers: local memory
// counters on the dedicated parts and the hwmon temperature where wired.
// The drivers expose no stable busy counter, so load stays unset.
func intelSample(h adapter.Handle, logger *slog.Logger) (Sample, error) {
	devicePath := h.DevicePath()
	if _, err := os.Stat(devicePath); err != nil {
		return Sample{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	sample := Sample{}
	if total := readUint(filepath.Join(devicePath, lmemTotalFile), logger); total != nil {
		sample.TotalVRAMBytes = total
		if avail := readUint(filepath.Join(devicePath, lmemAvailFile), logger); avail != nil && *avail <= *total {
			used := *total - *avail
			sample.UsedVRAMBytes = &used
		}
	}
	if hwmon := detectHwmon(devicePath); hwmon != "" {
		sample.TemperatureMilliC = readMilli(filepath.Join(hwmon, hwmonTempFile), logger)
	}

	return sample, nil
}
