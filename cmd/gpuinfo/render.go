package main

import (
	"fmt"
	"io"

	"github.com/SpikeHD/gpuinfo"
)

const valueUnavailable = "n/a"

func renderDevice(w io.Writer, index int, d *gpuinfo.Device) {
	kind := "integrated"
	if d.Discrete {
		kind = "discrete"
	}

	fmt.Fprintf(w, "GPU %d: %s (%s, %s)\n", index, d.Model, d.Vendor, kind)
	if d.Family != "" {
		fmt.Fprintf(w, "  Family:      %s\n", d.Family)
	}
	fmt.Fprintf(w, "  Device ID:   %#06x\n", d.DeviceID)
	if d.BusAddress != "" {
		fmt.Fprintf(w, "  Bus:         %s\n", d.BusAddress)
	}
	fmt.Fprintf(w, "  VRAM:        %s\n", formatVRAM(d.Telemetry))
	fmt.Fprintf(w, "  Load:        %s\n", formatLoad(d.Telemetry))
	fmt.Fprintf(w, "  Temperature: %s\n", formatTemperature(d.Telemetry))
}

func formatVRAM(t *gpuinfo.Telemetry) string {
	if t == nil {
		return valueUnavailable
	}
	if t.TotalVRAMBytes == nil {
		if t.UsedVRAMBytes == nil {
			return valueUnavailable
		}
		return fmt.Sprintf("%s used", formatBytes(*t.UsedVRAMBytes))
	}
	total := formatBytes(*t.TotalVRAMBytes)
	if t.UsedVRAMBytes == nil {
		return total
	}
	return fmt.Sprintf("%s / %s", formatBytes(*t.UsedVRAMBytes), total)
}

func formatLoad(t *gpuinfo.Telemetry) string {
	if t == nil || t.LoadPct == nil {
		return valueUnavailable
	}
	return fmt.Sprintf("%d%%", *t.LoadPct)
}

func formatTemperature(t *gpuinfo.Telemetry) string {
	if t == nil || t.TemperatureMilliC == nil {
		return valueUnavailable
	}
	return fmt.Sprintf("%.1f°C", float64(*t.TemperatureMilliC)/1000)
}

func formatBytes(v uint64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%d B", v)
	}
	div, exp := uint64(unit), 0
	for n := v / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(v)/float64(div), "KMGTPE"[exp])
}
