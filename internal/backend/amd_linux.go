//go:build linux

package backend

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
)

const (
	gpuBusyFile     = "gpu_busy_percent"
	vramUsedFile    = "mem_info_vram_used"
	vramTotalFile   = "mem_info_vram_total"
	hwmonTempFile   = "temp1_input"
	debugPmInfoFile = "amdgpu_pm_info"
)

// amdSample reads one snapshot from the amdgpu sysfs interface. A missing
// device directory means the driver interface is gone; individual missing
// files only leave their field unset.
func amdSample(h adapter.Handle, logger *slog.Logger) (Sample, error) {
	devicePath := h.DevicePath()
	if _, err := os.Stat(devicePath); err != nil {
		return Sample{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	sample := Sample{
		LoadPct:        readPercent(filepath.Join(devicePath, gpuBusyFile), logger),
		UsedVRAMBytes:  readUint(filepath.Join(devicePath, vramUsedFile), logger),
		TotalVRAMBytes: readUint(filepath.Join(devicePath, vramTotalFile), logger),
	}
	if hwmon := detectHwmon(devicePath); hwmon != "" {
		sample.TemperatureMilliC = readMilli(filepath.Join(hwmon, hwmonTempFile), logger)
	}
	amdDebugFallback(h, &sample)

	return sample, nil
}

// amdDebugFallback fills load and temperature from debugfs amdgpu_pm_info
// on kernels whose sysfs lacks the counters. Fields already read from
// sysfs are left alone.
func amdDebugFallback(h adapter.Handle, sample *Sample) {
	if sample.LoadPct != nil && sample.TemperatureMilliC != nil {
		return
	}
	if h.DebugfsRoot == "" {
		return
	}
	index, err := cardIndex(h.Card)
	if err != nil {
		return
	}
	data, err := os.ReadFile(filepath.Join(h.DebugfsRoot, "dri", strconv.Itoa(index), debugPmInfoFile))
	if err != nil {
		return
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "gpu load"):
			if sample.LoadPct != nil {
				continue
			}
			if value, ok := extractFirstInt(line); ok && value >= 0 {
				load := uint32(min(value, 100))
				sample.LoadPct = &load
			}
		case strings.HasPrefix(lower, "gpu temperature"):
			if sample.TemperatureMilliC != nil {
				continue
			}
			if value, ok := extractFirstInt(line); ok {
				// amdgpu_pm_info reports whole degrees Celsius.
				milli := int32(value) * 1000
				sample.TemperatureMilliC = &milli
			}
		}
	}
}

func cardIndex(card string) (int, error) {
	if !strings.HasPrefix(card, "card") {
		return 0, fmt.Errorf("invalid card id %q", card)
	}
	return strconv.Atoi(card[len("card"):])
}

func extractFirstInt(line string) (int64, bool) {
	var buf strings.Builder
	seen := false
	for _, r := range line {
		if unicode.IsDigit(r) || (r == '-' && !seen) {
			buf.WriteRune(r)
			seen = true
			continue
		}
		if seen {
			break
		}
	}
	if !seen {
		return 0, false
	}
	value, err := strconv.ParseInt(buf.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// readPercent reads a sysfs busy percentage. Negative values mean the
// counter is not implemented. Some kernels report the value scaled by 100,
// so anything above 100 is descaled before the final clamp.
func readPercent(path string, logger *slog.Logger) *uint32 {
	raw, ok := readInt(path, logger)
	if !ok || raw < 0 {
		return nil
	}
	if raw > 100 {
		if logger != nil {
			logger.Warn("descaling out-of-range busy value", "path", path, "value", raw)
		}
		raw /= 100
		if raw > 100 {
			raw = 100
		}
	}
	value := uint32(raw)
	return &value
}

// readMilli reads an hwmon value already expressed in milli units.
func readMilli(path string, logger *slog.Logger) *int32 {
	raw, ok := readInt(path, logger)
	if !ok {
		return nil
	}
	value := int32(raw)
	return &value
}

func readUint(path string, logger *slog.Logger) *uint64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil
	}
	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		if logger != nil {
			logger.Debug("failed to parse sysfs value", "path", path, "value", text, "err", err)
		}
		return nil
	}
	return &value
}

func readInt(path string, logger *slog.Logger) (int64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, false
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if logger != nil {
			logger.Debug("failed to parse sysfs value", "path", path, "value", text, "err", err)
		}
		return 0, false
	}
	return value, true
}

// detectHwmon finds the hwmon entry for the device. Kernels assign the
// numbered subdirectory at boot, so it is looked up on every sample rather
// than remembered.
func detectHwmon(devicePath string) string {
	hwmonRoot := filepath.Join(devicePath, "hwmon")
	entries, err := os.ReadDir(hwmonRoot)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() || entry.Type()&os.ModeSymlink != 0 {
			return filepath.Join(hwmonRoot, entry.Name())
		}
	}
	return ""
}
