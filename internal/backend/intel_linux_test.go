//go:build linux

package backend

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestIntelSampleLocalMemory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	device := filepath.Join(root, "class", "drm", "card0", "device")
	writeFile(t, filepath.Join(device, "lmem_total_bytes"), "17179869184\n")
	writeFile(t, filepath.Join(device, "lmem_avail_bytes"), "16106127360\n")
	writeFile(t, filepath.Join(device, "hwmon", "hwmon2", "temp1_input"), "41000\n")

	sample, err := intelSample(testHandle(root, "card0"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sample.TotalVRAMBytes == nil || *sample.TotalVRAMBytes != 17179869184 {
		t.Errorf("expected total vram 17179869184, got %v", sample.TotalVRAMBytes)
	}
	if sample.UsedVRAMBytes == nil || *sample.UsedVRAMBytes != 1073741824 {
		t.Errorf("expected used vram 1073741824, got %v", sample.UsedVRAMBytes)
	}
	if sample.TemperatureMilliC == nil || *sample.TemperatureMilliC != 41000 {
		t.Errorf("expected temperature 41000, got %v", sample.TemperatureMilliC)
	}
	if sample.LoadPct != nil {
		t.Errorf("expected no load value, got %d", *sample.LoadPct)
	}
}

func TestIntelSampleIntegratedExposesNothing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	device := filepath.Join(root, "class", "drm", "card0", "device")
	if err := os.MkdirAll(device, 0o750); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	sample, err := intelSample(testHandle(root, "card0"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sample.TotalVRAMBytes != nil || sample.UsedVRAMBytes != nil || sample.LoadPct != nil || sample.TemperatureMilliC != nil {
		t.Errorf("expected every field to stay unset, got %+v", sample)
	}
}

func TestIntelSampleMissingDevice(t *testing.T) {
	t.Parallel()

	_, err := intelSample(testHandle(t.TempDir(), "card0"), nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestIntelSampleIgnoresInconsistentAvailability(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	device := filepath.Join(root, "class", "drm", "card0", "device")
	writeFile(t, filepath.Join(device, "lmem_total_bytes"), "1000\n")
	writeFile(t, filepath.Join(device, "lmem_avail_bytes"), "2000\n")

	sample, err := intelSample(testHandle(root, "card0"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sample.TotalVRAMBytes == nil || *sample.TotalVRAMBytes != 1000 {
		t.Errorf("expected total vram 1000, got %v", sample.TotalVRAMBytes)
	}
	if sample.UsedVRAMBytes != nil {
		t.Errorf("expected no used value, got %d", *sample.UsedVRAMBytes)
	}
}
