package api

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/SpikeHD/gpuinfo"
	"github.com/SpikeHD/gpuinfo/internal/poll"
)

func TestSnapshotMessageKeepsAbsenceDistinctFromZero(t *testing.T) {
	t.Parallel()

	var load uint32 // a real reading of zero
	device := &gpuinfo.Device{
		Vendor:     gpuinfo.VendorAMD,
		Model:      "Radeon RX 6800",
		DeviceID:   0x73bf,
		BusAddress: "0000:0b:00.0",
		Discrete:   true,
		Telemetry:  &gpuinfo.Telemetry{LoadPct: &load},
	}

	msg := NewSnapshotMessage(poll.Snapshot{
		Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Devices:     []*gpuinfo.Device{device},
		ActiveIndex: 0,
	})

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)

	if !strings.Contains(body, `"load_pct":0`) {
		t.Errorf("a measured zero must serialize as 0, got %s", body)
	}
	if !strings.Contains(body, `"temperature_milli_c":null`) {
		t.Errorf("an absent reading must serialize as null, got %s", body)
	}
	if !strings.Contains(body, `"active_index":0`) {
		t.Errorf("active index missing from %s", body)
	}
}

func TestSnapshotMessageIdentityOnlyDevice(t *testing.T) {
	t.Parallel()

	device := &gpuinfo.Device{
		Vendor:   gpuinfo.VendorIntel,
		Model:    "Intel UHD Graphics",
		DeviceID: 0x9a49,
	}

	msg := NewSnapshotMessage(poll.Snapshot{
		Devices:     []*gpuinfo.Device{device},
		ActiveIndex: -1,
		Err:         "no gpu device found",
	})

	if msg.Devices[0].Telemetry != nil {
		t.Fatal("identity-only device must carry a null telemetry block")
	}
	if msg.Error == "" {
		t.Fatal("snapshot error must survive the mapping")
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"telemetry":null`) {
		t.Errorf("expected a null telemetry block, got %s", raw)
	}
}

func TestSelectionPayloadCarriesRankingInputs(t *testing.T) {
	t.Parallel()

	var load uint32 = 40
	integrated := &gpuinfo.Device{Vendor: gpuinfo.VendorIntel, Model: "Intel UHD Graphics"}
	discrete := &gpuinfo.Device{
		Vendor:    gpuinfo.VendorAMD,
		Model:     "Radeon RX 6800",
		Discrete:  true,
		Telemetry: &gpuinfo.Telemetry{LoadPct: &load},
	}

	payload := SelectionPayloadFrom(poll.Snapshot{
		Devices:     []*gpuinfo.Device{integrated, discrete},
		ActiveIndex: 1,
		Ranks: []gpuinfo.Rank{
			{Index: 0, Discrete: false, Telemetry: false},
			{Index: 1, Discrete: true, Telemetry: true},
		},
	})

	if payload.Device.Model != "Radeon RX 6800" || payload.Device.Index != 1 {
		t.Fatalf("unexpected selected device %+v", payload.Device)
	}
	if len(payload.Ranks) != 2 {
		t.Fatalf("expected 2 ranks, got %d", len(payload.Ranks))
	}
	if !payload.Ranks[1].Discrete || !payload.Ranks[1].Telemetry {
		t.Errorf("ranking inputs lost in mapping: %+v", payload.Ranks[1])
	}
}

func TestDeviceInfoFrom(t *testing.T) {
	t.Parallel()

	device := &gpuinfo.Device{
		Vendor:     gpuinfo.VendorNVIDIA,
		Model:      "GeForce RTX 4090",
		Family:     "Ada Lovelace",
		DeviceID:   0x2684,
		BusAddress: "0000:01:00.0",
		Discrete:   true,
	}

	info := DeviceInfoFrom(3, device)
	if info.Index != 3 {
		t.Errorf("index = %d, want 3", info.Index)
	}
	if info.Vendor != "NVIDIA" {
		t.Errorf("vendor = %q, want %q", info.Vendor, "NVIDIA")
	}
	if info.DeviceID != 0x2684 {
		t.Errorf("device_id = %#x, want 0x2684", info.DeviceID)
	}
	if !info.Discrete {
		t.Error("expected a discrete device")
	}
}
