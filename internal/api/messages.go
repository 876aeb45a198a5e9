// Package api defines the wire types shared by the HTTP and WebSocket
// surfaces of the exporter.
package api

import (
	"time"

	"github.com/SpikeHD/gpuinfo"
	"github.com/SpikeHD/gpuinfo/internal/poll"
)

// DeviceInfo identifies a single GPU.
type DeviceInfo struct {
	Index      int    `json:"index"`
	Vendor     string `json:"vendor"`
	Model      string `json:"model"`
	Family     string `json:"family,omitempty"`
	DeviceID   uint32 `json:"device_id"`
	BusAddress string `json:"bus_address,omitempty"`
	Discrete   bool   `json:"discrete"`
}

// TelemetryInfo carries the runtime readings of one GPU. A null field means
// the reading is unavailable on this device, which is not the same as zero.
type TelemetryInfo struct {
	VRAMTotalBytes    *uint64 `json:"vram_total_bytes"`
	VRAMUsedBytes     *uint64 `json:"vram_used_bytes"`
	LoadPct           *uint32 `json:"load_pct"`
	TemperatureMilliC *int32  `json:"temperature_milli_c"`
}

// DevicePayload is identity plus the latest readings. Telemetry is null for
// identity-only devices.
type DevicePayload struct {
	DeviceInfo
	Telemetry *TelemetryInfo `json:"telemetry"`
}

// DeviceInfoFrom maps a library device to its wire identity.
func DeviceInfoFrom(index int, d *gpuinfo.Device) DeviceInfo {
	return DeviceInfo{
		Index:      index,
		Vendor:     string(d.Vendor),
		Model:      d.Model,
		Family:     d.Family,
		DeviceID:   d.DeviceID,
		BusAddress: d.BusAddress,
		Discrete:   d.Discrete,
	}
}

// DevicePayloadFrom maps a library device to its wire payload.
func DevicePayloadFrom(index int, d *gpuinfo.Device) DevicePayload {
	payload := DevicePayload{DeviceInfo: DeviceInfoFrom(index, d)}
	if t := d.Telemetry; t != nil {
		payload.Telemetry = &TelemetryInfo{
			VRAMTotalBytes:    t.TotalVRAMBytes,
			VRAMUsedBytes:     t.UsedVRAMBytes,
			LoadPct:           t.LoadPct,
			TemperatureMilliC: t.TemperatureMilliC,
		}
	}
	return payload
}

// RankInfo records the selection inputs of one device.
type RankInfo struct {
	Index     int  `json:"index"`
	Discrete  bool `json:"discrete"`
	Telemetry bool `json:"telemetry"`
}

// RanksFrom maps the library's ranking inputs to their wire form.
func RanksFrom(ranks []gpuinfo.Rank) []RankInfo {
	if len(ranks) == 0 {
		return nil
	}
	out := make([]RankInfo, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, RankInfo{Index: r.Index, Discrete: r.Discrete, Telemetry: r.Telemetry})
	}
	return out
}

// SelectionPayload is the active device together with the ranking inputs
// that chose it.
type SelectionPayload struct {
	Device DevicePayload `json:"device"`
	Ranks  []RankInfo    `json:"ranks"`
}

// SelectionPayloadFrom builds the active-selection payload from a snapshot.
// The caller guarantees the snapshot has an active device.
func SelectionPayloadFrom(snap poll.Snapshot) SelectionPayload {
	return SelectionPayload{
		Device: DevicePayloadFrom(snap.ActiveIndex, snap.Active()),
		Ranks:  RanksFrom(snap.Ranks),
	}
}

// HelloMessage is the initial payload sent on WebSocket connection.
type HelloMessage struct {
	Type       string          `json:"type"`
	IntervalMS int             `json:"interval_ms"`
	Host       HostInfo        `json:"host"`
	Devices    []DeviceInfo    `json:"devices"`
	Features   map[string]bool `json:"features"`
}

// NewHelloMessage constructs a hello payload.
func NewHelloMessage(intervalMS int, hostInfo HostInfo, devices []DeviceInfo, features map[string]bool) HelloMessage {
	return HelloMessage{
		Type:       "hello",
		IntervalMS: intervalMS,
		Host:       hostInfo,
		Devices:    devices,
		Features:   features,
	}
}

// SnapshotMessage wraps one polled snapshot for transport.
type SnapshotMessage struct {
	Type        string          `json:"type"`
	TakenAt     time.Time       `json:"taken_at"`
	Devices     []DevicePayload `json:"devices"`
	ActiveIndex int             `json:"active_index"`
	Ranks       []RankInfo      `json:"ranks,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// NewSnapshotMessage constructs a snapshot payload.
func NewSnapshotMessage(snap poll.Snapshot) SnapshotMessage {
	msg := SnapshotMessage{
		Type:        "snapshot",
		TakenAt:     snap.Timestamp,
		Devices:     make([]DevicePayload, 0, len(snap.Devices)),
		ActiveIndex: snap.ActiveIndex,
		Ranks:       RanksFrom(snap.Ranks),
		Error:       snap.Err,
	}
	for i, d := range snap.Devices {
		msg.Devices = append(msg.Devices, DevicePayloadFrom(i, d))
	}
	return msg
}

// ErrorMessage communicates an error condition to the client.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ClientMessage is a generic envelope used for decoding inbound client messages.
type ClientMessage struct {
	Type string `json:"type"`
}

// PongMessage is the response to a ping.
type PongMessage struct {
	Type string `json:"type"`
}
