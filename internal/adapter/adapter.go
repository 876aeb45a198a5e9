// Package adapter enumerates the raw GPU adapter handles exposed by the OS.
package adapter

import (
	"io"
	"log/slog"
	"path/filepath"
)

const (
	drmClassPath       = "class/drm"
	defaultSysfsRoot   = "/sys"
	defaultDebugfsRoot = "/sys/kernel/debug"
)

// Handle identifies one display adapter for the duration of a single
// enumeration pass. Backends read from it; nothing mutates it.
type Handle struct {
	Index int // position in enumeration order

	BusAddress  string // PCI slot name on Linux, PNP device path on Windows
	VendorID    uint16
	DeviceID    uint16
	SubVendorID uint16
	SubDeviceID uint16

	// Linux
	Card        string // DRM node name, e.g. "card0"
	Driver      string // bound kernel driver from uevent
	RenderNode  string // e.g. "/dev/dri/renderD128"
	SysfsRoot   string
	DebugfsRoot string

	// Windows
	Name          string // adapter display name reported by the OS
	VRAMBytes     uint64 // adapter-reported memory size, 0 when unknown
	DriverVersion string
}

// DevicePath returns the sysfs device directory backing a Linux handle.
func (h Handle) DevicePath() string {
	return filepath.Join(h.SysfsRoot, drmClassPath, h.Card, "device")
}

// Options configure an enumeration pass.
type Options struct {
	SysfsRoot   string // Linux only, defaults to /sys
	DebugfsRoot string // Linux only, defaults to /sys/kernel/debug
	Logger      *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
