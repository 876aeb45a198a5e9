package api

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// HostInfo describes the machine the exporter runs on.
type HostInfo struct {
	Hostname        string `json:"hostname,omitempty"`
	OS              string `json:"os"`
	Platform        string `json:"platform,omitempty"`
	PlatformVersion string `json:"platform_version,omitempty"`
	KernelVersion   string `json:"kernel_version,omitempty"`
	KernelArch      string `json:"kernel_arch,omitempty"`
}

// CollectHost gathers host identity for the hello payload. On probe failure
// it falls back to the compile-time OS name.
func CollectHost(ctx context.Context) HostInfo {
	info, err := host.InfoWithContext(ctx)
	if err != nil || info == nil {
		return HostInfo{OS: runtime.GOOS}
	}
	return HostInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		KernelArch:      info.KernelArch,
	}
}
