//go:build linux && nvml

package backend

import (
	"fmt"
	"log/slog"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
	"github.com/SpikeHD/gpuinfo/internal/pciid"
)

// nvmlSample takes one snapshot through NVML. The library is initialised
// and shut down inside the call so no native state outlives it.
func nvmlSample(h adapter.Handle, logger *slog.Logger) (Sample, error) {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return Sample{}, fmt.Errorf("%w: nvml init: %s", ErrUnavailable, nvml.ErrorString(ret))
	}
	defer shutdownNVML(logger)

	device, err := nvmlDeviceForHandle(h)
	if err != nil {
		return Sample{}, err
	}

	sample := Sample{}
	if mem, ret := device.GetMemoryInfo(); ret == nvml.SUCCESS {
		total := mem.Total
		used := mem.Used
		sample.TotalVRAMBytes = &total
		sample.UsedVRAMBytes = &used
	} else if logger != nil {
		logger.Debug("nvml memory info unavailable", "err", nvml.ErrorString(ret))
	}
	if util, ret := device.GetUtilizationRates(); ret == nvml.SUCCESS {
		load := util.Gpu
		sample.LoadPct = &load
	} else if logger != nil {
		logger.Debug("nvml utilization unavailable", "err", nvml.ErrorString(ret))
	}
	if temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		// NVML reports whole degrees Celsius.
		milli := int32(temp) * 1000
		sample.TemperatureMilliC = &milli
	} else if logger != nil {
		logger.Debug("nvml temperature unavailable", "err", nvml.ErrorString(ret))
	}

	return sample, nil
}

// nvmlIdentity resolves the marketing name and architecture generation
// NVML reports for the adapter.
func nvmlIdentity(h adapter.Handle) (name, family string, ok bool) {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return "", "", false
	}
	defer shutdownNVML(nil)

	device, err := nvmlDeviceForHandle(h)
	if err != nil {
		return "", "", false
	}
	if value, ret := device.GetName(); ret == nvml.SUCCESS {
		name = value
	}
	if arch, ret := device.GetArchitecture(); ret == nvml.SUCCESS {
		family = architectureName(arch)
	}
	return name, family, name != "" || family != ""
}

func architectureName(arch nvml.DeviceArchitecture) string {
	switch arch {
	case nvml.DEVICE_ARCH_KEPLER:
		return "Kepler"
	case nvml.DEVICE_ARCH_MAXWELL:
		return "Maxwell"
	case nvml.DEVICE_ARCH_PASCAL:
		return "Pascal"
	case nvml.DEVICE_ARCH_VOLTA:
		return "Volta"
	case nvml.DEVICE_ARCH_TURING:
		return "Turing"
	case nvml.DEVICE_ARCH_AMPERE:
		return "Ampere"
	case nvml.DEVICE_ARCH_ADA:
		return "Ada Lovelace"
	case nvml.DEVICE_ARCH_HOPPER:
		return "Hopper"
	default:
		return ""
	}
}

// nvmlDeviceForHandle matches the PCI handle to an NVML device by bus
// address, so multi-GPU hosts never cross their samples.
func nvmlDeviceForHandle(h adapter.Handle) (device nvml.Device, err error) {
	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		err = fmt.Errorf("%w: nvml device count: %s", ErrUnavailable, nvml.ErrorString(ret))
		return
	}

	want := pciid.NormalizeBusAddress(h.BusAddress)
	for i := 0; i < count; i++ {
		candidate, ret := nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			continue
		}
		info, ret := candidate.GetPciInfo()
		if ret != nvml.SUCCESS {
			continue
		}
		if pciid.NormalizeBusAddress(busIDString(info.BusId[:])) == want {
			return candidate, nil
		}
	}

	err = fmt.Errorf("%w: no nvml device at %s", ErrUnavailable, h.BusAddress)
	return
}

func shutdownNVML(logger *slog.Logger) {
	if ret := nvml.Shutdown(); ret != nvml.SUCCESS && logger != nil {
		logger.Debug("nvml shutdown failed", "err", nvml.ErrorString(ret))
	}
}

func busIDString(raw []int8) string {
	buf := make([]byte, 0, len(raw))
	for _, c := range raw {
		if c == 0 {
			break
		}
		buf = append(buf, byte(c))
	}
	return string(buf)
}
