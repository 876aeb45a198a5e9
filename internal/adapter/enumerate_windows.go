//go:build windows

package adapter

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"

	"github.com/SpikeHD/gpuinfo/internal/pciid"
)

const videoControllerQuery = "SELECT Name, AdapterCompatibility, AdapterRAM, PNPDeviceID, DriverVersion FROM Win32_VideoController"

// win32VideoController mirrors the WMI class of the same name. Field names
// must match the WMI property names for the query mapper.
type win32VideoController struct {
	Name                 string
	AdapterCompatibility string
	AdapterRAM           uint64
	PNPDeviceID          string
	DriverVersion        string
}

// Enumerate lists display adapters through WMI. A failing WMI service fails
// the whole pass; adapters without a PCI identity (virtual displays, USB
// adapters) are skipped with a warning.
func Enumerate(opts Options) ([]Handle, error) {
	logger := opts.logger()

	var controllers []win32VideoController
	if err := wmi.Query(videoControllerQuery, &controllers); err != nil {
		return nil, fmt.Errorf("query Win32_VideoController: %w", err)
	}

	handles := make([]Handle, 0, len(controllers))
	for _, vc := range controllers {
		vendor, device, err := pciid.ParsePNPDeviceID(vc.PNPDeviceID)
		if err != nil {
			logger.Warn("skipping adapter without pci identity", "name", vc.Name, "err", err)
			continue
		}
		handles = append(handles, Handle{
			Index:         len(handles),
			BusAddress:    vc.PNPDeviceID,
			VendorID:      vendor,
			DeviceID:      device,
			Name:          vc.Name,
			VRAMBytes:     vc.AdapterRAM,
			DriverVersion: vc.DriverVersion,
		})
	}

	return handles, nil
}
