package pciid

import (
	"strings"
	"sync"

	"github.com/jaypipes/pcidb"
)

var (
	pciOnce sync.Once
	pciDB   *pcidb.PCIDB
	pciErr  error
)

// ResolveName returns the pci.ids product name for a device, preferring an
// exact subsystem match when the database carries one. Empty when the
// database is unavailable or has no entry.
func ResolveName(vendorID, deviceID, subVendorID, subDeviceID uint16) string {
	db := loadDatabase()
	if db == nil {
		return ""
	}

	product, ok := db.Products[FormatID(vendorID)+FormatID(deviceID)]
	if !ok || product == nil {
		return ""
	}

	if subVendorID != 0 || subDeviceID != 0 {
		subVendor := FormatID(subVendorID)
		subDevice := FormatID(subDeviceID)
		for _, subsystem := range product.Subsystems {
			if subsystem == nil {
				continue
			}
			if strings.EqualFold(subsystem.VendorID, subVendor) && strings.EqualFold(subsystem.ID, subDevice) {
				if subsystem.Name != "" {
					return subsystem.Name
				}
			}
		}
	}

	return product.Name
}

// VendorName returns the pci.ids vendor name, empty when unknown.
func VendorName(vendorID uint16) string {
	db := loadDatabase()
	if db == nil {
		return ""
	}
	vendor, ok := db.Vendors[FormatID(vendorID)]
	if !ok || vendor == nil {
		return ""
	}
	return vendor.Name
}

// pci.ids is static data shipped with the host; loading it once per process
// does not cache any device state.
func loadDatabase() *pcidb.PCIDB {
	pciOnce.Do(func() {
		pciDB, pciErr = pcidb.New()
	})
	if pciErr != nil || pciDB == nil {
		return nil
	}
	return pciDB
}

// SplitChipMarketing separates pci.ids GPU names of the form
// "Navi 31 [Radeon RX 7900 XTX]" into the silicon family and the marketing
// model. Names without a bracketed part carry no family.
func SplitChipMarketing(name string) (family, model string) {
	trimmed := strings.TrimSpace(name)
	open := strings.Index(trimmed, "[")
	if open <= 0 || !strings.HasSuffix(trimmed, "]") {
		return "", trimmed
	}
	family = strings.TrimSpace(trimmed[:open])
	model = strings.TrimSpace(strings.TrimSuffix(trimmed[open+1:], "]"))
	if model == "" {
		return "", trimmed
	}
	return family, model
}

// LooksGeneric reports whether a driver- or OS-reported adapter name carries
// no real product information and should yield to a pci.ids lookup.
func LooksGeneric(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return true
	}
	switch lower {
	case "amdgpu", "radeon", "nvidia", "nouveau", "i915", "xe", "unknown":
		return true
	}
	if strings.HasPrefix(lower, "pci device") {
		return true
	}
	if strings.HasPrefix(lower, "0x") {
		return true
	}
	return false
}
