// Package pciid parses and resolves PCI identifiers for GPU adapters.
package pciid

import (
	"fmt"
	"strconv"
	"strings"
)

// PCI vendor identifiers of the GPU vendors this module dispatches on.
const (
	VendorNVIDIA uint16 = 0x10de
	VendorAMD    uint16 = 0x1002
	VendorIntel  uint16 = 0x8086
)

// ParseID parses a single PCI vendor or device identifier such as "0x73df",
// "73DF" or "1002".
func ParseID(raw string) (uint16, error) {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "0x")
	value = strings.TrimPrefix(value, "0X")
	if value == "" {
		return 0, fmt.Errorf("empty pci id")
	}
	parsed, err := strconv.ParseUint(value, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("parse pci id %q: %w", raw, err)
	}
	return uint16(parsed), nil
}

// FormatID renders an identifier as four lowercase hex digits, the form used
// by pci.ids and sysfs.
func FormatID(id uint16) string {
	return fmt.Sprintf("%04x", id)
}

// ParsePair splits a "vendor:device" pair as found in uevent PCI_ID and
// PCI_SUBSYS_ID lines.
func ParsePair(raw string) (vendor, device uint16, err error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed pci id pair %q", raw)
	}
	vendor, err = ParseID(parts[0])
	if err != nil {
		return 0, 0, err
	}
	device, err = ParseID(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return vendor, device, nil
}

// ParsePNPDeviceID extracts the vendor and device identifiers from a Windows
// PNP device path such as "PCI\VEN_10DE&DEV_2684&SUBSYS_...".
func ParsePNPDeviceID(raw string) (vendor, device uint16, err error) {
	upper := strings.ToUpper(raw)
	vendor, err = pnpField(upper, "VEN_")
	if err != nil {
		return 0, 0, fmt.Errorf("pnp id %q: %w", raw, err)
	}
	device, err = pnpField(upper, "DEV_")
	if err != nil {
		return 0, 0, fmt.Errorf("pnp id %q: %w", raw, err)
	}
	return vendor, device, nil
}

func pnpField(id, marker string) (uint16, error) {
	idx := strings.Index(id, marker)
	if idx < 0 {
		return 0, fmt.Errorf("missing %s field", strings.TrimSuffix(marker, "_"))
	}
	rest := id[idx+len(marker):]
	if end := strings.IndexAny(rest, `&\`); end >= 0 {
		rest = rest[:end]
	}
	return ParseID(rest)
}

// NormalizeBusAddress canonicalises a PCI bus address to the lowercase
// "0000:0a:00.0" form used by sysfs PCI_SLOT_NAME. NVML and some Windows
// APIs report the domain with eight digits.
func NormalizeBusAddress(raw string) string {
	addr := strings.ToLower(strings.TrimSpace(raw))
	parts := strings.Split(addr, ":")
	if len(parts) == 3 && len(parts[0]) > 4 {
		parts[0] = parts[0][len(parts[0])-4:]
		addr = strings.Join(parts, ":")
	}
	return addr
}
