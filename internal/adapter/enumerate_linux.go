//go:build linux

package adapter

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/SpikeHD/gpuinfo/internal/pciid"
)

// Enumerate lists DRM card adapters under the sysfs root. An unreadable DRM
// class directory fails the whole pass; unreadable individual cards are
// skipped with a warning.
func Enumerate(opts Options) ([]Handle, error) {
	logger := opts.logger()

	sysfsRoot := opts.SysfsRoot
	if sysfsRoot == "" {
		sysfsRoot = defaultSysfsRoot
	}
	debugfsRoot := opts.DebugfsRoot
	if debugfsRoot == "" {
		debugfsRoot = defaultDebugfsRoot
	}

	sysRoot, err := os.OpenRoot(sysfsRoot)
	if err != nil {
		return nil, fmt.Errorf("open sysfs root: %w", err)
	}
	defer sysRoot.Close()

	entries, err := fs.ReadDir(sysRoot.FS(), drmClassPath)
	if err != nil {
		return nil, fmt.Errorf("read drm class dir: %w", err)
	}

	var handles []Handle
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "card") {
			continue
		}
		if strings.ContainsRune(name, '-') {
			continue
		}
		if !allDigits(name[len("card"):]) {
			continue
		}
		if !entry.IsDir() && entry.Type()&os.ModeSymlink == 0 {
			continue
		}

		cardRoot, err := sysRoot.OpenRoot(filepath.Join(drmClassPath, name))
		if err != nil {
			logger.Warn("failed to open card root", "card", name, "err", err)
			continue
		}

		handle, err := loadCardHandle(name, cardRoot)
		if err := cardRoot.Close(); err != nil {
			logger.Debug("failed to close card root", "card", name, "err", err)
		}
		if err != nil {
			logger.Warn("failed to read card", "card", name, "err", err)
			continue
		}

		handle.Index = len(handles)
		handle.SysfsRoot = sysfsRoot
		handle.DebugfsRoot = debugfsRoot
		handles = append(handles, handle)
	}

	return handles, nil
}

func loadCardHandle(card string, cardRoot *os.Root) (Handle, error) {
	deviceRoot, err := cardRoot.OpenRoot("device")
	if err != nil {
		return Handle{}, fmt.Errorf("open device root: %w", err)
	}
	defer deviceRoot.Close()

	handle := Handle{Card: card}

	var pciID, subsysID string
	if data, err := deviceRoot.ReadFile("uevent"); err == nil {
		text := string(data)
		handle.BusAddress = parseKeyValue(text, "PCI_SLOT_NAME")
		handle.Driver = parseKeyValue(text, "DRIVER")
		pciID = parseKeyValue(text, "PCI_ID")
		subsysID = parseKeyValue(text, "PCI_SUBSYS_ID")
	}

	if pciID != "" {
		vendor, device, err := pciid.ParsePair(pciID)
		if err != nil {
			return Handle{}, fmt.Errorf("uevent PCI_ID: %w", err)
		}
		handle.VendorID = vendor
		handle.DeviceID = device
	} else {
		vendorRaw, vendorErr := readTrim(deviceRoot, "vendor")
		deviceRaw, deviceErr := readTrim(deviceRoot, "device")
		if vendorErr != nil || deviceErr != nil {
			return Handle{}, fmt.Errorf("no pci identifiers for %s", card)
		}
		vendor, err := pciid.ParseID(vendorRaw)
		if err != nil {
			return Handle{}, fmt.Errorf("vendor file: %w", err)
		}
		device, err := pciid.ParseID(deviceRaw)
		if err != nil {
			return Handle{}, fmt.Errorf("device file: %w", err)
		}
		handle.VendorID = vendor
		handle.DeviceID = device
	}

	if subsysID != "" {
		if subVendor, subDevice, err := pciid.ParsePair(subsysID); err == nil {
			handle.SubVendorID = subVendor
			handle.SubDeviceID = subDevice
		}
	} else {
		if raw, err := readTrim(deviceRoot, "subsystem_vendor"); err == nil {
			if id, err := pciid.ParseID(raw); err == nil {
				handle.SubVendorID = id
			}
		}
		if raw, err := readTrim(deviceRoot, "subsystem_device"); err == nil {
			if id, err := pciid.ParseID(raw); err == nil {
				handle.SubDeviceID = id
			}
		}
	}

	handle.RenderNode = findRenderNode(deviceRoot)

	return handle, nil
}

func findRenderNode(deviceRoot *os.Root) string {
	drmRoot, err := deviceRoot.OpenRoot("drm")
	if err != nil {
		return ""
	}
	defer drmRoot.Close()

	entries, err := fs.ReadDir(drmRoot.FS(), ".")
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "renderD") {
			return filepath.Join("/dev/dri", name)
		}
	}
	return ""
}

func parseKeyValue(data, key string) string {
	prefix := key + "="
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}

func readTrim(root *os.Root, name string) (string, error) {
	data, err := root.ReadFile(name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func allDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
