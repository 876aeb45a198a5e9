package gpuinfo

import "errors"

var (
	// ErrEnumeration reports that the OS adapter enumeration itself is
	// unusable. Nothing can be queried when it is returned.
	ErrEnumeration = errors.New("gpu enumeration failed")

	// ErrNoDeviceFound reports that zero GPU adapters exist system-wide.
	ErrNoDeviceFound = errors.New("no gpu device found")
)
