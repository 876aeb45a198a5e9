//go:build !linux && !windows

package adapter

import (
	"fmt"
	"runtime"
)

// Enumerate has no adapter source on this platform.
func Enumerate(opts Options) ([]Handle, error) {
	_ = opts
	return nil, fmt.Errorf("gpu enumeration is not supported on %s", runtime.GOOS)
}
