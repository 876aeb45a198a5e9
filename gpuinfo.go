// Package gpuinfo answers two questions about the GPUs in a machine: what
// are they, and what are they doing right now. It resolves identity
// (vendor, model, family, device id) and live telemetry (VRAM, load,
// temperature) across NVIDIA, AMD and Intel adapters behind one
// vendor-neutral interface.
//
// Every query runs a full pass: enumerate the adapters the OS sees,
// dispatch each to its vendor backend, normalize the results and rank
// them. Nothing is cached between calls and no background state exists, so
// two concurrent callers never interfere and a value returned is a value
// just read. Telemetry fields the hardware or driver does not expose are
// nil, never zero.
package gpuinfo

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
)

// Option adjusts how a query runs.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	sysfsRoot   string
	debugfsRoot string
}

// WithLogger routes query diagnostics to the given logger. Queries run
// silently when none is set.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSysfsRoot points the Linux enumerator at an alternate sysfs mount.
// Ignored on other platforms.
func WithSysfsRoot(root string) Option {
	return func(o *options) { o.sysfsRoot = root }
}

// WithDebugfsRoot points the AMD debugfs fallback at an alternate debugfs
// mount. Ignored on other platforms.
func WithDebugfsRoot(root string) Option {
	return func(o *options) { o.debugfsRoot = root }
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// Devices enumerates every GPU adapter visible to the OS and normalizes
// each into a Device, in enumeration order. It fails with ErrEnumeration
// when the OS adapter scan itself is unusable and with ErrNoDeviceFound
// when the scan works but finds nothing; per-backend and per-field
// failures only shrink the returned data.
func Devices(opts ...Option) ([]*Device, error) {
	o := newOptions(opts)

	handles, err := adapter.Enumerate(adapter.Options{
		SysfsRoot:   o.sysfsRoot,
		DebugfsRoot: o.debugfsRoot,
		Logger:      o.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumeration, err)
	}
	if len(handles) == 0 {
		return nil, ErrNoDeviceFound
	}

	devices := make([]*Device, 0, len(handles))
	for _, h := range handles {
		devices = append(devices, newDevice(h, o.logger))
	}
	return devices, nil
}

// ActiveGPU resolves the single active GPU in one synchronous pass:
// enumerate, dispatch, normalize, select.
func ActiveGPU(opts ...Option) (*Device, error) {
	selection, err := ActiveSelection(opts...)
	if err != nil {
		return nil, err
	}
	return selection.Device, nil
}

// ActiveSelection resolves the active GPU and returns the full ranking
// outcome alongside it, for callers that want the selector's inputs.
func ActiveSelection(opts ...Option) (*Selection, error) {
	devices, err := Devices(opts...)
	if err != nil {
		return nil, err
	}
	return Select(devices)
}
