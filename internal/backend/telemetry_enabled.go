//go:build !notelemetry

package backend

// telemetryEnabled gates every Telemetry probe in this build.
const telemetryEnabled = true
