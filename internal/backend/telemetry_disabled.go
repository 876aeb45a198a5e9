//go:build notelemetry

package backend

// Identity-only build: every Telemetry probe reports ErrNoTelemetry.
const telemetryEnabled = false
