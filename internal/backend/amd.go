//go:build !noamd

package backend

import (
	"log/slog"
	"strings"

	"github.com/SpikeHD/gpuinfo/internal/adapter"
	"github.com/SpikeHD/gpuinfo/internal/pciid"
)

type amdBackend struct{}

func newAMD() Backend { return amdBackend{} }

func (amdBackend) Vendor() string { return VendorAMD }

func (amdBackend) Accepts(h adapter.Handle) bool {
	return h.VendorID == pciid.VendorAMD
}

func (amdBackend) Identify(h adapter.Handle) Identity {
	id := identityFromPCI(h, VendorAMD)
	id.Discrete = !amdIntegrated(id.Family, id.Model, h.Name)
	return id
}

func (amdBackend) Telemetry(h adapter.Handle, logger *slog.Logger) (Sample, error) {
	if !telemetryEnabled {
		return Sample{}, ErrNoTelemetry
	}
	return amdSample(h, logger)
}

// apuMarkers are the chip codenames AMD uses for processor graphics.
var apuMarkers = []string{
	"raven", "picasso", "renoir", "cezanne", "barcelo", "lucienne",
	"rembrandt", "raphael", "phoenix", "mendocino", "van gogh", "strix",
	"hawk point", "granite ridge", "kabini", "temash", "kaveri", "carrizo",
	"stoney", "wrestler",
}

// amdIntegrated classifies APU dies by codename; the marketing-name check
// catches the plain "Radeon Graphics" label APUs report on hosts without a
// PCI database.
func amdIntegrated(family, model, reported string) bool {
	for _, candidate := range []string{family, model, reported} {
		lower := strings.ToLower(candidate)
		if lower == "" {
			continue
		}
		for _, marker := range apuMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
		if strings.HasSuffix(strings.ReplaceAll(lower, "(tm)", ""), "radeon graphics") {
			return true
		}
	}
	return false
}
