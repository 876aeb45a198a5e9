package backend

import "github.com/SpikeHD/gpuinfo/internal/adapter"

// Active returns the compiled-in backends in probe order: NVIDIA, then AMD,
// then Intel. Vendors built out leave their slot empty and are never
// probed.
func Active() []Backend {
	candidates := []Backend{newNVIDIA(), newAMD(), newIntel()}
	active := make([]Backend, 0, len(candidates))
	for _, b := range candidates {
		if b != nil {
			active = append(active, b)
		}
	}
	return active
}

// For returns the backend owning the handle. The vendor identifier check in
// Accepts keeps the claims disjoint, so probe order only decides how fast
// the owner is found.
func For(h adapter.Handle) (Backend, bool) {
	for _, b := range Active() {
		if b.Accepts(h) {
			return b, true
		}
	}
	return nil, false
}
