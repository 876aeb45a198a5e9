package gpuinfo

// Rank records the selector inputs for one candidate device.
type Rank struct {
	Index     int
	Discrete  bool
	Telemetry bool
}

// Selection is the selector outcome: the chosen device, its position in
// enumeration order, and the ranking inputs of every candidate. It is
// recomputed on demand and never persisted.
type Selection struct {
	Device *Device
	Index  int
	Ranks  []Rank
}

// Select ranks devices under a deterministic total order: discrete above
// integrated, telemetry-capable above not, and earlier enumeration wins
// every remaining tie. The input slice is the enumeration order and is not
// modified. An empty input fails with ErrNoDeviceFound.
func Select(devices []*Device) (*Selection, error) {
	ranks := make([]Rank, 0, len(devices))
	best := -1
	for i, d := range devices {
		if d == nil {
			continue
		}
		ranks = append(ranks, Rank{
			Index:     i,
			Discrete:  d.Discrete,
			Telemetry: d.Telemetry != nil,
		})
		if best == -1 || outranks(d, devices[best]) {
			best = i
		}
	}
	if best == -1 {
		return nil, ErrNoDeviceFound
	}
	return &Selection{Device: devices[best], Index: best, Ranks: ranks}, nil
}

// outranks reports whether a strictly beats b. Returning false on a full
// tie keeps the earlier-enumerated device in front.
func outranks(a, b *Device) bool {
	if a.Discrete != b.Discrete {
		return a.Discrete
	}
	aCapable := a.Telemetry != nil
	bCapable := b.Telemetry != nil
	if aCapable != bCapable {
		return aCapable
	}
	return false
}
