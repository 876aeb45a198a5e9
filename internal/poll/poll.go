// Package poll runs the exporter's periodic query loop: every interval it
// takes one fresh pass through the library facade, caches the latest
// snapshot and fans it out to subscribers.
//
// The library itself never caches; the poller is an ordinary caller that
// remembers the last answer for its HTTP and WebSocket clients.
package poll

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SpikeHD/gpuinfo"
)

// QueryFunc takes one fresh pass over the machine's GPUs.
type QueryFunc func() ([]*gpuinfo.Device, error)

// Snapshot is one polled view of the machine's GPUs.
type Snapshot struct {
	Timestamp   time.Time
	Devices     []*gpuinfo.Device
	ActiveIndex int // index into Devices, -1 when nothing was selectable
	Ranks       []gpuinfo.Rank
	Err         string // terminal query error for this tick, empty when ok
}

// Active returns the selected device, or nil when the tick found none.
func (s Snapshot) Active() *gpuinfo.Device {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Devices) {
		return nil
	}
	return s.Devices[s.ActiveIndex]
}

// Poller owns the query loop, the latest-snapshot cache and the subscriber
// fan-out.
type Poller struct {
	interval time.Duration
	query    QueryFunc
	logger   *slog.Logger

	mu          sync.RWMutex
	latest      *Snapshot
	subscribers map[*subscriber]struct{}
	closed      bool
}

// New builds a Poller. The query function runs once per interval.
func New(interval time.Duration, query QueryFunc, logger *slog.Logger) (*Poller, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be > 0")
	}
	if query == nil {
		return nil, fmt.Errorf("query function is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		interval:    interval,
		query:       query,
		logger:      logger.With("component", "poller"),
		subscribers: make(map[*subscriber]struct{}),
	}, nil
}

// Run polls until the context is canceled, then closes all subscriptions.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started", "interval", p.interval)

	// Initial snapshot to prime the cache.
	p.store(p.take())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping", "reason", ctx.Err())
			p.shutdown()
			return nil
		case <-ticker.C:
			p.store(p.take())
		}
	}
}

func (p *Poller) take() Snapshot {
	snap := Snapshot{Timestamp: time.Now().UTC(), ActiveIndex: -1}

	devices, err := p.query()
	if err != nil {
		p.logger.Warn("gpu query failed", "err", err)
		snap.Err = err.Error()
		return snap
	}
	snap.Devices = devices

	selection, err := gpuinfo.Select(devices)
	if err != nil {
		snap.Err = err.Error()
		return snap
	}
	snap.ActiveIndex = selection.Index
	snap.Ranks = selection.Ranks
	return snap
}

// Latest returns the most recent snapshot.
func (p *Poller) Latest() (Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.latest == nil {
		return Snapshot{}, false
	}
	return *p.latest, true
}

// Ready reports whether at least one snapshot has been taken.
func (p *Poller) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest != nil
}

// Healthy reports whether the most recent snapshot completed without a
// terminal error.
func (p *Poller) Healthy() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest != nil && p.latest.Err == ""
}

// Subscribe registers a listener for snapshot updates. The latest snapshot,
// when one exists, is delivered immediately.
func (p *Poller) Subscribe() (<-chan Snapshot, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := newSubscriber()
	if p.closed {
		sub.close()
		return sub.channel(), func() {}
	}
	p.subscribers[sub] = struct{}{}
	if p.latest != nil {
		sub.send(*p.latest)
	}
	return sub.channel(), func() { p.remove(sub) }
}

func (p *Poller) store(snap Snapshot) {
	p.mu.Lock()
	p.latest = &snap
	targets := make([]*subscriber, 0, len(p.subscribers))
	for sub := range p.subscribers {
		targets = append(targets, sub)
	}
	p.mu.Unlock()

	for _, sub := range targets {
		sub.send(snap)
	}
}

func (p *Poller) remove(sub *subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.subscribers, sub)
	sub.close()
}

func (p *Poller) shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for sub := range p.subscribers {
		sub.close()
	}
	clear(p.subscribers)
}

type subscriber struct {
	ch     chan Snapshot
	mu     sync.Mutex
	closed bool
}

func newSubscriber() *subscriber {
	return &subscriber{
		ch: make(chan Snapshot, 1),
	}
}

func (s *subscriber) channel() <-chan Snapshot {
	return s.ch
}

func (s *subscriber) send(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- snap:
		return
	default:
		// Drop oldest to make room for the new snapshot.
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- snap:
		default:
		}
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	close(s.ch)
	s.closed = true
}
