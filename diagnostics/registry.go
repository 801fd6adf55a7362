// Package diagnostics holds the optional metrics registry MorphBackend can
// be wired to: counters and gauges a host application reads to observe
// transition activity without the core depending on any particular metrics
// backend.
package diagnostics

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Well-known counter keys MorphBackend writes to when a Registry is
// attached. A host reads these back through Registry.Snapshot; the core
// never branches on their values.
const (
	CounterTicksRendered          = "morph.ticks_rendered"
	CounterTransitionsStarted     = "morph.transitions_started"
	CounterTransitionsCompleted   = "morph.transitions_completed"
	CounterTransitionsInterrupted = "morph.transitions_interrupted"
	CounterTickOvershoot          = "morph.tick_overshoot_count"
)

// gauge is a float64 that supports lock-free atomic reads and writes via bit
// reinterpretation. The zero value is ready to use and represents 0.0.
type gauge struct {
	bits atomic.Uint64
}

func (g *gauge) set(val float64) {
	g.bits.Store(math.Float64bits(val))
}

func (g *gauge) get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// CounterSample and GaugeSample are point-in-time readings taken by
// Registry.Snapshot, sorted by key so two snapshots of an unchanged registry
// compare equal.
type CounterSample struct {
	Key   string
	Value int64
}

type GaugeSample struct {
	Key   string
	Value float64
}

// Registry is the metrics facade MorphBackend optionally reports into. A
// nil *Registry is valid: every exported method guards on it so callers can
// pass an unconfigured registry without branching.
type Registry struct {
	mu     sync.RWMutex
	counts map[string]*atomic.Int64
	gauges map[string]*gauge
}

// NewRegistry creates an initialized, empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		counts: make(map[string]*atomic.Int64),
		gauges: make(map[string]*gauge),
	}
}

// counter returns the atomic.Int64 for key, allocating it the first time key
// is seen. The read-then-upgrade-to-write-lock shape keeps the common case
// (key already exists) lock-free beyond a single RLock.
func (r *Registry) counter(key string) *atomic.Int64 {
	r.mu.RLock()
	c, ok := r.counts[key]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok = r.counts[key]; ok {
		return c
	}
	c = new(atomic.Int64)
	r.counts[key] = c
	return c
}

func (r *Registry) gaugeFor(key string) *gauge {
	r.mu.RLock()
	g, ok := r.gauges[key]
	r.mu.RUnlock()
	if ok {
		return g
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok = r.gauges[key]; ok {
		return g
	}
	g = new(gauge)
	r.gauges[key] = g
	return g
}

// Incr increments the named integer counter by 1, creating it if absent.
func (r *Registry) Incr(key string) {
	if r == nil {
		return
	}
	r.counter(key).Add(1)
}

// Observe records val as the latest reading of the named float gauge.
func (r *Registry) Observe(key string, val float64) {
	if r == nil {
		return
	}
	r.gaugeFor(key).set(val)
}

// TotalCount returns the number of distinct counters and gauges registered.
func (r *Registry) TotalCount() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.counts) + len(r.gauges)
}

// Snapshot returns every counter and gauge currently tracked, each sorted by
// key, so a host can log or export the registry's state without holding a
// reference into its internal maps.
func (r *Registry) Snapshot() ([]CounterSample, []GaugeSample) {
	if r == nil {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	counters := make([]CounterSample, 0, len(r.counts))
	for k, c := range r.counts {
		counters = append(counters, CounterSample{Key: k, Value: c.Load()})
	}
	sort.Slice(counters, func(i, j int) bool { return counters[i].Key < counters[j].Key })

	gauges := make([]GaugeSample, 0, len(r.gauges))
	for k, g := range r.gauges {
		gauges = append(gauges, GaugeSample{Key: k, Value: g.get()})
	}
	sort.Slice(gauges, func(i, j int) bool { return gauges[i].Key < gauges[j].Key })

	return counters, gauges
}
