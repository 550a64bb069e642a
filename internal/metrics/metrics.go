package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Registry holds named counters, e.g. "reconcile.paid" or
// "webhook.unauthorized". Counters are created on first use.
type Registry struct {
	mu       sync.RWMutex
	counters map[string]*Counter
}

func NewRegistry() *Registry {
	return &Registry{counters: make(map[string]*Counter)}
}

func (r *Registry) Counter(name string) *Counter {
	r.mu.RLock()
	c, ok := r.counters[name]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok = r.counters[name]; ok {
		return c
	}
	c = &Counter{}
	r.counters[name] = c
	return c
}

func (r *Registry) Inc(name string) {
	r.Counter(name).Inc()
}

// Snapshot returns current values keyed by counter name.
func (r *Registry) Snapshot() map[string]uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]uint64, len(r.counters))
	for name, c := range r.counters {
		out[name] = c.Load()
	}
	return out
}

// ObserveDuration records one timed operation as two counters:
// "<name>.count" and "<name>.ms_total".
func (r *Registry) ObserveDuration(name string, d time.Duration) {
	r.Counter(name + ".count").Inc()
	if ms := d.Milliseconds(); ms > 0 {
		r.Counter(name + ".ms_total").Add(uint64(ms))
	}
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveInto records the elapsed time under name. Meant for defer.
func (t *Timer) ObserveInto(r *Registry, name string) {
	r.ObserveDuration(name, t.Duration())
}
