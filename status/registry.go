package status

import "sync/atomic"

// Registry is the central metrics facade
// The controller caches pointers during init; hot paths write directly to
// atomics. Well-known keys:
//
//	dog.directives    — SetAnimation directives issued
//	dog.barks         — bark overrides fired
//	dog.blinks        — idle blink overrides fired
//	dog.deaths        — death locks entered
//	dog.stale_timers  — override expiries discarded as stale
//	dog.clicks        — sprite clicks received
type Registry struct {
	Bools *MetricMap[atomic.Bool]
	Ints  *MetricMap[atomic.Int64]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools: NewMetricMap[atomic.Bool](),
		Ints:  NewMetricMap[atomic.Int64](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count()
}

// Snapshot returns the current integer counters keyed by name
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64, r.Ints.Count())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	return out
}
