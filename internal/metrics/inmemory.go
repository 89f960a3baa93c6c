package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	PlaceCacheHits   uint64 `json:"place_cache_hits"`
	PlaceCacheMisses uint64 `json:"place_cache_misses"`
	PlacesCreated    uint64 `json:"places_created"`
	PlacesUpdated    uint64 `json:"places_updated"`
	PlacesDeleted    uint64 `json:"places_deleted"`
	Signups          uint64 `json:"signups"`
	LoginSuccesses   uint64 `json:"login_successes"`
	LoginFailures    uint64 `json:"login_failures"`
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	placeCacheHits   uint64
	placeCacheMisses uint64
	placesCreated    uint64
	placesUpdated    uint64
	placesDeleted    uint64
	signups          uint64
	loginSuccesses   uint64
	loginFailures    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		PlaceCacheHits:   atomic.LoadUint64(&m.placeCacheHits),
		PlaceCacheMisses: atomic.LoadUint64(&m.placeCacheMisses),
		PlacesCreated:    atomic.LoadUint64(&m.placesCreated),
		PlacesUpdated:    atomic.LoadUint64(&m.placesUpdated),
		PlacesDeleted:    atomic.LoadUint64(&m.placesDeleted),
		Signups:          atomic.LoadUint64(&m.signups),
		LoginSuccesses:   atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:    atomic.LoadUint64(&m.loginFailures),
	}
}

// IncPlaceCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncPlaceCacheHit() {
	atomic.AddUint64(&m.placeCacheHits, 1)
}

// IncPlaceCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncPlaceCacheMiss() {
	atomic.AddUint64(&m.placeCacheMisses, 1)
}

// IncPlaceCreated increments the place created counter.
func (m *InMemoryRecorder) IncPlaceCreated() {
	atomic.AddUint64(&m.placesCreated, 1)
}

// IncPlaceUpdated increments the place updated counter.
func (m *InMemoryRecorder) IncPlaceUpdated() {
	atomic.AddUint64(&m.placesUpdated, 1)
}

// IncPlaceDeleted increments the place deleted counter.
func (m *InMemoryRecorder) IncPlaceDeleted() {
	atomic.AddUint64(&m.placesDeleted, 1)
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	atomic.AddUint64(&m.signups, 1)
}

// IncLogin increments the login counters.
func (m *InMemoryRecorder) IncLogin(success bool) {
	if success {
		atomic.AddUint64(&m.loginSuccesses, 1)
	} else {
		atomic.AddUint64(&m.loginFailures, 1)
	}
}
