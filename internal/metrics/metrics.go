// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Place read path
	IncPlaceCacheHit()
	IncPlaceCacheMiss()

	// Place lifecycle
	IncPlaceCreated()
	IncPlaceUpdated()
	IncPlaceDeleted()

	// Identity flows
	IncSignup()
	IncLogin(success bool)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
