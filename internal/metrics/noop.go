package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncPlaceCacheHit is a no-op.
func (n *NoopRecorder) IncPlaceCacheHit() {}

// IncPlaceCacheMiss is a no-op.
func (n *NoopRecorder) IncPlaceCacheMiss() {}

// IncPlaceCreated is a no-op.
func (n *NoopRecorder) IncPlaceCreated() {}

// IncPlaceUpdated is a no-op.
func (n *NoopRecorder) IncPlaceUpdated() {}

// IncPlaceDeleted is a no-op.
func (n *NoopRecorder) IncPlaceDeleted() {}

// IncSignup is a no-op.
func (n *NoopRecorder) IncSignup() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(success bool) {}
