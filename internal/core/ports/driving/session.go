package driving

// QuerySession owns the query lifecycle: it allocates generations,
// cancels superseded ones, and serializes delivery of ranked results
// to the presentation sink.
type QuerySession interface {
	// Submit starts a new generation for the query, cancelling any
	// in-flight one, and returns the new generation number. It does
	// not block on provider work.
	Submit(query string) uint64

	// Generation returns the current generation number.
	Generation() uint64

	// Cancel cancels the in-flight generation, if any.
	Cancel()

	// Close cancels any in-flight generation and releases the session.
	Close()
}
