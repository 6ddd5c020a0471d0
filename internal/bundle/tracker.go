package bundle

// ChangeTracker observes whether the graph was grown during its lifetime.
// The flag starts false, is set true by the first mutation that grows the
// graph, and stays true for the remainder of the scope.
//
// Trackers are scope-bound: acquire one with Graph.Track, release it with
// Close (typically via defer, so a panic inside the observed region never
// leaves a stale observer). Multiple trackers may be active at once; a
// mutation sets the flag on every active tracker, not just the innermost.
type ChangeTracker struct {
	g       *Graph
	updated bool
	closed  bool
}

// Track opens a new change-tracking scope.
func (g *Graph) Track() *ChangeTracker {
	t := &ChangeTracker{g: g}
	g.trackers = append(g.trackers, t)
	return t
}

// Updated reports whether any graph-growing mutation occurred while the
// tracker was active. The value remains readable after Close.
func (t *ChangeTracker) Updated() bool {
	return t.updated
}

// Close deregisters the tracker. Calling Close more than once is a no-op.
func (t *ChangeTracker) Close() {
	if t.closed {
		return
	}
	t.closed = true
	active := t.g.trackers[:0]
	for _, other := range t.g.trackers {
		if other != t {
			active = append(active, other)
		}
	}
	t.g.trackers = active
}

// markUpdated sets the updated flag on every active tracker.
func (g *Graph) markUpdated() {
	for _, t := range g.trackers {
		t.updated = true
	}
}
