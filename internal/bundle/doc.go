// Package bundle decides how every unit discovered while tracing an
// application's dependencies is materialized inside a distributable bundle:
// packed into the compressed archive, copied as a loose file, or omitted,
// plus which auxiliary payload (copied resources, injected bootstrap
// scriptlets) travels with it.
//
// # Architecture
//
// The package wraps the depgraph engine and layers four concerns on top:
//
//   - Idempotent mutation: every graph-growing operation is safe to call
//     an unbounded number of times with identical arguments, returning the
//     same node, and signals active change trackers only on calls that
//     actually grow the graph. Recipes run repeatedly while the graph is
//     driven to a fixpoint, so this property is load-bearing.
//   - Metadata side-tables: resources, bootstrap scriptlets and boolean
//     flags are stored in maps owned by this package and keyed by node
//     identifier. The engine owns node identity; this package only attaches
//     data to it.
//   - Zip-safety resolution: a cached, monotonically-stable computation
//     of whether a unit may be loaded from inside the compressed archive.
//     Packages are all-or-nothing: one unsafe descendant makes the whole
//     subtree unsafe.
//   - Classification: a total, non-overlapping partition of all
//     reachable units into archive and loose placement sets.
//
// # Usage
//
// Recipes and the builder grow the graph through the mutation methods,
// observing progress with Track scopes:
//
//	tracker := g.Track()
//	defer tracker.Close()
//	runRecipes(g)
//	if !tracker.Updated() { /* fixpoint reached */ }
//
// Once construction reaches a fixpoint the builder queries IsZipSafe and
// CollectNodes. Querying mid-construction yields a valid but possibly
// incomplete answer, never an error; cached safety verdicts are not
// invalidated when the graph grows afterwards.
package bundle
