// Package depgraph is the underlying dependency-graph engine: it owns node
// and edge storage, resolves unit names through a Resolver, and grows the
// graph by following declared imports.
//
// # Responsibilities
//
//   - Node identity: every unit has exactly one node, keyed by its
//     logical identifier (dotted name for modules/packages, path for scripts)
//   - Edge storage: directed importer → imported relations, each
//     optionally carrying a DependencyInfo value
//   - Import resolution: names are resolved through the injected
//     Resolver; unresolvable names become MissingModule nodes
//   - Recursive growth: adding a unit also follows its declared imports
//
// The engine knows nothing about bundling. Placement policy, zip-safety and
// per-node bundle metadata live in the bundle package, which wraps this one
// and attaches its own side-tables keyed by node identifier.
//
// # Concurrency
//
// The engine is single-threaded by design. Graph construction is driven by
// sequential recipe passes; callers that parallelize recipe execution must
// serialize access externally.
package depgraph
