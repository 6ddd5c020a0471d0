// Package recipe drives graph construction to a fixpoint.
//
// A recipe is a named callable that adjusts the dependency graph for a
// known third-party dependency: forcing imports the tracer cannot see,
// marking units unsafe for archive loading, attaching resources or
// bootstrap scriptlets, tolerating expected-missing units. Recipes are
// registered in a Registry and configured per build by manifest recipe
// blocks, which supply typed options.
//
// Because one recipe's additions can make another recipe applicable,
// recipes run in repeated passes. Every mutation method on the bundle
// graph is idempotent, so re-running a recipe with identical effect is
// harmless and signals no change; the runner stops after the first full
// pass in which no recipe grew the graph.
package recipe
