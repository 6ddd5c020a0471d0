// Package config defines the format-agnostic bundle manifest model and the
// Loader interface implemented by the HCL and TOML front-ends.
//
// The manifest declares everything a build needs: the entry-point scripts,
// the universe of known units with their import facts, distributions, and
// the recipe passes (with typed options) that adjust the graph for known
// third-party dependencies. Loaders translate their native syntax into this
// model; nothing downstream of the loader knows which format was used.
package config
