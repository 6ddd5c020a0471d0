package node

import "strings"

// Kind identifies what sort of unit a graph node represents.
type Kind int

const (
	// KindModule is a plain source module.
	KindModule Kind = iota
	// KindPackage is a package with an initializer module.
	KindPackage
	// KindNamespacePackage is a package without an initializer module.
	KindNamespacePackage
	// KindScript is an entry-point script, identified by its path.
	KindScript
	// KindExtensionModule is a natively-compiled module.
	KindExtensionModule
	// KindBuiltinModule is a module compiled into the interpreter itself.
	KindBuiltinModule
	// KindFrozenModule is a module frozen into the interpreter binary.
	KindFrozenModule
	// KindAlias is an alternate name for another node.
	KindAlias
	// KindMissingModule is a name that was imported but could not be resolved.
	KindMissingModule
	// KindExcludedModule is a unit deliberately kept out of the bundle.
	KindExcludedModule
	// KindDistribution is a named collection of units deployed as one library.
	KindDistribution
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindPackage:
		return "package"
	case KindNamespacePackage:
		return "namespace_package"
	case KindScript:
		return "script"
	case KindExtensionModule:
		return "extension_module"
	case KindBuiltinModule:
		return "builtin_module"
	case KindFrozenModule:
		return "frozen_module"
	case KindAlias:
		return "alias"
	case KindMissingModule:
		return "missing_module"
	case KindExcludedModule:
		return "excluded_module"
	case KindDistribution:
		return "distribution"
	default:
		return "unknown"
	}
}

// Node is a single unit in the dependency graph. The graph engine owns node
// identity and lifetime; bundle-specific metadata lives in side-tables owned
// by the bundle core, keyed by Identifier.
type Node struct {
	// Identifier is the unique logical name of the unit: a dotted name for
	// modules and packages, a filesystem path for scripts.
	Identifier string

	// Kind tags which variant of unit this node represents.
	Kind Kind

	// Path is the on-disk source location. Empty for synthetic kinds
	// (builtin, frozen, missing, excluded, alias, distribution).
	Path string

	// UsesFileLocation records that the unit was observed to rely on
	// locating its own on-disk source, which makes it unsafe to load
	// from inside a compressed archive.
	UsesFileLocation bool

	// Init is the initializer module of a package. It hangs off the
	// package node and is not itself part of the graph iteration.
	Init *Node

	// Dist carries the distribution payload for KindDistribution nodes.
	Dist *Distribution
}

// TopLevel reports whether the node's identifier names a top-level unit,
// i.e. one that is not nested inside a dotted package path.
func (n *Node) TopLevel() bool {
	return !strings.Contains(n.Identifier, ".")
}

// Distribution describes a named collection of units deployed together,
// such as an installed third-party library.
type Distribution struct {
	Name    string
	Version string
}

// Resource describes one extra file to copy alongside a node's code.
// Resources compare by value: two Resource values with the same fields
// describe the same file.
type Resource struct {
	// Source is the path of the file to copy.
	Source string
	// Dest is the placement of the file inside the bundle, relative to
	// the owning node's location.
	Dest string
}
