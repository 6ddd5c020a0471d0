package bundle

import (
	"fmt"
	"strings"

	"bundlegraph/internal/node"
)

// MarkZipUnsafe records that a unit cannot be loaded from inside the
// compressed archive. An explicit mark always wins over the computed
// verdict and is never cleared.
func (g *Graph) MarkZipUnsafe(n *node.Node) {
	g.zipSafety[n.Identifier] = false
}

// IsZipSafe reports whether a unit may be loaded while physically stored
// inside the compressed archive.
//
// Packages are all-or-nothing: loaders cannot selectively extract part of a
// package, so a package is safe only if every node in its subtree is safe.
// Verdicts are cached per identifier and are monotonically stable: once
// computed they are never invalidated, even if the graph grows afterwards.
// Callers are expected to drive construction to a fixpoint before trusting
// the answer.
func (g *Graph) IsZipSafe(n *node.Node) bool {
	switch n.Kind {
	case node.KindModule, node.KindPackage, node.KindNamespacePackage:
	default:
		// Other kinds are either not materialized as files at all or are
		// handled by placement policy, so they are trivially safe here.
		return true
	}

	if verdict, ok := g.zipSafety[n.Identifier]; ok {
		return verdict
	}

	// A module that locates its own on-disk source cannot run from the
	// archive. Not cached: an explicit mark may still be recorded later.
	if n.Kind == node.KindModule && n.UsesFileLocation {
		return false
	}

	if n.Kind == node.KindPackage && g.initUnsafe(n) {
		g.zipSafety[n.Identifier] = false
		return false
	}

	base := g.safetyRoot(n)
	if base == nil {
		// A bare top-level module with no containing package.
		return true
	}

	if verdict, ok := g.zipSafety[base.Identifier]; ok {
		return verdict
	}
	if base != n && base.Kind == node.KindPackage && g.initUnsafe(base) {
		g.zipSafety[base.Identifier] = false
		return false
	}

	prefix := base.Identifier + "."
	for _, sub := range g.eng.IterGraph() {
		if !strings.HasPrefix(sub.Identifier, prefix) {
			continue
		}
		if verdict, ok := g.zipSafety[sub.Identifier]; ok && !verdict {
			g.zipSafety[base.Identifier] = false
			return false
		}
	}

	g.zipSafety[base.Identifier] = true
	return true
}

// initUnsafe reports whether a package's initializer module makes the
// package unsafe: either the initializer carries an explicit unsafe mark,
// or it is a module observed to locate its own source.
func (g *Graph) initUnsafe(pkg *node.Node) bool {
	init := pkg.Init
	if init == nil {
		return false
	}
	if verdict, ok := g.zipSafety[init.Identifier]; ok && !verdict {
		return true
	}
	return init.Kind == node.KindModule && init.UsesFileLocation
}

// safetyRoot locates the package whose subtree governs the node's safety:
// the outermost containing package of a dotted identifier, or the node
// itself when it is a top-level package. Nil means the node stands alone
// and defaults to safe.
//
// A dotted identifier whose prefixes name no node at all is an internal
// consistency violation: the containing package must already be part of
// the graph.
func (g *Graph) safetyRoot(n *node.Node) *node.Node {
	if !strings.Contains(n.Identifier, ".") {
		if n.Kind == node.KindPackage || n.Kind == node.KindNamespacePackage {
			return n
		}
		return nil
	}

	sawPrefixNode := false
	for _, prefix := range identifierPrefixes(n.Identifier) {
		p := g.eng.FindNode(prefix)
		if p == nil {
			continue
		}
		sawPrefixNode = true
		if p.Kind == node.KindPackage || p.Kind == node.KindNamespacePackage {
			return p
		}
	}
	if n.Kind == node.KindPackage || n.Kind == node.KindNamespacePackage {
		return n
	}
	if !sawPrefixNode {
		panic(fmt.Sprintf("bundle: no containing package in graph for %q", n.Identifier))
	}
	return nil
}

// identifierPrefixes returns the proper dotted prefixes of an identifier,
// outermost first: "a.b.c" yields "a", "a.b".
func identifierPrefixes(identifier string) []string {
	var prefixes []string
	for i, r := range identifier {
		if r == '.' {
			prefixes = append(prefixes, identifier[:i])
		}
	}
	return prefixes
}
