package depgraph

import (
	"errors"
	"fmt"

	"bundlegraph/internal/node"
)

// ErrNoEdge is returned by EdgeData when no edge exists between two nodes.
// It is an expected absence, not a failure: callers probe for the relation
// and treat this error as "no relation yet".
var ErrNoEdge = errors.New("depgraph: no such edge")

// DependencyInfo is the optional payload carried by an edge.
type DependencyInfo struct {
	// Optional marks an import that the importer tolerates failing.
	Optional bool
}

// Graph stores the dependency graph: one node per unit identifier plus
// directed importer → imported edges.
type Graph struct {
	resolver Resolver

	nodes map[string]*node.Node
	// order preserves insertion order so IterGraph is stable within a pass.
	order []*node.Node

	edges map[string]map[string]*DependencyInfo
}

// New creates an empty graph backed by the given resolver.
func New(resolver Resolver) *Graph {
	return &Graph{
		resolver: resolver,
		nodes:    make(map[string]*node.Node),
		edges:    make(map[string]map[string]*DependencyInfo),
	}
}

// FindNode returns the node with the given identifier, or nil when the
// graph has no such node.
func (g *Graph) FindNode(identifier string) *node.Node {
	return g.nodes[identifier]
}

// IterGraph returns every node currently in the graph. The order is
// unspecified but stable: nodes appear in insertion order.
func (g *Graph) IterGraph() []*node.Node {
	out := make([]*node.Node, len(g.order))
	copy(out, g.order)
	return out
}

// NodeCount returns the number of nodes currently in the graph.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// AddModule resolves a unit name, creates its node and follows its declared
// imports. Callers are expected to check FindNode first; AddModule itself
// returns the existing node when called for a known identifier.
func (g *Graph) AddModule(name string) *node.Node {
	return g.ensureUnit(name)
}

// AddScript creates an entry-point script node identified by its path and
// follows the script's declared imports.
func (g *Graph) AddScript(path string) *node.Node {
	if n := g.nodes[path]; n != nil {
		return n
	}
	decl, ok := g.resolver.Lookup(path)
	if !ok {
		decl = &UnitDecl{Name: path, Kind: node.KindScript, Path: path}
	}
	n := g.insert(decl)
	g.followImports(n, decl)
	return n
}

// ImportModule records that importer imports the named unit, creating the
// target node (and its transitive imports) when it is not yet known.
func (g *Graph) ImportModule(importer *node.Node, name string) *node.Node {
	target := g.ensureUnit(name)
	g.addEdge(importer, target, &DependencyInfo{})
	return target
}

// ImportPackage imports the named package together with every unit nested
// under it, the way a loader handles a wildcard package import.
func (g *Graph) ImportPackage(importer *node.Node, name string) *node.Node {
	target := g.ensureUnit(name)
	g.addEdge(importer, target, &DependencyInfo{})
	for _, member := range g.resolver.Members(name) {
		sub := g.ensureUnit(member.Name)
		g.addEdge(target, sub, &DependencyInfo{})
	}
	return target
}

// AddDistribution registers a distribution node. The node is keyed by the
// distribution name and participates in graph iteration like any other node.
func (g *Graph) AddDistribution(dist *node.Distribution) *node.Node {
	if n := g.nodes[dist.Name]; n != nil {
		return n
	}
	n := &node.Node{
		Identifier: dist.Name,
		Kind:       node.KindDistribution,
		Dist:       dist,
	}
	g.nodes[n.Identifier] = n
	g.order = append(g.order, n)
	return n
}

// EdgeData returns the payload of the edge from one node to another, or
// ErrNoEdge when the nodes are not related.
func (g *Graph) EdgeData(from, to *node.Node) (*DependencyInfo, error) {
	info, ok := g.edges[from.Identifier][to.Identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrNoEdge, from.Identifier, to.Identifier)
	}
	return info, nil
}

// AddDependenciesForSource scans a source snippet for import statements and
// pulls the named units into the graph. Used when an injected bootstrap
// scriptlet introduces dependencies of its own.
func (g *Graph) AddDependenciesForSource(source string) {
	for _, name := range g.resolver.ScanSource(source) {
		g.ensureUnit(name)
	}
}

// ensureUnit returns the node for name, creating it (and following its
// declared imports) when it does not exist yet. Unknown names become
// MissingModule nodes.
func (g *Graph) ensureUnit(name string) *node.Node {
	if n := g.nodes[name]; n != nil {
		return n
	}
	decl, ok := g.resolver.Lookup(name)
	if !ok {
		decl = &UnitDecl{Name: name, Kind: node.KindMissingModule}
	}
	n := g.insert(decl)
	g.followImports(n, decl)
	return n
}

// insert materializes a node from its declaration. The node is registered
// before imports are followed so that import cycles terminate.
func (g *Graph) insert(decl *UnitDecl) *node.Node {
	n := &node.Node{
		Identifier:       decl.Name,
		Kind:             decl.Kind,
		Path:             decl.Path,
		UsesFileLocation: decl.UsesFileLocation,
	}
	if decl.Kind == node.KindPackage {
		n.Init = &node.Node{
			Identifier:       decl.Name + ".__init__",
			Kind:             node.KindModule,
			Path:             decl.Path,
			UsesFileLocation: decl.InitUsesFileLocation,
		}
	}
	g.nodes[n.Identifier] = n
	g.order = append(g.order, n)
	return n
}

// followImports creates nodes and edges for a unit's declared imports.
func (g *Graph) followImports(n *node.Node, decl *UnitDecl) {
	for _, imp := range decl.Imports {
		target := g.ensureUnit(imp)
		g.addEdge(n, target, &DependencyInfo{})
	}
}

// addEdge records a directed importer → imported relation. Re-adding an
// existing edge keeps the original payload. Self-edges are ignored.
func (g *Graph) addEdge(from, to *node.Node, info *DependencyInfo) {
	if from == nil || from == to {
		return
	}
	targets, ok := g.edges[from.Identifier]
	if !ok {
		targets = make(map[string]*DependencyInfo)
		g.edges[from.Identifier] = targets
	}
	if _, exists := targets[to.Identifier]; !exists {
		targets[to.Identifier] = info
	}
}
