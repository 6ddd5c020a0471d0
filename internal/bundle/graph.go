package bundle

import (
	"fmt"

	"bundlegraph/internal/depgraph"
	"bundlegraph/internal/node"
)

// PayloadLoader resolves a logical bootstrap-payload reference to its
// source text. Satisfied by scriptlet.Library.
type PayloadLoader interface {
	Load(ref string) (string, error)
}

// Graph wraps the depgraph engine with the bundle-specific mutation,
// metadata and classification layers.
//
// All mutation methods are idempotent: repeated calls with identical
// arguments return the same node and do not signal a change after the call
// that first grew the graph.
type Graph struct {
	eng      *depgraph.Graph
	payloads PayloadLoader

	trackers []*ChangeTracker

	// Side-tables keyed by node identifier. The engine owns the nodes;
	// these maps are the only place bundle metadata lives.
	resources       map[string][]node.Resource
	bootstrap       map[string][]string
	ignoreResources map[string]bool
	expectedMissing map[string]bool
	fullPackage     map[string]bool
	zipSafety       map[string]bool

	hooks []Hook
}

// New creates a bundle graph on top of an engine. The payload loader may be
// nil when bootstrap payload references are never used.
func New(eng *depgraph.Graph, payloads PayloadLoader) *Graph {
	return &Graph{
		eng:             eng,
		payloads:        payloads,
		resources:       make(map[string][]node.Resource),
		bootstrap:       make(map[string][]string),
		ignoreResources: make(map[string]bool),
		expectedMissing: make(map[string]bool),
		fullPackage:     make(map[string]bool),
		zipSafety:       make(map[string]bool),
	}
}

// FindNode returns the node with the given identifier, or nil.
func (g *Graph) FindNode(identifier string) *node.Node {
	return g.eng.FindNode(identifier)
}

// IterGraph returns every node currently in the graph, in an order that is
// unspecified but stable within one pass.
func (g *Graph) IterGraph() []*node.Node {
	return g.eng.IterGraph()
}

// AddModule adds a standalone unit by name. If a node with that identifier
// already exists it is returned unchanged and no change is signaled.
func (g *Graph) AddModule(name string) *node.Node {
	if n := g.eng.FindNode(name); n != nil {
		return n
	}
	g.markUpdated()
	return g.eng.AddModule(name)
}

// AddScript adds an entry-point script by path. If a node with that path
// already exists it is returned unchanged and no change is signaled.
func (g *Graph) AddScript(path string) *node.Node {
	if n := g.eng.FindNode(path); n != nil {
		if n.Kind != node.KindScript {
			panic(fmt.Sprintf("bundle: node %q is %s, expected script", path, n.Kind))
		}
		return n
	}
	g.markUpdated()
	return g.eng.AddScript(path)
}

// ImportModule records that importer imports the named unit.
//
// When the target already exists the existing node is returned without
// signaling a change, whether or not an edge from the importer exists yet.
// A missing edge is deliberately not added in that case: recipes depend on
// this approximation, so the relation stays unrecorded.
func (g *Graph) ImportModule(importer *node.Node, name string) *node.Node {
	if n := g.eng.FindNode(name); n != nil {
		return n
	}
	g.markUpdated()
	return g.eng.ImportModule(importer, name)
}

// ImportPackage imports an entire package subtree from the importer.
//
// The first successful call marks the package as fully imported; later
// calls short-circuit on that flag and signal no change. A call made after
// the node appeared through some other path still re-imports and signals a
// change, which over-reports compared to a precise diff of the engine state.
func (g *Graph) ImportPackage(importer *node.Node, name string) *node.Node {
	if n := g.eng.FindNode(name); n != nil && g.fullPackage[n.Identifier] {
		return n
	}
	g.markUpdated()
	n := g.eng.ImportPackage(importer, name)
	g.fullPackage[n.Identifier] = true
	return n
}

// AddDistribution registers a distribution. Every call signals a change:
// there is no dedup check, so each call is treated as potentially new
// information.
func (g *Graph) AddDistribution(dist *node.Distribution) *node.Node {
	g.markUpdated()
	return g.eng.AddDistribution(dist)
}
