package bundle

import (
	"fmt"
	"strings"

	"bundlegraph/internal/node"
)

// bootstrapSeparator joins accumulated bootstrap scriptlets into the single
// startup preamble emitted for a node.
const bootstrapSeparator = "\n"

// AddResources records extra files to copy into the bundle alongside a
// node's code. Resources compare by value and each distinct resource is
// recorded at most once, so recipes may re-declare the same resource on
// every pass.
func (g *Graph) AddResources(n *node.Node, resources []node.Resource) {
	existing := g.resources[n.Identifier]
	for _, rsrc := range resources {
		if containsResource(existing, rsrc) {
			continue
		}
		existing = append(existing, rsrc)
	}
	g.resources[n.Identifier] = existing
}

// Resources returns the resources accumulated for a node, in the order they
// were first added. The result is empty for nodes without resources.
func (g *Graph) Resources(n *node.Node) []node.Resource {
	return g.resources[n.Identifier]
}

// SetIgnoreResources marks a node whose own package-declared resource files
// must not be copied into the bundle.
func (g *Graph) SetIgnoreResources(n *node.Node) {
	g.ignoreResources[n.Identifier] = true
}

// IgnoreResources reports whether the node's package-declared resource
// files are excluded from the bundle. Default false.
func (g *Graph) IgnoreResources(n *node.Node) bool {
	return g.ignoreResources[n.Identifier]
}

// SetExpectedMissing marks a missing unit as an intentionally-tolerated
// absence rather than a build problem.
func (g *Graph) SetExpectedMissing(n *node.Node) {
	g.expectedMissing[n.Identifier] = true
}

// IsExpectedMissing reports whether the node was marked expected-missing.
// Default false.
func (g *Graph) IsExpectedMissing(n *node.Node) bool {
	return g.expectedMissing[n.Identifier]
}

// AddBootstrapScriptlet attaches startup code to a node. Each distinct
// source text is recorded at most once per node and insertion order is
// preserved. The scriptlet may import units of its own, so its source is
// handed to the engine to be scanned like any other reachable source.
func (g *Graph) AddBootstrapScriptlet(n *node.Node, source string) {
	for _, existing := range g.bootstrap[n.Identifier] {
		if existing == source {
			return
		}
	}
	g.bootstrap[n.Identifier] = append(g.bootstrap[n.Identifier], source)

	before := g.eng.NodeCount()
	g.eng.AddDependenciesForSource(source)
	if g.eng.NodeCount() > before {
		g.markUpdated()
	}
}

// AddBootstrap resolves a logical payload reference such as
// "bootstrap:setup_path" and attaches the resulting scriptlet to the node.
// A failure to resolve the payload is fatal to the build unless the calling
// recipe recovers it; the error is propagated, never swallowed here.
func (g *Graph) AddBootstrap(n *node.Node, ref string) error {
	if g.payloads == nil {
		return fmt.Errorf("bundle: no payload loader configured, cannot resolve %q", ref)
	}
	source, err := g.payloads.Load(ref)
	if err != nil {
		return fmt.Errorf("bundle: resolving bootstrap payload %q: %w", ref, err)
	}
	g.AddBootstrapScriptlet(n, source)
	return nil
}

// Bootstrap returns the node's accumulated bootstrap scriptlets joined by
// the separator, and false when the node has none.
func (g *Graph) Bootstrap(n *node.Node) (string, bool) {
	scriptlets := g.bootstrap[n.Identifier]
	if len(scriptlets) == 0 {
		return "", false
	}
	return strings.Join(scriptlets, bootstrapSeparator), true
}

func containsResource(list []node.Resource, rsrc node.Resource) bool {
	for _, existing := range list {
		if existing == rsrc {
			return true
		}
	}
	return false
}
