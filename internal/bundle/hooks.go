package bundle

import "bundlegraph/internal/node"

// Hook is a callback invoked once per node after graph construction has
// reached a fixpoint. Hooks may write further metadata but must not grow
// the graph; classification has already been primed when they run.
type Hook func(g *Graph, n *node.Node)

// AddPostProcessingHook registers a hook. Hooks run in registration order.
func (g *Graph) AddPostProcessingHook(hook Hook) {
	g.hooks = append(g.hooks, hook)
}

// RunPostProcessing invokes every registered hook on every node currently
// in the graph. For each node the hooks run in registration order.
func (g *Graph) RunPostProcessing() {
	for _, n := range g.eng.IterGraph() {
		for _, hook := range g.hooks {
			hook(g, n)
		}
	}
}
