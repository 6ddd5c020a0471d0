package bundle

import "bundlegraph/internal/node"

// CollectNodes partitions every node currently in the graph into the set
// packed into the compressed archive and the set copied as loose files.
//
// Kinds that are not materialized as files at all (builtin, frozen, alias,
// missing, excluded, distribution) appear in neither set. Top-level
// extension modules always land in the loose set regardless of their
// computed safety: native-extension loaders cannot load from inside a
// compressed archive. Every other node goes to exactly one of the two sets
// based on IsZipSafe.
func (g *Graph) CollectNodes() (archive, loose []*node.Node) {
	for _, n := range g.eng.IterGraph() {
		switch n.Kind {
		case node.KindBuiltinModule, node.KindFrozenModule, node.KindAlias,
			node.KindMissingModule, node.KindExcludedModule, node.KindDistribution:
			continue
		}

		if n.Kind == node.KindExtensionModule && n.TopLevel() {
			loose = append(loose, n)
		} else if g.IsZipSafe(n) {
			archive = append(archive, n)
		} else {
			loose = append(loose, n)
		}
	}
	return archive, loose
}
