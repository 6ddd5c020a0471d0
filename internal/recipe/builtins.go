package recipe

import (
	"context"
	"fmt"

	"bundlegraph/internal/bundle"
	"bundlegraph/internal/ctxlog"
	"bundlegraph/internal/node"
)

// extraImports forces imports the tracer cannot discover on its own, such
// as dynamically-computed names.
//
// Options:
//   - unit:         importer identifier; the recipe does nothing until the
//     unit appears in the graph
//   - modules:      identifiers to import from the unit
//   - full_package: import each name as an entire package subtree
func extraImports(ctx context.Context, g *bundle.Graph, opts Options) error {
	unitName, ok := opts.String("unit")
	if !ok {
		return fmt.Errorf("extra-imports: option \"unit\" is required")
	}
	importer := g.FindNode(unitName)
	if importer == nil {
		// Not in the graph yet. A later pass picks this up once some
		// other step pulls the unit in.
		return nil
	}

	fullPackage := opts.Bool("full_package")
	for _, name := range opts.StringList("modules") {
		if fullPackage {
			g.ImportPackage(importer, name)
		} else {
			g.ImportModule(importer, name)
		}
	}
	return nil
}

// zipUnsafe marks units that cannot run from inside the compressed
// archive.
//
// Options:
//   - units: identifiers to mark
//   - init:  mark the initializer module of each package instead of the
//     package node itself
func zipUnsafe(ctx context.Context, g *bundle.Graph, opts Options) error {
	markInit := opts.Bool("init")
	for _, name := range opts.StringList("units") {
		n := g.FindNode(name)
		if n == nil {
			continue
		}
		if markInit && n.Init != nil {
			g.MarkZipUnsafe(n.Init)
		} else {
			g.MarkZipUnsafe(n)
		}
	}
	return nil
}

// expectedMissing marks missing units as intentionally-tolerated absences,
// silencing the unresolved-import warning for them.
//
// Options:
//   - units: identifiers to tolerate
func expectedMissing(ctx context.Context, g *bundle.Graph, opts Options) error {
	for _, name := range opts.StringList("units") {
		n := g.FindNode(name)
		if n == nil {
			continue
		}
		if n.Kind != node.KindMissingModule {
			ctxlog.FromContext(ctx).Warn("expected-missing recipe applied to a unit that is present.",
				"unit", name, "kind", n.Kind.String())
			continue
		}
		g.SetExpectedMissing(n)
	}
	return nil
}

// attachResources declares extra files to copy alongside a unit.
//
// Options:
//   - unit:   owning identifier
//   - source: path of the file to copy
//   - dest:   placement inside the bundle
//   - ignore_package_resources: additionally suppress copying of the
//     unit's own package-declared resource files
func attachResources(ctx context.Context, g *bundle.Graph, opts Options) error {
	unitName, ok := opts.String("unit")
	if !ok {
		return fmt.Errorf("attach-resources: option \"unit\" is required")
	}
	n := g.FindNode(unitName)
	if n == nil {
		return nil
	}

	source, hasSource := opts.String("source")
	if hasSource {
		dest, _ := opts.String("dest")
		g.AddResources(n, []node.Resource{{Source: source, Dest: dest}})
	}
	if opts.Bool("ignore_package_resources") {
		g.SetIgnoreResources(n)
	}
	return nil
}

// attachBootstrap injects startup code that runs before a unit is first
// imported.
//
// Options:
//   - unit:    owning identifier
//   - payload: logical payload reference ("bootstrap:setup_path")
//   - source:  inline scriptlet text, used when payload is absent
func attachBootstrap(ctx context.Context, g *bundle.Graph, opts Options) error {
	unitName, ok := opts.String("unit")
	if !ok {
		return fmt.Errorf("attach-bootstrap: option \"unit\" is required")
	}
	n := g.FindNode(unitName)
	if n == nil {
		return nil
	}

	if payload, ok := opts.String("payload"); ok {
		return g.AddBootstrap(n, payload)
	}
	if source, ok := opts.String("source"); ok {
		g.AddBootstrapScriptlet(n, source)
		return nil
	}
	return fmt.Errorf("attach-bootstrap: one of \"payload\" or \"source\" is required")
}
