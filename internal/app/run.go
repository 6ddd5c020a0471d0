package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bundlegraph/internal/bundle"
	"bundlegraph/internal/config"
	"bundlegraph/internal/ctxlog"
	"bundlegraph/internal/depgraph"
	"bundlegraph/internal/node"
	"bundlegraph/internal/recipe"
	"bundlegraph/internal/scriptlet"
)

// Run executes one build: trace the graph to a fixpoint, run the
// post-processing hooks, classify every unit and write the report.
func (a *App) Run(ctx context.Context) error {
	buildID := uuid.NewString()
	logger := a.logger.With("build_id", buildID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	payloads, err := scriptlet.NewLibrary()
	if err != nil {
		return err
	}

	eng := depgraph.New(depgraph.NewMapResolver(unitDecls(a.model)))
	g := bundle.New(eng, payloads)

	for _, d := range a.model.Distributions {
		g.AddDistribution(&node.Distribution{Name: d.Name, Version: d.Version})
	}
	for _, path := range a.model.Bundle.Scripts {
		g.AddScript(path)
	}
	for _, name := range a.model.Bundle.Include {
		g.AddModule(name)
	}
	logger.Debug("Roots seeded.",
		"scripts", len(a.model.Bundle.Scripts),
		"includes", len(a.model.Bundle.Include))

	passes, err := recipe.Run(ctx, g, recipe.Builtin(), a.model.Recipes)
	if err != nil {
		return fmt.Errorf("graph construction failed: %w", err)
	}
	logger.Info("Graph construction reached a fixpoint.",
		"passes", passes, "nodes", len(g.IterGraph()))

	// Post-construction sweep: surface unresolved imports that no recipe
	// declared as tolerated.
	var unexpectedMissing []string
	g.AddPostProcessingHook(func(g *bundle.Graph, n *node.Node) {
		if n.Kind == node.KindMissingModule && !g.IsExpectedMissing(n) {
			unexpectedMissing = append(unexpectedMissing, n.Identifier)
		}
	})
	g.RunPostProcessing()
	for _, name := range unexpectedMissing {
		logger.Warn("Unresolved import in graph.", "unit", name)
	}

	archive, loose := g.CollectNodes()
	logger.Info("Classification complete.",
		"archive", len(archive), "loose", len(loose))

	report := buildReport(a.model.Bundle.Name, buildID, passes, g, archive, loose, unexpectedMissing)
	if err := report.write(a.outW, a.config.ReportFormat); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	logger.Debug("App.Run method finished.")
	return nil
}

// unitDecls translates the manifest's unit declarations into resolver
// declarations, turning excluded names into ExcludedModule units.
func unitDecls(model *config.Model) []*depgraph.UnitDecl {
	excluded := make(map[string]bool, len(model.Bundle.Exclude))
	for _, name := range model.Bundle.Exclude {
		excluded[name] = true
	}

	var decls []*depgraph.UnitDecl
	declared := make(map[string]bool, len(model.Units))
	for _, u := range model.Units {
		declared[u.Name] = true
		if excluded[u.Name] {
			decls = append(decls, &depgraph.UnitDecl{
				Name: u.Name,
				Kind: node.KindExcludedModule,
			})
			continue
		}
		decls = append(decls, &depgraph.UnitDecl{
			Name:                 u.Name,
			Kind:                 u.Kind,
			Path:                 u.Path,
			UsesFileLocation:     u.UsesFileLocation,
			InitUsesFileLocation: u.InitUsesFileLocation,
			Imports:              u.Imports,
		})
	}

	// Excluded names that were never declared still need a declaration so
	// imports of them resolve to ExcludedModule rather than MissingModule.
	for _, name := range model.Bundle.Exclude {
		if !declared[name] {
			decls = append(decls, &depgraph.UnitDecl{
				Name: name,
				Kind: node.KindExcludedModule,
			})
		}
	}
	return decls
}
