package recipe

import (
	"context"
	"fmt"

	"bundlegraph/internal/bundle"
	"bundlegraph/internal/config"
	"bundlegraph/internal/ctxlog"
)

// maxPasses bounds the fixpoint loop. Every pass that fails to converge
// must have grown the graph, so hitting the bound means a recipe keeps
// generating new nodes instead of converging.
const maxPasses = 100

// Run executes the configured recipe passes until a full pass reports no
// graph change, and returns the number of passes taken.
func Run(ctx context.Context, g *bundle.Graph, reg *Registry, configured []*config.Recipe) (int, error) {
	logger := ctxlog.FromContext(ctx)

	for _, rc := range configured {
		if _, ok := reg.Get(rc.Name); !ok {
			return 0, fmt.Errorf("recipe: unknown recipe %q", rc.Name)
		}
	}

	for pass := 1; pass <= maxPasses; pass++ {
		updated, err := runOnce(ctx, g, reg, configured)
		if err != nil {
			return pass, err
		}
		logger.Debug("Recipe pass finished.", "pass", pass, "updated", updated)
		if !updated {
			return pass, nil
		}
	}
	return maxPasses, fmt.Errorf("recipe: graph did not reach a fixpoint after %d passes", maxPasses)
}

// runOnce runs every configured recipe once under a change-tracking scope.
// The tracker is released via defer, so a recipe failure or panic never
// leaves a stale observer on the graph.
func runOnce(ctx context.Context, g *bundle.Graph, reg *Registry, configured []*config.Recipe) (bool, error) {
	tracker := g.Track()
	defer tracker.Close()

	for _, rc := range configured {
		fn, _ := reg.Get(rc.Name)
		if err := fn(ctx, g, Options(rc.Options)); err != nil {
			return tracker.Updated(), fmt.Errorf("recipe %q: %w", rc.Name, err)
		}
	}
	return tracker.Updated(), nil
}
