// Package tomlconf loads bundle manifests written in TOML and translates
// them into the format-agnostic config model.
package tomlconf

import (
	"context"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"

	"bundlegraph/internal/config"
	"bundlegraph/internal/ctxlog"
)

// Loader is the TOML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new TOML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes the top-level tables of a manifest file.
type fileRoot struct {
	Bundle        *bundleTable   `toml:"bundle"`
	Units         []*unitTable   `toml:"unit"`
	Distributions []*distTable   `toml:"distribution"`
	Recipes       []*recipeTable `toml:"recipe"`
}

type bundleTable struct {
	Name    string   `toml:"name"`
	Scripts []string `toml:"scripts"`
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

type unitTable struct {
	Name                 string   `toml:"name"`
	Kind                 string   `toml:"kind"`
	Path                 string   `toml:"path"`
	UsesFileLocation     bool     `toml:"uses_file_location"`
	InitUsesFileLocation bool     `toml:"init_uses_file_location"`
	Imports              []string `toml:"imports"`
}

type distTable struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type recipeTable struct {
	Name    string         `toml:"name"`
	Options map[string]any `toml:"options"`
}

// Load parses and translates the manifest at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("TOML manifest loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tomlconf: reading %s: %w", path, err)
	}

	var root fileRoot
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("tomlconf: failed to decode %s: %w", path, err)
	}

	model, err := l.translate(&root)
	if err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("TOML manifest loaded.", "units", len(model.Units), "recipes", len(model.Recipes))
	return model, nil
}

// translate converts the TOML schema into the agnostic model.
func (l *Loader) translate(root *fileRoot) (*config.Model, error) {
	model := &config.Model{}

	if root.Bundle != nil {
		model.Bundle = &config.Bundle{
			Name:    root.Bundle.Name,
			Scripts: root.Bundle.Scripts,
			Include: root.Bundle.Include,
			Exclude: root.Bundle.Exclude,
		}
	}

	for _, u := range root.Units {
		kind, err := config.ParseKind(u.Kind)
		if err != nil {
			return nil, fmt.Errorf("tomlconf: unit %q: %w", u.Name, err)
		}
		model.Units = append(model.Units, &config.Unit{
			Name:                 u.Name,
			Kind:                 kind,
			Path:                 u.Path,
			UsesFileLocation:     u.UsesFileLocation,
			InitUsesFileLocation: u.InitUsesFileLocation,
			Imports:              u.Imports,
		})
	}

	for _, d := range root.Distributions {
		model.Distributions = append(model.Distributions, &config.Distribution{
			Name:    d.Name,
			Version: d.Version,
		})
	}

	for _, r := range root.Recipes {
		opts := make(map[string]cty.Value, len(r.Options))
		for key, raw := range r.Options {
			val, err := ctyFromAny(raw)
			if err != nil {
				return nil, fmt.Errorf("tomlconf: recipe %q option %q: %w", r.Name, key, err)
			}
			opts[key] = val
		}
		model.Recipes = append(model.Recipes, &config.Recipe{
			Name:    r.Name,
			Options: opts,
		})
	}

	return model, nil
}

// ctyFromAny converts a decoded TOML value into a cty value, so recipe
// options look the same to recipes regardless of manifest format.
func ctyFromAny(raw any) (cty.Value, error) {
	switch v := raw.(type) {
	case string:
		return cty.StringVal(v), nil
	case bool:
		return cty.BoolVal(v), nil
	case int64:
		return cty.NumberIntVal(v), nil
	case float64:
		return cty.NumberFloatVal(v), nil
	case []any:
		if len(v) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(v))
		for _, e := range v {
			ev, err := ctyFromAny(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, ev)
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(v) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(v))
		for key, e := range v {
			ev, err := ctyFromAny(e)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[key] = ev
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported option value of type %T", raw)
	}
}
