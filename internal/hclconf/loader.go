// Package hclconf loads bundle manifests written in HCL and translates
// them into the format-agnostic config model.
package hclconf

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"bundlegraph/internal/config"
	"bundlegraph/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes the top-level blocks of a manifest file.
type fileRoot struct {
	Bundle        *bundleBlock   `hcl:"bundle,block"`
	Units         []*unitBlock   `hcl:"unit,block"`
	Distributions []*distBlock   `hcl:"distribution,block"`
	Recipes       []*recipeBlock `hcl:"recipe,block"`
}

type bundleBlock struct {
	Name    string   `hcl:"name"`
	Scripts []string `hcl:"scripts,optional"`
	Include []string `hcl:"include,optional"`
	Exclude []string `hcl:"exclude,optional"`
}

type unitBlock struct {
	Name                 string   `hcl:"name,label"`
	Kind                 string   `hcl:"kind,optional"`
	Path                 string   `hcl:"path,optional"`
	UsesFileLocation     bool     `hcl:"uses_file_location,optional"`
	InitUsesFileLocation bool     `hcl:"init_uses_file_location,optional"`
	Imports              []string `hcl:"imports,optional"`
}

type distBlock struct {
	Name    string `hcl:"name,label"`
	Version string `hcl:"version,optional"`
}

type recipeBlock struct {
	Name    string         `hcl:"name,label"`
	Options hcl.Expression `hcl:"options,optional"`
}

// Load parses and translates the manifest at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL manifest loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclconf: failed to parse %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("hclconf: failed to decode %s: %w", path, diags)
	}

	model, err := l.translate(&root)
	if err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("HCL manifest loaded.", "units", len(model.Units), "recipes", len(model.Recipes))
	return model, nil
}

// translate converts the HCL schema into the agnostic model.
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
			return nil, fmt.Errorf("hclconf: unit %q: %w", u.Name, err)
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
		opts, err := decodeOptions(r.Options)
		if err != nil {
			return nil, fmt.Errorf("hclconf: recipe %q: %w", r.Name, err)
		}
		model.Recipes = append(model.Recipes, &config.Recipe{
			Name:    r.Name,
			Options: opts,
		})
	}

	return model, nil
}

// decodeOptions evaluates a recipe's options expression into a flat map of
// cty values. An absent expression yields an empty map.
func decodeOptions(expr hcl.Expression) (map[string]cty.Value, error) {
	opts := make(map[string]cty.Value)
	if expr == nil {
		return opts, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluating options: %w", diags)
	}
	if val.IsNull() {
		return opts, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("options must be an object, got %s", val.Type().FriendlyName())
	}
	for key, v := range val.AsValueMap() {
		opts[key] = v
	}
	return opts, nil
}
