package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"bundlegraph/internal/node"
)

// Model is the unified, format-agnostic representation of a bundle manifest.
type Model struct {
	Bundle        *Bundle
	Units         []*Unit
	Distributions []*Distribution
	Recipes       []*Recipe
}

// Bundle describes the build target.
type Bundle struct {
	// Name labels the bundle in reports and logs.
	Name string
	// Scripts are the entry-point script paths added to the graph first.
	Scripts []string
	// Include lists units forced into the graph even when nothing
	// imports them.
	Include []string
	// Exclude lists units that become ExcludedModule nodes: discovered,
	// but never materialized in the bundle.
	Exclude []string
}

// Unit declares one known unit and its import facts.
type Unit struct {
	Name                 string
	Kind                 node.Kind
	Path                 string
	UsesFileLocation     bool
	InitUsesFileLocation bool
	Imports              []string
}

// Distribution declares an installed library deployed as one collection.
type Distribution struct {
	Name    string
	Version string
}

// Recipe configures one recipe pass: the registered recipe name plus its
// typed options.
type Recipe struct {
	Name    string
	Options map[string]cty.Value
}

// ParseKind translates a manifest kind string into a node.Kind.
func ParseKind(s string) (node.Kind, error) {
	switch s {
	case "", "module":
		return node.KindModule, nil
	case "package":
		return node.KindPackage, nil
	case "namespace_package":
		return node.KindNamespacePackage, nil
	case "script":
		return node.KindScript, nil
	case "extension_module":
		return node.KindExtensionModule, nil
	case "builtin_module":
		return node.KindBuiltinModule, nil
	case "frozen_module":
		return node.KindFrozenModule, nil
	default:
		return 0, fmt.Errorf("config: unknown unit kind %q", s)
	}
}

// Validate checks the model for the problems a loader cannot express in its
// schema: a missing bundle block, units without names, duplicate unit
// declarations.
func (m *Model) Validate() error {
	if m.Bundle == nil {
		return fmt.Errorf("config: manifest has no bundle block")
	}
	if m.Bundle.Name == "" {
		return fmt.Errorf("config: bundle name is required")
	}
	seen := make(map[string]bool, len(m.Units))
	for _, u := range m.Units {
		if u.Name == "" {
			return fmt.Errorf("config: unit with empty name")
		}
		if seen[u.Name] {
			return fmt.Errorf("config: duplicate unit declaration %q", u.Name)
		}
		seen[u.Name] = true
	}
	return nil
}
