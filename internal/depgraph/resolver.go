package depgraph

import (
	"regexp"
	"sort"
	"strings"

	"bundlegraph/internal/node"
)

// UnitDecl is the resolver-side description of one unit: the facts the
// engine needs to materialize a node and follow its imports.
type UnitDecl struct {
	// Name is the unit's logical identifier.
	Name string
	// Kind tags the node variant to create.
	Kind node.Kind
	// Path is the unit's on-disk source location.
	Path string
	// UsesFileLocation marks a module that inspects its own source location.
	UsesFileLocation bool
	// InitUsesFileLocation marks a package whose initializer inspects its
	// own source location.
	InitUsesFileLocation bool
	// Imports lists the identifiers this unit imports directly.
	Imports []string
}

// Resolver supplies the engine with resolution facts for unit names.
//
// The production resolver is fed from the bundle manifest, which keeps the
// engine deterministic: resolution facts come from declarations rather than
// from probing a live interpreter environment.
type Resolver interface {
	// Lookup returns the declaration for a unit name, or false when the
	// name is unknown.
	Lookup(name string) (*UnitDecl, bool)

	// Members returns the declarations of every unit nested under the
	// given package identifier, in identifier order.
	Members(pkg string) []*UnitDecl

	// ScanSource extracts the unit names imported by a source snippet,
	// such as an injected bootstrap scriptlet.
	ScanSource(source string) []string
}

// MapResolver is a Resolver backed by a fixed set of declarations.
type MapResolver struct {
	decls map[string]*UnitDecl
}

// NewMapResolver builds a resolver from a list of unit declarations.
// Later declarations for the same name win.
func NewMapResolver(decls []*UnitDecl) *MapResolver {
	m := make(map[string]*UnitDecl, len(decls))
	for _, d := range decls {
		m[d.Name] = d
	}
	return &MapResolver{decls: m}
}

// Lookup returns the declaration registered for name.
func (r *MapResolver) Lookup(name string) (*UnitDecl, bool) {
	d, ok := r.decls[name]
	return d, ok
}

// Members returns every declaration whose name is nested under pkg.
func (r *MapResolver) Members(pkg string) []*UnitDecl {
	prefix := pkg + "."
	var members []*UnitDecl
	for name, d := range r.decls {
		if strings.HasPrefix(name, prefix) {
			members = append(members, d)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members
}

// ScanSource extracts imported names from a source snippet.
func (r *MapResolver) ScanSource(source string) []string {
	return ScanImports(source)
}

// importRe matches the two import statement forms that can appear in a
// bootstrap scriptlet: "import a.b" and "from a.b import c".
var importRe = regexp.MustCompile(`(?m)^\s*(?:import\s+([\w.]+)|from\s+([\w.]+)\s+import\b)`)

// ScanImports returns the unit names imported by a source snippet, in
// order of first appearance, without duplicates.
func ScanImports(source string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range importRe.FindAllStringSubmatch(source, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
