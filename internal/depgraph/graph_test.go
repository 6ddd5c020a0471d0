package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundlegraph/internal/node"
)

func testDecls() []*UnitDecl {
	return []*UnitDecl{
		{Name: "bin/main.py", Kind: node.KindScript, Path: "bin/main.py", Imports: []string{"lib"}},
		{Name: "lib", Kind: node.KindPackage, Path: "src/lib/__init__.py", Imports: []string{"lib.core"}},
		{Name: "lib.core", Kind: node.KindModule, Path: "src/lib/core.py"},
		{Name: "lib.native", Kind: node.KindExtensionModule, Path: "src/lib/native.so"},
		{Name: "helpers", Kind: node.KindModule, Path: "src/helpers.py", Imports: []string{"helpers"}},
	}
}

func TestAddModule(t *testing.T) {
	t.Run("creates node and follows declared imports", func(t *testing.T) {
		g := New(NewMapResolver(testDecls()))

		n := g.AddModule("lib")
		require.NotNil(t, n)
		assert.Equal(t, "lib", n.Identifier)
		assert.Equal(t, node.KindPackage, n.Kind)

		core := g.FindNode("lib.core")
		require.NotNil(t, core, "declared import should have been followed")

		_, err := g.EdgeData(n, core)
		assert.NoError(t, err)
	})

	t.Run("unknown name becomes a missing module", func(t *testing.T) {
		g := New(NewMapResolver(testDecls()))

		n := g.AddModule("no_such_unit")
		require.NotNil(t, n)
		assert.Equal(t, node.KindMissingModule, n.Kind)
	})

	t.Run("same identifier yields the same node", func(t *testing.T) {
		g := New(NewMapResolver(testDecls()))

		first := g.AddModule("lib")
		second := g.AddModule("lib")
		assert.Same(t, first, second)
	})

	t.Run("self-import terminates", func(t *testing.T) {
		g := New(NewMapResolver(testDecls()))

		n := g.AddModule("helpers")
		require.NotNil(t, n)
		assert.Equal(t, 1, g.NodeCount())
	})
}

func TestAddScript(t *testing.T) {
	g := New(NewMapResolver(testDecls()))

	s := g.AddScript("bin/main.py")
	require.NotNil(t, s)
	assert.Equal(t, node.KindScript, s.Kind)

	// The script's declared imports are pulled in transitively.
	require.NotNil(t, g.FindNode("lib"))
	require.NotNil(t, g.FindNode("lib.core"))

	// An undeclared script still becomes a node.
	other := g.AddScript("bin/other.py")
	require.NotNil(t, other)
	assert.Equal(t, node.KindScript, other.Kind)
}

func TestImportModule(t *testing.T) {
	g := New(NewMapResolver(testDecls()))
	importer := g.AddModule("lib")

	target := g.ImportModule(importer, "helpers")
	require.NotNil(t, target)

	info, err := g.EdgeData(importer, target)
	require.NoError(t, err)
	assert.NotNil(t, info)

	// Probing the reverse direction is an expected absence.
	_, err = g.EdgeData(target, importer)
	assert.ErrorIs(t, err, ErrNoEdge)
}

func TestImportPackage(t *testing.T) {
	g := New(NewMapResolver(testDecls()))
	importer := g.AddScript("bin/main.py")

	pkg := g.ImportPackage(importer, "lib")
	require.NotNil(t, pkg)

	// Every unit nested under the package is in the graph with an edge
	// from the package.
	for _, name := range []string{"lib.core", "lib.native"} {
		member := g.FindNode(name)
		require.NotNil(t, member, "member %s should exist", name)
		_, err := g.EdgeData(pkg, member)
		assert.NoError(t, err)
	}
}

func TestAddDistribution(t *testing.T) {
	g := New(NewMapResolver(nil))

	d := g.AddDistribution(&node.Distribution{Name: "lib-dist", Version: "1.0"})
	require.NotNil(t, d)
	assert.Equal(t, node.KindDistribution, d.Kind)
	assert.Equal(t, "1.0", d.Dist.Version)

	again := g.AddDistribution(&node.Distribution{Name: "lib-dist"})
	assert.Same(t, d, again)
}

func TestIterGraphStableOrder(t *testing.T) {
	g := New(NewMapResolver(testDecls()))
	g.AddModule("helpers")
	g.AddModule("lib")

	first := g.IterGraph()
	second := g.IterGraph()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
	// Insertion order: helpers before the lib subtree.
	assert.Equal(t, "helpers", first[0].Identifier)
}

func TestAddDependenciesForSource(t *testing.T) {
	g := New(NewMapResolver(testDecls()))

	g.AddDependenciesForSource("import helpers\nfrom lib.core import thing\n")

	assert.NotNil(t, g.FindNode("helpers"))
	assert.NotNil(t, g.FindNode("lib.core"))
}

func TestScanImports(t *testing.T) {
	source := `
import os
import lib.core
from helpers import tool
import os
x = "import not_an_import"
`
	names := ScanImports(source)
	assert.Equal(t, []string{"os", "lib.core", "helpers"}, names)
}

func TestPackageInitializer(t *testing.T) {
	g := New(NewMapResolver([]*UnitDecl{
		{Name: "pkg", Kind: node.KindPackage, Path: "pkg/__init__.py", InitUsesFileLocation: true},
	}))

	pkg := g.AddModule("pkg")
	require.NotNil(t, pkg.Init)
	assert.Equal(t, "pkg.__init__", pkg.Init.Identifier)
	assert.Equal(t, node.KindModule, pkg.Init.Kind)
	assert.True(t, pkg.Init.UsesFileLocation)

	// The initializer hangs off the package node, it is not iterated.
	assert.Equal(t, 1, g.NodeCount())
}
