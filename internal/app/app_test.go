package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundlegraph/internal/hclconf"
)

func TestNewConfig(t *testing.T) {
	t.Run("requires a manifest path", func(t *testing.T) {
		_, err := NewConfig(Config{})
		assert.ErrorContains(t, err, "ManifestPath")
	})

	t.Run("accepts a populated config", func(t *testing.T) {
		cfg, err := NewConfig(Config{ManifestPath: "bundle.hcl"})
		require.NoError(t, err)
		assert.Equal(t, "bundle.hcl", cfg.ManifestPath)
	})
}

// demoManifest traces a small application: a script importing a package, a
// submodule that reads its own source location, a tolerated missing import
// and an excluded unit.
const demoManifest = `
bundle {
  name    = "demo"
  scripts = ["bin/main.py"]
  exclude = ["tests"]
}

unit "bin/main.py" {
  kind    = "script"
  imports = ["lib", "tests", "vanished"]
}

unit "lib" {
  kind    = "package"
  path    = "src/lib/__init__.py"
  imports = ["lib.core"]
}

unit "lib.core" {
  path               = "src/lib/core.py"
  uses_file_location = true
}

unit "os" {
  kind = "builtin_module"
}

unit "sys" {
  kind = "builtin_module"
}

distribution "lib-dist" {
  version = "1.0"
}

recipe "expected-missing" {
  options = { units = ["vanished"] }
}

recipe "attach-bootstrap" {
  options = { unit = "lib", payload = "bootstrap:setup_path" }
}
`

func runDemo(t *testing.T, reportFormat string) *bytes.Buffer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bundle.hcl")
	require.NoError(t, os.WriteFile(path, []byte(demoManifest), 0o644))

	cfg, err := NewConfig(Config{
		ManifestPath: path,
		LogFormat:    "text",
		LogLevel:     "error",
		ReportFormat: reportFormat,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	a := NewApp(&buf, cfg, hclconf.NewLoader())
	require.NoError(t, a.Run(context.Background()))
	return &buf
}

func TestRunJSONReport(t *testing.T) {
	buf := runDemo(t, "json")

	var report Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, "demo", report.Bundle)
	assert.NotEmpty(t, report.BuildID)
	// Pass one attaches the bootstrap payload, whose imports grow the
	// graph; pass two observes no change.
	assert.Equal(t, 2, report.Passes)

	archive := map[string]Entry{}
	for _, e := range report.Archive {
		archive[e.Identifier] = e
	}
	loose := map[string]Entry{}
	for _, e := range report.Loose {
		loose[e.Identifier] = e
	}

	assert.Contains(t, archive, "bin/main.py")
	assert.Contains(t, archive, "lib")
	assert.Contains(t, archive["lib"].Bootstrap, "sys.path")
	// lib.core locates its own source, so it stays out of the archive.
	assert.Contains(t, loose, "lib.core")

	// Synthetic kinds are materialized in neither set.
	for _, name := range []string{"tests", "vanished", "os", "sys", "lib-dist"} {
		assert.NotContains(t, archive, name)
		assert.NotContains(t, loose, name)
	}

	// The one unresolved import was declared tolerated by the recipe.
	assert.Empty(t, report.UnexpectedMissing)
}

func TestRunTextReport(t *testing.T) {
	out := runDemo(t, "text").String()

	assert.Contains(t, out, "bundle demo (2 passes)")
	assert.Contains(t, out, "archive (2):")
	assert.Contains(t, out, "loose (1):")
	assert.Contains(t, out, "lib.core")
	assert.Contains(t, out, "bootstrap (")
}

func TestNewAppPanicsOnBadManifest(t *testing.T) {
	cfg, err := NewConfig(Config{ManifestPath: filepath.Join(t.TempDir(), "absent.hcl"), LogLevel: "error"})
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Panics(t, func() {
		NewApp(&buf, cfg, hclconf.NewLoader())
	})
}
