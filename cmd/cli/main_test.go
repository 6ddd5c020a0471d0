package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundlegraph/internal/cli"
)

const manifest = `
bundle {
  name    = "demo"
  scripts = ["bin/main.py"]
}

unit "bin/main.py" {
  kind    = "script"
  imports = ["lib"]
}

unit "lib" {
  path = "src/lib.py"
}
`

func writeManifest(t *testing.T, name, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	path := writeManifest(t, "bundle.hcl", manifest)

	require.NoError(t, run(&out, []string{"-log-level", "error", path}))
	assert.Contains(t, out.String(), "bundle demo")
	assert.Contains(t, out.String(), "lib")
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"-h"}))
	assert.Contains(t, out.String(), "Usage:")
}

func TestRunRecoversStartupPanic(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "absent.hcl")

	err := run(&out, []string{"-log-level", "error", path})
	require.Error(t, err)
	// The manifest-load panic inside app.NewApp surfaces as a clean error.
	assert.ErrorContains(t, err, "application startup panicked")
	assert.ErrorContains(t, err, "failed to load manifest")
}

func TestRunUnsupportedManifestFormat(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, []string{"bundle.yaml"})
	require.Error(t, err)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestLoaderForPath(t *testing.T) {
	loader, err := loaderForPath("bundle.hcl")
	require.NoError(t, err)
	assert.NotNil(t, loader)

	loader, err = loaderForPath("bundle.toml")
	require.NoError(t, err)
	assert.NotNil(t, loader)

	_, err = loaderForPath("bundle")
	assert.Error(t, err)
}
