package hclconf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"bundlegraph/internal/node"
)

// writeManifest drops manifest source into a temp file and returns its path.
func writeManifest(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.hcl")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	source := `
bundle {
  name    = "demo"
  scripts = ["bin/main.py"]
  exclude = ["tests"]
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

distribution "lib-dist" {
  version = "1.2.0"
}

recipe "extra-imports" {
  options = {
    unit         = "lib"
    modules      = ["lib.extra"]
    full_package = true
  }
}
`
	model, err := NewLoader().Load(context.Background(), writeManifest(t, source))
	require.NoError(t, err)

	require.NotNil(t, model.Bundle)
	assert.Equal(t, "demo", model.Bundle.Name)
	assert.Equal(t, []string{"bin/main.py"}, model.Bundle.Scripts)
	assert.Equal(t, []string{"tests"}, model.Bundle.Exclude)

	require.Len(t, model.Units, 2)
	assert.Equal(t, node.KindPackage, model.Units[0].Kind)
	assert.Equal(t, []string{"lib.core"}, model.Units[0].Imports)
	assert.Equal(t, node.KindModule, model.Units[1].Kind, "kind defaults to module")
	assert.True(t, model.Units[1].UsesFileLocation)

	require.Len(t, model.Distributions, 1)
	assert.Equal(t, "lib-dist", model.Distributions[0].Name)
	assert.Equal(t, "1.2.0", model.Distributions[0].Version)

	require.Len(t, model.Recipes, 1)
	opts := model.Recipes[0].Options
	assert.Equal(t, cty.StringVal("lib"), opts["unit"])
	assert.Equal(t, cty.TupleVal([]cty.Value{cty.StringVal("lib.extra")}), opts["modules"])
	assert.Equal(t, cty.True, opts["full_package"])
}

func TestLoadRecipeWithoutOptions(t *testing.T) {
	source := `
bundle {
  name = "demo"
}

recipe "expected-missing" {}
`
	model, err := NewLoader().Load(context.Background(), writeManifest(t, source))
	require.NoError(t, err)
	require.Len(t, model.Recipes, 1)
	assert.Empty(t, model.Recipes[0].Options)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
		assert.Error(t, err)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), writeManifest(t, `bundle {`))
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("unknown unit kind", func(t *testing.T) {
		source := `
bundle {
  name = "demo"
}

unit "lib" {
  kind = "shared_library"
}
`
		_, err := NewLoader().Load(context.Background(), writeManifest(t, source))
		assert.ErrorContains(t, err, "shared_library")
	})

	t.Run("non-object recipe options", func(t *testing.T) {
		source := `
bundle {
  name = "demo"
}

recipe "extra-imports" {
  options = "nope"
}
`
		_, err := NewLoader().Load(context.Background(), writeManifest(t, source))
		assert.ErrorContains(t, err, "must be an object")
	})

	t.Run("missing bundle block", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), writeManifest(t, `unit "lib" {}`))
		assert.ErrorContains(t, err, "no bundle block")
	})
}
