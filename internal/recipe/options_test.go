package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestOptionsString(t *testing.T) {
	opts := Options{
		"name":  cty.StringVal("lib"),
		"count": cty.NumberIntVal(3),
		"empty": cty.NullVal(cty.String),
	}

	v, ok := opts.String("name")
	assert.True(t, ok)
	assert.Equal(t, "lib", v)

	_, ok = opts.String("count")
	assert.False(t, ok, "a number is not a string")
	_, ok = opts.String("empty")
	assert.False(t, ok)
	_, ok = opts.String("absent")
	assert.False(t, ok)
}

func TestOptionsBool(t *testing.T) {
	opts := Options{
		"on":   cty.True,
		"off":  cty.False,
		"name": cty.StringVal("yes"),
	}

	assert.True(t, opts.Bool("on"))
	assert.False(t, opts.Bool("off"))
	assert.False(t, opts.Bool("name"), "non-bool defaults to false")
	assert.False(t, opts.Bool("absent"))
}

func TestOptionsStringList(t *testing.T) {
	opts := Options{
		"units": cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
		"typed": cty.ListVal([]cty.Value{cty.StringVal("c")}),
		"mixed": cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.NumberIntVal(1)}),
		"name":  cty.StringVal("lib"),
	}

	assert.Equal(t, []string{"a", "b"}, opts.StringList("units"))
	assert.Equal(t, []string{"c"}, opts.StringList("typed"))
	assert.Nil(t, opts.StringList("mixed"), "non-string element rejects the whole list")
	assert.Nil(t, opts.StringList("name"))
	assert.Nil(t, opts.StringList("absent"))
}
