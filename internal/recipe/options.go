package recipe

import "github.com/zclconf/go-cty/cty"

// Options carries a recipe's configuration as typed values. The manifest
// loaders produce the same cty shapes regardless of manifest format.
type Options map[string]cty.Value

// String returns the string option for key, and false when the option is
// absent or not a string.
func (o Options) String(key string) (string, bool) {
	v, ok := o[key]
	if !ok || v.IsNull() || v.Type() != cty.String {
		return "", false
	}
	return v.AsString(), true
}

// Bool returns the boolean option for key, defaulting to false.
func (o Options) Bool(key string) bool {
	v, ok := o[key]
	if !ok || v.IsNull() || v.Type() != cty.Bool {
		return false
	}
	return v.True()
}

// StringList returns the option for key as a list of strings. Absent
// options, non-collections and non-string elements yield nil.
func (o Options) StringList(key string) []string {
	v, ok := o[key]
	if !ok || v.IsNull() || !v.CanIterateElements() {
		return nil
	}
	var out []string
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		if ev.IsNull() || ev.Type() != cty.String {
			return nil
		}
		out = append(out, ev.AsString())
	}
	return out
}
