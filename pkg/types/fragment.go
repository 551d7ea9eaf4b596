package types

import (
	"sort"

	"github.com/arthur-debert/mixconf/pkg/errors"
)

// Reserved fragment keys holding ordered step sequences
const (
	KeyPresets = "presets"
	KeyPlugins = "plugins"
)

// Fragment is one partial transpiler configuration
type Fragment map[string]interface{}

// Clone returns a shallow copy of the fragment
func (f Fragment) Clone() Fragment {
	out := make(Fragment, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Keys returns the fragment keys in sorted order
func (f Fragment) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Steps returns the raw step list stored under a reserved key. An absent
// or nil value yields no steps; a value that is not a list is rejected.
func (f Fragment) Steps(key string) ([]interface{}, error) {
	switch v := f[key].(type) {
	case nil:
		return nil, nil
	case []interface{}:
		return v, nil
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	case []ConfigItem:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, nil
	case []Step:
		out := make([]interface{}, len(v))
		for i, step := range v {
			out[i] = step
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrStepInvalid, "%s must be a list, got %T", key, v)
	}
}

// Items returns the resolved items stored under a reserved key of a merged fragment
func (f Fragment) Items(key string) []ConfigItem {
	items, _ := f[key].([]ConfigItem)
	return items
}

// Export converts the fragment into plain maps and slices, rendering
// resolved items back into their "name" / ["name", options] form
func (f Fragment) Export() map[string]interface{} {
	out := make(map[string]interface{}, len(f))
	for k, v := range f {
		switch val := v.(type) {
		case []ConfigItem:
			exported := make([]interface{}, len(val))
			for i, item := range val {
				exported[i] = item.Export()
			}
			out[k] = exported
		case []Step:
			exported := make([]interface{}, len(val))
			for i, step := range val {
				exported[i] = step.Export()
			}
			out[k] = exported
		default:
			out[k] = v
		}
	}
	return out
}
