package types

import (
	"github.com/arthur-debert/mixconf/pkg/errors"
)

// ItemKind tells presets and plugins apart during resolution
type ItemKind string

const (
	KindPreset ItemKind = "preset"
	KindPlugin ItemKind = "plugin"
)

// Step is a named transformation before resolution
type Step struct {
	Name string
	// Options is nil for bare identifiers
	Options map[string]interface{}
}

// Export renders the step in its wire form
func (s Step) Export() interface{} {
	if s.Options == nil {
		return s.Name
	}
	return []interface{}{s.Name, s.Options}
}

// FileRef is the resolved identity of a step
type FileRef struct {
	Request  string
	Resolved string
}

// ConfigItem is a step after resolution. File is nil when no identity
// could be resolved; such items never take part in de-duplication.
type ConfigItem struct {
	Kind  ItemKind
	Value Step
	File  *FileRef
}

// Name returns the step name the item was created from
func (c ConfigItem) Name() string {
	return c.Value.Name
}

// Identity returns the resolved file identity, if any
func (c ConfigItem) Identity() (string, bool) {
	if c.File == nil || c.File.Resolved == "" {
		return "", false
	}
	return c.File.Resolved, true
}

// Export renders the item in its wire form
func (c ConfigItem) Export() interface{} {
	return c.Value.Export()
}

// ParseStep converts a raw fragment entry into a Step.
// Accepted forms: "name", ["name"], ["name", {options}], Step and ConfigItem.
func ParseStep(raw interface{}) (Step, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return Step{}, errors.New(errors.ErrStepInvalid, "step name cannot be empty")
		}
		return Step{Name: v}, nil
	case Step:
		return v, nil
	case ConfigItem:
		return v.Value, nil
	case []string:
		items := make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
		return ParseStep(items)
	case []interface{}:
		if len(v) == 0 || len(v) > 2 {
			return Step{}, errors.Newf(errors.ErrStepInvalid,
				"step pair must have one or two elements, got %d", len(v))
		}
		name, ok := v[0].(string)
		if !ok || name == "" {
			return Step{}, errors.Newf(errors.ErrStepInvalid,
				"step pair must start with a name, got %v", v[0])
		}
		step := Step{Name: name}
		if len(v) == 2 && v[1] != nil {
			opts, ok := toStringMap(v[1])
			if !ok {
				return Step{}, errors.Newf(errors.ErrStepInvalid,
					"options for step %q must be an object, got %T", name, v[1])
			}
			step.Options = opts
		}
		return step, nil
	default:
		return Step{}, errors.Newf(errors.ErrStepInvalid, "unsupported step value %T", raw).
			WithDetail("value", raw)
	}
}

func toStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}
