package babel

import (
	"github.com/arthur-debert/mixconf/pkg/errors"
	"github.com/arthur-debert/mixconf/pkg/logging"
	"github.com/arthur-debert/mixconf/pkg/types"
	"github.com/rs/zerolog"
)

// Merger combines partial transpiler configurations
type Merger struct {
	resolver Resolver
	logger   zerolog.Logger
}

// NewMerger creates a merger using the given resolver for step identity
func NewMerger(resolver Resolver) *Merger {
	return &Merger{
		resolver: resolver,
		logger:   logging.GetLogger("babel.merger"),
	}
}

// MergeAll merges fragments left to right. Later fragments win for every
// plain key; presets and plugins are concatenated, resolved and
// de-duplicated by resolved identity keeping the last occurrence.
func (m *Merger) MergeAll(fragments []types.Fragment) (types.Fragment, error) {
	if len(fragments) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "at least one fragment is required")
	}

	options := types.Fragment{}
	var presets, plugins []interface{}

	for i, fragment := range fragments {
		for _, key := range fragment.Keys() {
			switch key {
			case types.KeyPresets, types.KeyPlugins:
				steps, err := fragment.Steps(key)
				if err != nil {
					return nil, errors.Wrapf(err, errors.ErrStepInvalid, "fragment %d", i)
				}
				if key == types.KeyPresets {
					presets = append(presets, steps...)
				} else {
					plugins = append(plugins, steps...)
				}
			default:
				options[key] = fragment[key]
			}
		}
	}

	presetItems, err := m.createConfigItems(presets, types.KindPreset)
	if err != nil {
		return nil, err
	}
	pluginItems, err := m.createConfigItems(plugins, types.KindPlugin)
	if err != nil {
		return nil, err
	}

	options[types.KeyPresets] = FilterConfigItems(presetItems)
	options[types.KeyPlugins] = FilterConfigItems(pluginItems)

	m.logger.Debug().
		Int("fragments", len(fragments)).
		Int("presets", len(options.Items(types.KeyPresets))).
		Int("plugins", len(options.Items(types.KeyPlugins))).
		Msg("Merged transpiler fragments")

	return options, nil
}

// createConfigItems resolves raw steps into config items
func (m *Merger) createConfigItems(raw []interface{}, kind types.ItemKind) ([]types.ConfigItem, error) {
	items := make([]types.ConfigItem, 0, len(raw))
	for _, entry := range raw {
		step, err := types.ParseStep(entry)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrStepInvalid, "invalid %s", kind)
		}

		item := types.ConfigItem{Kind: kind, Value: step}
		if resolved, ok := m.resolver.Resolve(step.Name, kind); ok {
			item.File = &types.FileRef{Request: StandardizeName(kind, step.Name), Resolved: resolved}
		}
		items = append(items, item)
	}
	return items, nil
}

// FilterConfigItems removes duplicates by resolved identity. When an item
// repeats an identity already present, the earlier item is removed and the
// new one appended at the tail. Items without identity are always kept.
func FilterConfigItems(items []types.ConfigItem) []types.ConfigItem {
	unique := make([]types.ConfigItem, 0, len(items))

	for _, item := range items {
		if id, ok := item.Identity(); ok {
			for i, existing := range unique {
				if existingID, ok := existing.Identity(); ok && existingID == id {
					unique = append(unique[:i], unique[i+1:]...)
					break
				}
			}
		}
		unique = append(unique, item)
	}

	return unique
}
