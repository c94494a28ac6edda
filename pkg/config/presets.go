package config

import (
	_ "embed"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/vidra-player/vidra/pkg/errors"
)

//go:embed presets.toml
var builtinPresetData []byte

// BuiltinPresets returns the presets shipped with the application.
func BuiltinPresets() (map[string]Record, error) {
	return parsePresets(builtinPresetData)
}

// LoadPresets returns the built-in presets merged with the optional user
// preset file at userPath. User definitions win by name; a missing user file
// is not an error.
func LoadPresets(fsys afero.Fs, userPath string) (map[string]Record, error) {
	presets, err := BuiltinPresets()
	if err != nil {
		return nil, err
	}
	if userPath == "" {
		return presets, nil
	}

	exists, err := afero.Exists(fsys, userPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", userPath)
	}
	if !exists {
		return presets, nil
	}

	data, err := afero.ReadFile(fsys, userPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", userPath)
	}
	user, err := parsePresets(data)
	if err != nil {
		return nil, err
	}
	for name, preset := range user {
		presets[name] = preset
	}
	return presets, nil
}

// PresetNames lists preset names in stable order.
func PresetNames(presets map[string]Record) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset merges a named override bundle onto base. Presets carry no
// mechanism of their own; this is ApplyOverrides with a friendlier name.
func ApplyPreset(base Config, preset Record) (Config, error) {
	return base.ApplyOverrides(preset)
}

func parsePresets(data []byte) (map[string]Record, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrPresetInvalid, "failed to parse presets")
	}
	presets := make(map[string]Record, len(raw))
	for name, value := range raw {
		record, ok := value.(map[string]any)
		if !ok {
			return nil, errors.Newf(errors.ErrPresetInvalid, "preset %q must be a table", name)
		}
		presets[name] = record
	}
	return presets, nil
}
