package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPresets(t *testing.T) {
	presets, err := BuiltinPresets()
	require.NoError(t, err)
	assert.Equal(t, []string{"cinema", "movie", "music"}, PresetNames(presets))
}

func TestApplyMoviePreset(t *testing.T) {
	presets, err := BuiltinPresets()
	require.NoError(t, err)

	cfg, err := ApplyPreset(Default(), presets["movie"])
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Subtitle.FontSize)
	assert.Equal(t, "ewa_lanczos", cfg.Video.Scaler)
	assert.Equal(t, 90, cfg.Audio.Volume)
	assert.True(t, cfg.Playback.Hwdec)
	// Keys not named by the preset keep their current values.
	assert.Equal(t, Default().Subtitle.Encoding, cfg.Subtitle.Encoding)
}

func TestApplyMusicPreset(t *testing.T) {
	presets, err := BuiltinPresets()
	require.NoError(t, err)

	cfg, err := ApplyPreset(Default(), presets["music"])
	require.NoError(t, err)

	assert.False(t, cfg.Subtitle.Enabled)
	assert.Equal(t, LoopPlaylist, cfg.Playback.LoopMode)
	assert.True(t, cfg.Audio.Normalize)
	assert.False(t, cfg.Video.Deinterlace)
}

func TestApplyCinemaPreset(t *testing.T) {
	presets, err := BuiltinPresets()
	require.NoError(t, err)

	cfg, err := ApplyPreset(Default(), presets["cinema"])
	require.NoError(t, err)

	assert.True(t, cfg.Playback.Hwdec)
	assert.Equal(t, 42, cfg.Subtitle.FontSize)
	assert.Equal(t, "ewa_lanczos", cfg.Video.Scaler)
	assert.Equal(t, Default().Audio, cfg.Audio)
}

func TestLoadPresetsMergesUserFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	userFile := "/config/presets.toml"
	userPresets := `
[movie.audio]
volume = 100

[podcast.playback]
speed = 1.5

[podcast.subtitle]
enabled = false
`
	require.NoError(t, afero.WriteFile(fsys, userFile, []byte(userPresets), 0o644))

	presets, err := LoadPresets(fsys, userFile)
	require.NoError(t, err)

	assert.Equal(t, []string{"cinema", "movie", "music", "podcast"}, PresetNames(presets))

	// User definition replaces the built-in movie preset wholesale.
	cfg, err := ApplyPreset(Default(), presets["movie"])
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Audio.Volume)
	assert.Equal(t, Default().Subtitle.FontSize, cfg.Subtitle.FontSize)

	cfg, err = ApplyPreset(Default(), presets["podcast"])
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Playback.Speed)
	assert.False(t, cfg.Subtitle.Enabled)
}

func TestLoadPresetsMissingUserFile(t *testing.T) {
	presets, err := LoadPresets(afero.NewMemMapFs(), "/nowhere/presets.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"cinema", "movie", "music"}, PresetNames(presets))
}

func TestPresetWithInvalidValueFailsOnApply(t *testing.T) {
	preset := Record{"audio": map[string]any{"volume": 999}}
	_, err := ApplyPreset(Default(), preset)
	require.Error(t, err)
}
