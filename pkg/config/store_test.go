package config

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidra-player/vidra/pkg/errors"
)

func newMemStore(t *testing.T, opts ...StoreOption) (*Store, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	opts = append(opts, WithFs(fsys))
	return NewStore("/home/user/.config/vidra/config.json", opts...), fsys
}

func writeConfigFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store, _ := newMemStore(t)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFillsDefaultsForMissingKeys(t *testing.T) {
	store, fsys := newMemStore(t)
	writeConfigFile(t, fsys, store.Path(), `{"audio": {"volume": 50}}`)

	cfg, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Audio.Volume)
	assert.False(t, cfg.Audio.Mute)
	assert.Equal(t, LoopNone, cfg.Playback.LoopMode)
	assert.True(t, cfg.Subtitle.Enabled)
	assert.Equal(t, SchemaVersion, cfg.Version)
}

func TestSaveThenLoadIdentity(t *testing.T) {
	store, _ := newMemStore(t)

	lang := "de"
	cfg := Default()
	cfg.Audio.Volume = 95
	cfg.Playback.Speed = 1.75
	cfg.Subtitle.DefaultLanguage = &lang

	require.NoError(t, store.Save(cfg))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewStore("/deep/nested/dir/config.json", WithFs(fsys))

	require.NoError(t, store.Save(Default()))

	exists, err := afero.Exists(fsys, "/deep/nested/dir/config.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSaveLeavesNoTemporaryFile(t *testing.T) {
	store, fsys := newMemStore(t)
	require.NoError(t, store.Save(Default()))

	exists, err := afero.Exists(fsys, store.Path()+".tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateAndSave(t *testing.T) {
	store, fsys := newMemStore(t)

	updated, err := store.UpdateAndSave(Record{
		"audio":    map[string]any{"mute": true, "volume": 70},
		"playback": map[string]any{"loop_mode": LoopFile},
	})
	require.NoError(t, err)
	assert.True(t, updated.Audio.Mute)
	assert.Equal(t, 70, updated.Audio.Volume)
	assert.Equal(t, LoopFile, updated.Playback.LoopMode)

	exists, err := afero.Exists(fsys, store.Path())
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, updated, loaded)
}

func TestMigrationHookInvoked(t *testing.T) {
	var gotVersion int
	hook := func(raw Record, version int) (Record, error) {
		gotVersion = version
		section, _ := raw["subtitle"].(map[string]any)
		if section == nil {
			section = map[string]any{}
		}
		section["enabled"] = true
		raw["subtitle"] = section
		return raw, nil
	}

	store, fsys := newMemStore(t, WithMigrationHook(hook))
	writeConfigFile(t, fsys, store.Path(), `{"version": 0, "audio": {"volume": 40}}`)

	cfg, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, 0, gotVersion)
	assert.Equal(t, SchemaVersion, cfg.Version)
	assert.True(t, cfg.Subtitle.Enabled)
	assert.Equal(t, 40, cfg.Audio.Volume)
}

func TestMigrationHookNotRunForMissingFile(t *testing.T) {
	called := false
	hook := func(raw Record, version int) (Record, error) {
		called = true
		return raw, nil
	}

	store, _ := newMemStore(t, WithMigrationHook(hook))
	_, err := store.Load()
	require.NoError(t, err)
	assert.False(t, called)
}

func TestMigrationHookNilRecordIsContractError(t *testing.T) {
	hook := func(raw Record, version int) (Record, error) {
		return nil, nil
	}

	store, fsys := newMemStore(t, WithMigrationHook(hook))
	writeConfigFile(t, fsys, store.Path(), `{"version": 1}`)

	_, err := store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrMigrationContract, errors.GetErrorCode(err))
}

func TestMigrationHookOutputStillValidated(t *testing.T) {
	// The hook's output is not structurally checked before validation; the
	// final FromRecord gate must catch a bad field it produced.
	hook := func(raw Record, version int) (Record, error) {
		raw["audio"] = map[string]any{"volume": "loud"}
		return raw, nil
	}

	store, fsys := newMemStore(t, WithMigrationHook(hook))
	writeConfigFile(t, fsys, store.Path(), `{"version": 1}`)

	_, err := store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigType, errors.GetErrorCode(err))
}

func TestMigrationHookWrongTypedVersionRejected(t *testing.T) {
	// A non-integer version tag from the hook must not be repaired by the
	// floor bump; FromRecord rejects it as a type error.
	hook := func(raw Record, version int) (Record, error) {
		raw["version"] = "one"
		return raw, nil
	}

	store, fsys := newMemStore(t, WithMigrationHook(hook))
	writeConfigFile(t, fsys, store.Path(), `{"version": 1}`)

	_, err := store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigType, errors.GetErrorCode(err))
}

func TestLoadVersionZeroWithoutHookFails(t *testing.T) {
	store, fsys := newMemStore(t)
	writeConfigFile(t, fsys, store.Path(), `{"version": 0}`)

	_, err := store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigRange, errors.GetErrorCode(err))
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	store, fsys := newMemStore(t)
	writeConfigFile(t, fsys, store.Path(), `{"audio": `)

	_, err := store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigParse, errors.GetErrorCode(err))
}

func TestLoadRejectsInvalidField(t *testing.T) {
	store, fsys := newMemStore(t)
	writeConfigFile(t, fsys, store.Path(), `{"subtitle": {"font_size": 999}}`)

	_, err := store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigRange, errors.GetErrorCode(err))
}

func TestSavedFileShape(t *testing.T) {
	store, fsys := newMemStore(t)
	require.NoError(t, store.Save(Default()))

	data, err := afero.ReadFile(fsys, store.Path())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, float64(SchemaVersion), raw["version"])
	for _, section := range []string{"playback", "subtitle", "audio", "video"} {
		assert.Contains(t, raw, section)
	}
	subtitle := raw["subtitle"].(map[string]any)
	assert.Nil(t, subtitle["default_language"])
}
