package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvConfigDir, "/custom/config")
	t.Setenv(EnvDataDir, "/custom/data")
	t.Setenv(EnvStateDir, "/custom/state")
	t.Setenv(EnvCacheDir, "/custom/cache")

	p := New()

	assert.Equal(t, "/custom/config", p.ConfigDir())
	assert.Equal(t, "/custom/data", p.DataDir())
	assert.Equal(t, "/custom/state", p.StateDir())
	assert.Equal(t, "/custom/cache", p.CacheDir())
	assert.Equal(t, filepath.Join("/custom/config", "config.json"), p.ConfigFile())
	assert.Equal(t, filepath.Join("/custom/config", "presets.toml"), p.PresetsFile())
	assert.Equal(t, filepath.Join("/custom/state", "vidra.log"), p.LogFile())
}

func TestEngineDirDefaultsUnderData(t *testing.T) {
	t.Setenv(EnvDataDir, "/custom/data")
	t.Setenv(EnvEngineDir, "")

	p := New()
	assert.Equal(t, filepath.Join("/custom/data", "third_party", "mpv"), p.EngineLibraryDir())
}

func TestEngineDirOverride(t *testing.T) {
	t.Setenv(EnvEngineDir, "/opt/mpv")

	p := New()
	assert.Equal(t, "/opt/mpv", p.EngineLibraryDir())
}

func TestNewWithRoot(t *testing.T) {
	p := NewWithRoot("/tmp/vidra-test")

	assert.Equal(t, filepath.Join("/tmp/vidra-test", "config"), p.ConfigDir())
	assert.Equal(t, filepath.Join("/tmp/vidra-test", "data", "third_party", "mpv"), p.EngineLibraryDir())
	assert.Equal(t, filepath.Join("/tmp/vidra-test", "state", "vidra.log"), p.LogFile())
}
