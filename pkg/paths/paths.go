// Package paths resolves the filesystem locations vidra uses. Locations are
// carried by an explicitly-constructed Paths value handed to whatever needs
// it, never by package-level globals, so tests can substitute arbitrary
// directories without process-wide side effects.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable overrides. Each replaces the corresponding XDG-derived
// directory wholesale.
const (
	EnvConfigDir = "VIDRA_CONFIG_DIR"
	EnvDataDir   = "VIDRA_DATA_DIR"
	EnvStateDir  = "VIDRA_STATE_DIR"
	EnvCacheDir  = "VIDRA_CACHE_DIR"
	EnvEngineDir = "VIDRA_ENGINE_DIR"
)

const (
	appDirName     = "vidra"
	configFileName = "config.json"
	presetFileName = "presets.toml"
	logFileName    = "vidra.log"
)

// Paths provides the resolved directory layout for one application instance.
type Paths struct {
	configDir string
	dataDir   string
	stateDir  string
	cacheDir  string
	engineDir string
}

// New resolves paths from the environment, falling back to the XDG base
// directories.
func New() *Paths {
	p := &Paths{
		configDir: envOr(EnvConfigDir, filepath.Join(xdg.ConfigHome, appDirName)),
		dataDir:   envOr(EnvDataDir, filepath.Join(xdg.DataHome, appDirName)),
		stateDir:  envOr(EnvStateDir, filepath.Join(xdg.StateHome, appDirName)),
		cacheDir:  envOr(EnvCacheDir, filepath.Join(xdg.CacheHome, appDirName)),
	}
	p.engineDir = envOr(EnvEngineDir, filepath.Join(p.dataDir, "third_party", "mpv"))
	return p
}

// NewWithRoot places every directory under a single root. Intended for tests
// and embedded use.
func NewWithRoot(root string) *Paths {
	p := &Paths{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
		stateDir:  filepath.Join(root, "state"),
		cacheDir:  filepath.Join(root, "cache"),
	}
	p.engineDir = filepath.Join(p.dataDir, "third_party", "mpv")
	return p
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ConfigDir returns the directory holding user configuration.
func (p *Paths) ConfigDir() string { return p.configDir }

// DataDir returns the directory for application data.
func (p *Paths) DataDir() string { return p.dataDir }

// StateDir returns the directory for logs and other mutable state.
func (p *Paths) StateDir() string { return p.stateDir }

// CacheDir returns the directory for disposable cached data.
func (p *Paths) CacheDir() string { return p.cacheDir }

// ConfigFile returns the path of the persisted configuration file.
func (p *Paths) ConfigFile() string { return filepath.Join(p.configDir, configFileName) }

// PresetsFile returns the path of the optional user preset file.
func (p *Paths) PresetsFile() string { return filepath.Join(p.configDir, presetFileName) }

// LogFile returns the path of the application log file.
func (p *Paths) LogFile() string { return filepath.Join(p.stateDir, logFileName) }

// EngineLibraryDir returns the directory expected to contain the media
// engine's shared library (libmpv). The caller is responsible for putting it
// on the loader search path before initializing the engine.
func (p *Paths) EngineLibraryDir() string { return p.engineDir }
