package config

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/vidra-player/vidra/pkg/errors"
	"github.com/vidra-player/vidra/pkg/logging"
)

// MigrationHook transforms a raw pre-validation record loaded from disk.
// It receives the record's declared version (the current schema version when
// the tag is absent, 0 when unreadable) and must return a record; the hook's
// output is not structurally validated here since FromRecord is always the
// final gate.
type MigrationHook func(raw Record, version int) (Record, error)

// Store persists a Config as a JSON file at a fixed path.
//
// A Store performs no locking. Callers issuing overlapping Load/Save calls
// against the same path must serialize access externally.
type Store struct {
	fs        afero.Fs
	path      string
	migration MigrationHook
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithMigrationHook installs the migration hook run on raw records at load.
func WithMigrationHook(hook MigrationHook) StoreOption {
	return func(s *Store) { s.migration = hook }
}

// WithFs substitutes the filesystem used for reads and writes.
func WithFs(fsys afero.Fs) StoreOption {
	return func(s *Store) { s.fs = fsys }
}

// NewStore returns a Store bound to path on the real filesystem unless
// overridden via WithFs.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{fs: afero.NewOsFs(), path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration file and returns the validated Config.
// A missing file is not an error: the built-in defaults are returned.
func (s *Store) Load() (Config, error) {
	logger := logging.GetLogger("config.store")

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return Config{}, errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", s.path)
	}
	if !exists {
		logger.Debug().Str("path", s.path).Msg("config file not found, using defaults")
		return Default(), nil
	}

	raw, err := s.readRaw()
	if err != nil {
		return Config{}, err
	}

	migrated, err := s.runMigration(raw)
	if err != nil {
		return Config{}, err
	}

	cfg, err := FromRecord(migrated)
	if err != nil {
		return Config{}, err
	}
	logger.Debug().Str("path", s.path).Int("version", cfg.Version).Msg("config loaded")
	return cfg, nil
}

// Save serializes cfg and writes it to the store path. The parent directory
// chain is created as needed and the content is written to a temporary file
// renamed into place, so a concurrent reader never sees a truncated file.
func (s *Store) Save(cfg Config) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
		}
	}

	data, err := json.MarshalIndent(cfg.ToRecord(), "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to encode config")
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to rename %s into place", tmp)
	}

	logger := logging.GetLogger("config.store")
	logger.Debug().Str("path", s.path).Msg("config saved")
	return nil
}

// UpdateAndSave loads the current configuration, applies the overrides and
// persists the result, returning the new Config. This is the entry point
// normal callers use to change a setting.
func (s *Store) UpdateAndSave(overrides Record) (Config, error) {
	current, err := s.Load()
	if err != nil {
		return Config{}, err
	}
	updated, err := current.ApplyOverrides(overrides)
	if err != nil {
		return Config{}, err
	}
	if err := s.Save(updated); err != nil {
		return Config{}, err
	}
	return updated, nil
}

func (s *Store) readRaw() (Record, error) {
	f, err := s.fs.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to open %s", s.path)
	}
	defer f.Close()

	var raw Record
	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", s.path)
	}
	return raw, nil
}

// runMigration applies the optional hook and repairs the version tag. Only
// the version floor is enforced here; the hook is trusted to have already
// transformed the data shape, and FromRecord re-checks everything after.
func (s *Store) runMigration(raw Record) (Record, error) {
	if s.migration == nil {
		return raw, nil
	}

	version, _ := recordVersion(raw)
	migrated, err := s.migration(raw, version)
	if err != nil {
		return nil, err
	}
	if migrated == nil {
		return nil, errors.New(errors.ErrMigrationContract, "migration hook returned no record")
	}

	// Only a readable integer version is eligible for the floor bump;
	// a wrong-typed tag stays in place for FromRecord to reject.
	if v, ok := recordVersion(migrated); ok && v < SchemaVersion {
		migrated["version"] = SchemaVersion
	}
	return migrated, nil
}

// recordVersion reads the version tag. An absent tag counts as the current
// schema version; a wrong-typed one yields (0, false).
func recordVersion(raw Record) (int, bool) {
	v, ok := raw["version"]
	if !ok {
		return SchemaVersion, true
	}
	i, err := asInt64(v, "version")
	if err != nil {
		return 0, false
	}
	return int(i), true
}
