package settings

import (
	"encoding/json"
	"os"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"

	"github.com/vitebski/sqlite-excel-exporter/pkg/models"
)

// DefaultFileName is where settings live unless the caller picks a path.
const DefaultFileName = "settings.json"

// Recognized settings keys.
const (
	KeyDBPath               = "db_path"
	KeyAutoSync             = "auto_sync"
	KeySyncInterval         = "sync_interval"
	KeySelectedTable        = "selected_table"
	KeyLastConnectionStatus = "last_connection_status"
	KeyWindowSize           = "window_size"
	KeyTableDisplayRows     = "table_display_rows"
)

// Defaults returns the default value for every recognized key.
// auto_sync and sync_interval are persisted for the front end but no
// scheduler acts on them.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		KeyDBPath:               "",
		KeyAutoSync:             false,
		KeySyncInterval:         "Daily",
		KeySelectedTable:        "",
		KeyLastConnectionStatus: false,
		KeyWindowSize:           []int{800, 750},
		KeyTableDisplayRows:     12,
	}
}

// Store loads, merges and persists the flat settings record. Loaded
// values win per key over defaults; keys the defaults do not know are
// preserved untouched.
type Store struct {
	Path   string
	Logger *logrus.Logger

	k *koanf.Koanf
}

// NewStore creates a settings store bound to path.
func NewStore(path string, logger *logrus.Logger) *Store {
	if path == "" {
		path = DefaultFileName
	}
	return &Store{
		Path:   path,
		Logger: logger,
		k:      koanf.New("."),
	}
}

// Load initializes the record from defaults and merges the settings file
// on top if one exists. A missing file is not an error; a malformed file
// is logged and leaves the defaults in place. Load never fails startup.
func (s *Store) Load() {
	s.k = koanf.New(".")
	if err := s.k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		s.Logger.Errorf("Error loading default settings: %v", err)
	}

	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		s.Logger.Debugf("No settings file at %s, using defaults", s.Path)
		return
	}

	// Parse into a scratch instance first so a malformed file cannot
	// leave the record half-merged
	loaded := koanf.New(".")
	if err := loaded.Load(file.Provider(s.Path), kjson.Parser()); err != nil {
		s.Logger.Warningf("Error loading settings from %s, falling back to defaults: %v", s.Path, err)
		return
	}

	if err := s.k.Merge(loaded); err != nil {
		s.Logger.Warningf("Error merging settings from %s: %v", s.Path, err)
		return
	}

	s.Logger.Infof("Loaded settings from %s", s.Path)
}

// Save serializes the record to the settings file, pretty-printed,
// overwriting what was there.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.k.Raw(), "", "    ")
	if err != nil {
		return &models.ConfigError{Path: s.Path, Err: err}
	}

	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		s.Logger.Errorf("Error saving settings to %s: %v", s.Path, err)
		return &models.ConfigError{Path: s.Path, Err: err}
	}

	s.Logger.Infof("Saved settings to %s", s.Path)
	return nil
}

// Set stores a value under key in the in-memory record.
func (s *Store) Set(key string, value interface{}) {
	if err := s.k.Set(key, value); err != nil {
		s.Logger.Errorf("Error setting %s: %v", key, err)
	}
}

// Get returns the raw value under key, nil when absent.
func (s *Store) Get(key string) interface{} {
	return s.k.Get(key)
}

// String returns the string value under key.
func (s *Store) String(key string) string {
	return s.k.String(key)
}

// Bool returns the boolean value under key.
func (s *Store) Bool(key string) bool {
	return s.k.Bool(key)
}

// Int returns the integer value under key.
func (s *Store) Int(key string) int {
	return s.k.Int(key)
}

// WindowSize returns the persisted window geometry, falling back to the
// default when the stored value is unusable.
func (s *Store) WindowSize() (int, int) {
	size := s.k.Ints(KeyWindowSize)
	if len(size) != 2 {
		return 800, 750
	}
	return size[0], size[1]
}

// All returns a copy of the full record, unknown keys included.
func (s *Store) All() map[string]interface{} {
	return s.k.Raw()
}
