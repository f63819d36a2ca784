// Package settings implements a flat TOML document of [Group] tables
// holding typed key/value pairs, persisted with github.com/BurntSushi/toml.
// No settings UI is built — only Get*/Set*/Load/Save.
package settings

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Settings is a flat group/key store, e.g. Settings["Pkg"]["MaxParallelProcesses"].
type Settings struct {
	path   string
	groups map[string]map[string]any
}

// New creates an empty, unpersisted settings store.
func New() *Settings {
	return &Settings{groups: make(map[string]map[string]any)}
}

// Load reads a TOML settings file. A missing file is not an error — it
// yields an empty store so callers can rely on defaults.
func Load(path string) (*Settings, error) {
	s := &Settings{path: path, groups: make(map[string]map[string]any)}

	var raw map[string]map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	s.groups = raw
	return s, nil
}

// Save writes the store back to its path (or to path if given).
func (s *Settings) Save(path string) error {
	if path == "" {
		path = s.path
	}
	if path == "" {
		return fmt.Errorf("settings: no path to save to")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("settings: create %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(s.groups)
}

func (s *Settings) group(name string) map[string]any {
	g, ok := s.groups[name]
	if !ok {
		g = make(map[string]any)
		s.groups[name] = g
	}
	return g
}

// GetInt returns group/key as an int, or def if absent or of the wrong type.
func (s *Settings) GetInt(group, key string, def int) int {
	v, ok := s.groups[group][key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return def
	}
}

// SetInt sets group/key to an integer value.
func (s *Settings) SetInt(group, key string, value int) {
	s.group(group)[key] = int64(value)
}

// GetString returns group/key as a string, or def if absent or of the
// wrong type.
func (s *Settings) GetString(group, key, def string) string {
	v, ok := s.groups[group][key]
	if !ok {
		return def
	}
	str, ok := v.(string)
	if !ok {
		return def
	}
	return str
}

// SetString sets group/key to a string value.
func (s *Settings) SetString(group, key, value string) {
	s.group(group)[key] = value
}

// GetBool returns group/key as a bool, or def if absent or of the wrong
// type.
func (s *Settings) GetBool(group, key string, def bool) bool {
	v, ok := s.groups[group][key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// SetBool sets group/key to a boolean value.
func (s *Settings) SetBool(group, key string, value bool) {
	s.group(group)[key] = value
}

// DefaultMaxParallelProcesses is the default worker count for package
// file-list enumeration when no setting overrides it.
const DefaultMaxParallelProcesses = 6

// MaxParallelProcesses reads Pkg/MaxParallelProcesses, falling back to
// DefaultMaxParallelProcesses.
func (s *Settings) MaxParallelProcesses() int {
	return s.GetInt("Pkg", "MaxParallelProcesses", DefaultMaxParallelProcesses)
}
