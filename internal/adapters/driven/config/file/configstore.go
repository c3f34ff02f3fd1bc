package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/feezz8/toll-aggregation/internal/core/ports/driven"
	"github.com/feezz8/toll-aggregation/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

const (
	// DefaultDirName is the config directory created under the user's home.
	DefaultDirName = ".se2460"

	// DefaultFileName is the config file used when no path is given.
	DefaultFileName = "config.json"
)

// ConfigStore is a file-based implementation of driven.ConfigStore.
// Every call goes back to disk: Get re-reads the file and Set performs a
// read-merge-write, so the store never serves stale values and never drops
// keys written by someone else between two commands.
//
// The file format follows the extension: .json (comments allowed when
// reading), .toml, or .yaml/.yml.
type ConfigStore struct {
	mu       sync.Mutex // serialises read-merge-write within this process
	filePath string
	codec    codec
}

// NewConfigStore creates a config store backed by path.
// If path is empty, defaults to ~/.se2460/config.json.
// The parent directory is created if needed; the file itself is only
// created by the first Set.
func NewConfigStore(path string) (*ConfigStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName, DefaultFileName)
	}

	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	return &ConfigStore{
		filePath: path,
		codec:    c,
	}, nil
}

// Get retrieves a configuration value by key.
// A missing, unreadable or malformed file reports every key as absent.
func (s *ConfigStore) Get(key string) (string, bool) {
	record, err := s.load()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("config %s unreadable, treating %q as absent: %v", s.filePath, key, err)
		}
		return "", false
	}

	val, ok := record[key]
	return val, ok
}

// Set stores a value and persists the whole record immediately.
// Keys this client does not understand, including lists, nulls and nested
// tables, are written back untouched.
func (s *ConfigStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadForUpdate()
	parent, leaf := locate(doc, key)
	parent[leaf] = value
	return s.save(doc)
}

// Unset removes a key and persists the whole record immediately.
func (s *ConfigStore) Unset(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadForUpdate()
	parent, leaf := locate(doc, key)
	if _, ok := parent[leaf]; !ok {
		if _, err := os.Stat(s.filePath); errors.Is(err, fs.ErrNotExist) {
			// Nothing stored yet; don't create an empty file just to remove a key.
			return nil
		}
	}
	delete(parent, leaf)
	return s.save(doc)
}

// All returns a copy of every stored key.
func (s *ConfigStore) All() map[string]string {
	record, err := s.load()
	if err != nil {
		return map[string]string{}
	}
	return record
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// loadForUpdate reads the decoded document for a read-merge-write.
// A file that cannot be parsed is replaced rather than blocking the write.
func (s *ConfigStore) loadForUpdate() map[string]any {
	doc, err := s.decode()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("config %s unreadable, starting from an empty record: %v", s.filePath, err)
		}
		return make(map[string]any)
	}
	return doc
}

// decode reads the file into its document tree.
func (s *ConfigStore) decode() (map[string]any, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, err
	}

	doc, err := s.codec.decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(s.filePath), err)
	}
	return doc, nil
}

// load reads the file as a flat string record.
func (s *ConfigStore) load() (map[string]string, error) {
	doc, err := s.decode()
	if err != nil {
		return nil, err
	}

	record := make(map[string]string, len(doc))
	for key, value := range flattenMap(doc, "") {
		if str, ok := stringify(value); ok {
			record[key] = str
		}
	}
	return record, nil
}

// save writes the complete record to a temporary file and renames it over
// the config file, so a reader sees either the old or the new record.
func (s *ConfigStore) save(doc map[string]any) error {
	data, err := s.codec.encode(doc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	// Write with restricted permissions
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpName, s.filePath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.Debug("saved %d top-level key(s) to %s", len(doc), s.filePath)
	return nil
}

// locate finds the table holding a dotted key, so a key read from a nested
// table is written back there. Keys with no existing table path live at the
// top level.
func locate(doc map[string]any, key string) (map[string]any, string) {
	if _, ok := doc[key]; ok {
		return doc, key
	}

	parts := strings.Split(key, ".")
	table := doc
	for _, part := range parts[:len(parts)-1] {
		nested, ok := table[part].(map[string]any)
		if !ok {
			return doc, key
		}
		table = nested
	}
	return table, parts[len(parts)-1]
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// stringify renders scalar values as strings. Null values (written by
// older clients on logout) and lists are skipped.
func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case []any:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}
