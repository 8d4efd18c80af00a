package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"

	"weekly-reports/internal/logger"
)

// DefaultPrefsFile is the preference file name inside the home directory.
const DefaultPrefsFile = ".weekly"

var prefsJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Preferences is a flat JSON object of user preferences persisted on every
// change. It is independent of the summarization flow.
type Preferences struct {
	path   string
	values map[string]any
}

// ResolvePrefsPath expands a leading "~" and falls back to ~/.weekly.
func ResolvePrefsPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		return filepath.Join(home, DefaultPrefsFile), nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// OpenPreferences loads the store at path. A missing, unreadable or
// malformed file yields an empty store.
func OpenPreferences(path string) (*Preferences, error) {
	resolved, err := ResolvePrefsPath(path)
	if err != nil {
		return nil, err
	}
	p := &Preferences{path: resolved, values: map[string]any{}}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn(context.Background(), "Preferences unreadable, starting empty", "path", resolved, "error", err)
		}
		return p, nil
	}

	var values map[string]any
	if err := prefsJSON.Unmarshal(data, &values); err != nil {
		logger.Warn(context.Background(), "Preferences malformed, starting empty", "path", resolved, "error", err)
		return p, nil
	}
	if values != nil {
		p.values = values
	}
	return p, nil
}

func (p *Preferences) Path() string {
	return p.path
}

// Get returns the value stored under key rendered as a string.
func (p *Preferences) Get(key string) (string, bool) {
	v, ok := p.values[key]
	if !ok {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		b, _ := prefsJSON.Marshal(v)
		return string(b), true
	}
	return s, true
}

// Set stores value under key and saves the file.
func (p *Preferences) Set(key, value string) error {
	p.values[key] = value
	return p.save()
}

// Delete removes key and saves the file. It reports whether key existed.
func (p *Preferences) Delete(key string) (bool, error) {
	if _, ok := p.values[key]; !ok {
		return false, nil
	}
	delete(p.values, key)
	return true, p.save()
}

// Keys returns the stored keys sorted.
func (p *Preferences) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p *Preferences) save() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	data, err := prefsJSON.MarshalIndent(p.values, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}
