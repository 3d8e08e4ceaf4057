// Package prefs provides JSON-based preferences for the headless tools.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const prefsFile = "preferences.json"

// Prefs stores preferences as a key-value map backed by a JSON file
type Prefs struct {
	mu     sync.RWMutex
	values map[string]string
	path   string
}

// DefaultPath returns ~/.config/gomassing/preferences.json
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "gomassing", prefsFile)
}

// Load reads preferences from path. A missing file yields empty preferences.
func Load(path string) (*Prefs, error) {
	p := &Prefs{
		values: make(map[string]string),
		path:   path,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	if err := json.Unmarshal(data, &p.values); err != nil {
		return nil, fmt.Errorf("failed to parse preferences %s: %w", path, err)
	}
	if p.values == nil {
		p.values = make(map[string]string)
	}
	return p, nil
}

// Path returns the file the preferences are saved to
func (p *Prefs) Path() string {
	return p.path
}

// Save writes preferences to disk
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// String returns a string preference, or "" if not set
func (p *Prefs) String(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.values[key]
}

// SetString stores a string preference
func (p *Prefs) SetString(key string, val string) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// Remove deletes a preference
func (p *Prefs) Remove(key string) {
	p.mu.Lock()
	delete(p.values, key)
	p.mu.Unlock()
}
