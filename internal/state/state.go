package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent user preferences.
type State struct {
	LayoutMode    string `json:"layoutMode,omitempty"`    // "grid", "masonry" or "list"
	ListDirection string `json:"listDirection,omitempty"` // "vertical" or "horizontal"
	FocusedCardID string `json:"focusedCardId,omitempty"` // card focused at exit
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "cardview"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	mu.Lock()
	path = filepath.Join(dir, "state.json")
	mu.Unlock()
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	if err := json.Unmarshal(data, current); err != nil {
		return fmt.Errorf("parse state: %w", err)
	}
	return nil
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// update applies fn to the current state and saves.
func update(fn func(*State)) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	fn(current)
	mu.Unlock()
	return Save()
}

// GetLayoutMode returns the saved layout mode, or "" if none.
func GetLayoutMode() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.LayoutMode
}

// SetLayoutMode saves the layout mode.
func SetLayoutMode(mode string) error {
	return update(func(s *State) { s.LayoutMode = mode })
}

// GetListDirection returns the saved list direction, or "" if none.
func GetListDirection() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.ListDirection
}

// SetListDirection saves the list direction.
func SetListDirection(dir string) error {
	return update(func(s *State) { s.ListDirection = dir })
}

// GetFocusedCardID returns the card focused when the app last exited.
func GetFocusedCardID() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.FocusedCardID
}

// SetFocusedCardID saves the focused card.
func SetFocusedCardID(id string) error {
	return update(func(s *State) { s.FocusedCardID = id })
}
