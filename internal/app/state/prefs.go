package state

import (
	"sync"

	"github.com/slatetrack/slatetrack/internal/app/storage"
	"github.com/slatetrack/slatetrack/internal/app/system/normalize"
)

// PrefsState holds UI preferences. Currently just the color theme, which
// defaults to light and persists across restarts. Safe for concurrent
// use.
type PrefsState struct {
	kv    storage.KV
	mu    sync.Mutex
	theme string
}

func newPrefsState(kv storage.KV) *PrefsState {
	s := &PrefsState{kv: kv, theme: normalize.ThemeLight}
	var saved string
	if kv.Get(storage.ThemeKey, &saved) {
		s.theme = normalize.Theme(saved)
	}
	return s
}

// Theme returns the active theme, "light" or "dark".
func (s *PrefsState) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme persists the given theme, coercing unknown values to light,
// and returns the applied value.
func (s *PrefsState) SetTheme(theme string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setThemeLocked(theme)
}

// setThemeLocked normalizes and persists theme. Caller holds mu.
func (s *PrefsState) setThemeLocked(theme string) (string, error) {
	s.theme = normalize.Theme(theme)
	if err := s.kv.Set(storage.ThemeKey, s.theme); err != nil {
		return "", err
	}
	return s.theme, nil
}

// ToggleTheme flips between light and dark.
func (s *PrefsState) ToggleTheme() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := normalize.ThemeDark
	if s.theme == normalize.ThemeDark {
		next = normalize.ThemeLight
	}
	return s.setThemeLocked(next)
}
