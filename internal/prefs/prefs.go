// Package prefs persists choices made interactively, such as the theme picked
// with `tinct pick`. Preferences live in ~/.config/tinct/prefs.toml and only
// apply when the config file leaves the setting blank.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tinct/internal/config"
	"github.com/five82/tinct/internal/theme"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
}

const defaultPrefsPath = "~/.config/tinct/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. A missing, unreadable or malformed file,
// or an unknown theme name, degrades to the default theme.
func Load(path string) (Prefs, error) {
	fallback := Prefs{Theme: theme.Default().Name}

	resolved, err := resolvePath(path)
	if err != nil {
		return fallback, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		return fallback, nil
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fallback, nil
	}

	var p Prefs
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return fallback, nil
	}
	th, ok := theme.Lookup(p.Theme)
	if !ok {
		return fallback, nil
	}
	return Prefs{Theme: th.Name}, nil
}

// Save writes preferences to path, creating directories as needed. The theme
// must name a built-in theme.
func Save(path string, p Prefs) error {
	th, ok := theme.Lookup(p.Theme)
	if !ok {
		return fmt.Errorf("save prefs: unknown theme %q", p.Theme)
	}
	p.Theme = th.Name

	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Apply fills a blank theme in opts from the preferences.
func Apply(opts config.Options, p Prefs) config.Options {
	if strings.TrimSpace(opts.Theme) == "" {
		opts.Theme = p.Theme
	}
	return opts
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	resolved, err := config.ExpandPath(path)
	if errors.Is(err, config.ErrEmptyPath) {
		return "", fmt.Errorf("prefs path: %w", err)
	}
	return resolved, err
}
