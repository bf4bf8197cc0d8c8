package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tinct/internal/theme"
)

// Options is one immutable snapshot of formatter settings.
type Options struct {
	Prefix          string // written verbatim before the timestamp bracket
	StringPrefix    string // decoration before string values
	StringSuffix    string // decoration after string values
	TimestampFormat string // pattern tokens (HH:mm:ss) or a Go layout
	UseUTC          bool
	Theme           string // empty means the preference or built-in default
	ShowErrors      bool   // append the entry error to the message
	ShowCategory    bool   // print the logger name before the message
}

const (
	defaultConfigPath      = "~/.config/tinct/config.toml"
	defaultTimestampFormat = "HH:mm:ss "
	defaultQuote           = `"`
)

// ErrEmptyPath is returned when a path resolves to nothing.
var ErrEmptyPath = errors.New("path is empty")

// Defaults returns the options used when no config file exists.
func Defaults() Options {
	return Options{
		StringPrefix:    defaultQuote,
		StringSuffix:    defaultQuote,
		TimestampFormat: defaultTimestampFormat,
	}
}

// DefaultPath returns the default config file path, unexpanded.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config file, falling back to defaults when it is
// missing. Keys left out of the file keep their default.
func Load(path string) (Options, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return Options{}, err
	}

	opts := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
		return Options{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Options{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(bytes)
}

// Parse decodes TOML config content on top of Defaults.
func Parse(data []byte) (Options, error) {
	var raw struct {
		Prefix          *string `toml:"prefix"`
		StringPrefix    *string `toml:"string_prefix"`
		StringSuffix    *string `toml:"string_suffix"`
		TimestampFormat string  `toml:"timestamp_format"`
		UseUTC          bool    `toml:"use_utc"`
		Theme           string  `toml:"theme"`
		ShowErrors      bool    `toml:"show_errors"`
		ShowCategory    bool    `toml:"show_category"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Options{}, fmt.Errorf("parse config: %w", err)
	}

	opts := Defaults()
	if raw.Prefix != nil {
		opts.Prefix = *raw.Prefix
	}
	// Explicit empty decorations are honored; they switch quoting off.
	if raw.StringPrefix != nil {
		opts.StringPrefix = *raw.StringPrefix
	}
	if raw.StringSuffix != nil {
		opts.StringSuffix = *raw.StringSuffix
	}
	if strings.TrimSpace(raw.TimestampFormat) != "" {
		opts.TimestampFormat = raw.TimestampFormat
	}
	opts.UseUTC = raw.UseUTC
	opts.ShowErrors = raw.ShowErrors
	opts.ShowCategory = raw.ShowCategory

	if name := strings.TrimSpace(raw.Theme); name != "" {
		th, ok := theme.Lookup(name)
		if !ok {
			return Options{}, fmt.Errorf("parse config: unknown theme %q (available: %s)",
				name, strings.Join(theme.Names(), ", "))
		}
		opts.Theme = th.Name
	}
	return opts, nil
}

// ResolvePath expands path, or the default path when path is blank.
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

// ExpandPath trims path, expands a leading ~ and makes it absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", ErrEmptyPath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
