// Package config provides configuration helpers and TOML parsing.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/keydrill/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game GameConfig `toml:"game"`
}

// GameConfig maps drill settings. Unset keys keep their defaults.
type GameConfig struct {
	Duration    *int  `toml:"duration"`
	History     *int  `toml:"history"`
	Future      *int  `toml:"future"`
	Lowercase   *bool `toml:"lowercase"`
	Uppercase   *bool `toml:"uppercase"`
	Digits      *bool `toml:"digits"`
	Punctuation *bool `toml:"punctuation"`
	TenFinger   *bool `toml:"ten-finger"`
	Hardcore    *bool `toml:"hardcore"`
}

// ConfigLoadError reports a config file that exists but cannot be used.
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("failed to load config %s: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, &ConfigLoadError{Path: path, Err: fmt.Errorf("config path is empty")}
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, &ConfigLoadError{Path: path, Err: fmt.Errorf("failed to stat config: %w", err)}
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, &ConfigLoadError{Path: path, Err: fmt.Errorf("failed to decode config: %w", err)}
	}
	return cfg, nil
}

// Apply overlays the set config values onto s.
func (c GameConfig) Apply(s model.Settings) model.Settings {
	setInt(&s.DurationSec, c.Duration)
	setInt(&s.HistoryLength, c.History)
	setInt(&s.FutureLength, c.Future)
	setBool(&s.Categories.Lowercase, c.Lowercase)
	setBool(&s.Categories.Uppercase, c.Uppercase)
	setBool(&s.Categories.Digits, c.Digits)
	setBool(&s.Categories.Punctuation, c.Punctuation)
	setBool(&s.TenFingerHint, c.TenFinger)
	setBool(&s.Hardcore, c.Hardcore)
	return s
}

// LoadSettings returns the settings stored at path. Any load failure yields
// the defaults together with the error, so callers can log and carry on.
func LoadSettings(path string) (model.Settings, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return model.DefaultSettings(), err
	}
	return cfg.Game.Apply(model.DefaultSettings()), nil
}

// SaveSettings writes every setting to the [game] table at path.
func SaveSettings(path string, s model.Settings) error {
	cfg := FileConfig{Game: GameConfig{
		Duration:    &s.DurationSec,
		History:     &s.HistoryLength,
		Future:      &s.FutureLength,
		Lowercase:   &s.Categories.Lowercase,
		Uppercase:   &s.Categories.Uppercase,
		Digits:      &s.Categories.Digits,
		Punctuation: &s.Categories.Punctuation,
		TenFinger:   &s.TenFingerHint,
		Hardcore:    &s.Hardcore,
	}}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if _, err := fmt.Fprintln(writer, "# keydrill configuration"); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := toml.NewEncoder(writer).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush config: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// EnsureTemplate writes DefaultTemplate to path unless a file already exists.
// It reports whether the file was created.
func EnsureTemplate(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create config: %w", err)
	}
	if _, err := f.WriteString(DefaultTemplate()); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to close config: %w", err)
	}
	return true, nil
}

// DefaultTemplate returns a commented config file listing every key.
func DefaultTemplate() string {
	d := model.DefaultSettings()
	return fmt.Sprintf(`# keydrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# duration = %d           # Session length in seconds
# history = %d            # Typed characters kept on screen
# future = %d             # Upcoming characters shown
# lowercase = %t       # Include a-z
# uppercase = %t      # Include A-Z
# digits = %t         # Include 0-9
# punctuation = %t    # Include punctuation
# ten-finger = %t     # Show which finger types the target
# hardcore = %t       # End the session on the first mistake
`,
		d.DurationSec,
		d.HistoryLength,
		d.FutureLength,
		d.Categories.Lowercase,
		d.Categories.Uppercase,
		d.Categories.Digits,
		d.Categories.Punctuation,
		d.TenFingerHint,
		d.Hardcore,
	)
}

func setInt(target, value *int) {
	if value != nil {
		*target = *value
	}
}

func setBool(target, value *bool) {
	if value != nil {
		*target = *value
	}
}
