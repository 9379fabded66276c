// Package config loads mvncli settings: built-in defaults, then a TOML
// file, then environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variables.
const (
	EnvConfig   = "MVNCLI_CONFIG"
	EnvLang     = "MVNCLI_LANG"
	EnvLog      = "MVNCLI_LOG"
	EnvLogLevel = "MVNCLI_LOG_LEVEL"
	EnvBuildCmd = "MVNCLI_BUILD_CMD"
)

// Project is a directory the build can run in.
type Project struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Duration is a time.Duration written as a string ("15ms") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the effective configuration.
type Config struct {
	Language        string    `toml:"language"`
	Projects        []Project `toml:"projects"`
	Goals           []string  `toml:"goals"`
	BuildCommand    string    `toml:"build_command"`
	TransitionDelay Duration  `toml:"transition_delay"`
	LogPath         string    `toml:"log_path"`
	LogLevel        string    `toml:"log_level"`

	// Source is the file the configuration was read from, empty if none.
	Source string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Language: "en",
		Projects: []Project{
			{Name: "project-a", Path: "project-a"},
			{Name: "project-b", Path: "project-b"},
			{Name: "project-c", Path: "project-c"},
		},
		Goals:           []string{"clean", "compile", "test", "package", "verify", "install"},
		BuildCommand:    "mvn",
		TransitionDelay: Duration{15 * time.Millisecond},
		LogLevel:        "info",
	}
}

// Load returns the defaults overlaid with the config file at path and the
// environment. An empty path means DefaultPath. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.mergeEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath returns MVNCLI_CONFIG, else config.toml in the user config
// directory ($XDG_CONFIG_HOME/mvncli or ~/.config/mvncli).
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mvncli", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mvncli", "config.toml")
}

func (c *Config) mergeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	c.Source = path
	return nil
}

func (c *Config) mergeEnv() {
	if v := os.Getenv(EnvLang); v != "" {
		c.Language = v
	}
	if v := os.Getenv(EnvLog); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvBuildCmd); v != "" {
		c.BuildCommand = v
	}
}

// Validate checks fields the UI cannot work without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BuildCommand) == "" {
		return errors.New("config: build_command is empty")
	}
	for i, p := range c.Projects {
		if p.Name == "" || p.Path == "" {
			return fmt.Errorf("config: project %d needs a name and a path", i)
		}
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}

// BuildArgs splits the build command into program and arguments and
// appends goals.
func (c Config) BuildArgs(goals ...string) (name string, args []string) {
	fields := strings.Fields(c.BuildCommand)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], append(fields[1:], goals...)
}
