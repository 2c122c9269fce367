// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultDisplayHost   = "host.docker.internal"
	DefaultDisplayNumber = 0
	DefaultAppName       = "XQuartz"
	DefaultLaunchWait    = "2s"
)

// Config represents the xbridge configuration.
type Config struct {
	Display DisplayConfig `toml:"display"`
	XQuartz XQuartzConfig `toml:"xquartz"`
	Shell   ShellConfig   `toml:"shell"`
}

// DisplayConfig describes the X11 display target handed to containers.
type DisplayConfig struct {
	Host   string `toml:"host"`   // Host alias reachable from inside the container
	Number int    `toml:"number"` // X display index
	// ExtraAccess lists additional hosts to authorize via xhost
	// on top of the display host itself.
	ExtraAccess []string `toml:"extra_access"`
}

// XQuartzConfig holds XQuartz launch behaviour.
type XQuartzConfig struct {
	AppName    string `toml:"app_name"`    // Application name passed to `open -a`
	LaunchWait string `toml:"launch_wait"` // Upper bound on the post-launch readiness wait
}

// ShellConfig holds shell profile persistence settings.
type ShellConfig struct {
	RCFile  string `toml:"rc_file"` // Explicit rc file path (empty = derive from $SHELL)
	Persist bool   `toml:"persist"` // Append the DISPLAY export to the rc file
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Host:        DefaultDisplayHost,
			Number:      DefaultDisplayNumber,
			ExtraAccess: []string{},
		},
		XQuartz: XQuartzConfig{
			AppName:    DefaultAppName,
			LaunchWait: DefaultLaunchWait,
		},
		Shell: ShellConfig{
			RCFile:  "", // Derive from $SHELL
			Persist: true,
		},
	}
}

// LaunchWait parses the configured launch wait duration.
// Falls back to the default when the value doesn't parse.
func (c *Config) LaunchWait() time.Duration {
	d, err := time.ParseDuration(c.XQuartz.LaunchWait)
	if err != nil || d < 0 {
		d, _ = time.ParseDuration(DefaultLaunchWait)
	}
	return d
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "xbridge", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
