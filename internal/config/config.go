package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"

	"github.com/gerunddev/todotree/internal/render"
	"github.com/gerunddev/todotree/internal/todo"
)

// Config represents the todotree configuration
type Config struct {
	MinDepth        int           `json:"min_depth"`
	Strict          bool          `json:"strict"`
	MaxNesting      int           `json:"max_nesting"`
	Format          string        `json:"format"`
	LogFile         string        `json:"log_file,omitempty"`
	LogLevel        string        `json:"log_level"`
	Interval        time.Duration `json:"-"` // Custom JSON handling below
	ExcludePatterns []string      `json:"exclude_patterns,omitempty"`
}

// rawConfig mirrors Config with the interval as a duration string
type rawConfig struct {
	MinDepth        int      `json:"min_depth"`
	Strict          bool     `json:"strict"`
	MaxNesting      int      `json:"max_nesting"`
	Format          string   `json:"format"`
	LogFile         string   `json:"log_file,omitempty"`
	LogLevel        string   `json:"log_level"`
	Interval        string   `json:"interval"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		MinDepth:        todo.DefaultMinDepth,
		MaxNesting:      todo.DefaultMaxNesting,
		Format:          string(render.FormatTree),
		LogLevel:        "warn",
		Interval:        2 * time.Second,
		ExcludePatterns: []string{},
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "todotree", "config.json")
	}
	return filepath.Join(home, ".config", "todotree", "config.json")
}

// StateFilePath returns the path to the scan state file
// Uses platform-specific XDG data directory
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "todotree", "state.json")
}

// Load reads configuration from the config file, falling back to defaults
// for a missing file and for fields the file leaves out
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	def := DefaultConfig()
	raw := rawConfig{
		MinDepth:   def.MinDepth,
		MaxNesting: def.MaxNesting,
		Format:     def.Format,
		LogLevel:   def.LogLevel,
		Interval:   def.Interval.String(),
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	interval, err := time.ParseDuration(raw.Interval)
	if err != nil {
		return nil, fmt.Errorf("invalid interval format '%s': %w", raw.Interval, err)
	}

	excludePatterns := raw.ExcludePatterns
	if excludePatterns == nil {
		excludePatterns = []string{}
	}

	cfg := &Config{
		MinDepth:        raw.MinDepth,
		Strict:          raw.Strict,
		MaxNesting:      raw.MaxNesting,
		Format:          raw.Format,
		LogFile:         raw.LogFile,
		LogLevel:        raw.LogLevel,
		Interval:        interval,
		ExcludePatterns: excludePatterns,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config file
func (c *Config) Save() error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := rawConfig{
		MinDepth:        c.MinDepth,
		Strict:          c.Strict,
		MaxNesting:      c.MaxNesting,
		Format:          c.Format,
		LogFile:         c.LogFile,
		LogLevel:        c.LogLevel,
		Interval:        c.Interval.String(),
		ExcludePatterns: c.ExcludePatterns,
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MinDepth < 1 || c.MinDepth > 6 {
		return fmt.Errorf("min_depth must be between 1 and 6")
	}
	if c.MaxNesting < 1 {
		return fmt.Errorf("max_nesting must be positive")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level '%s': %w", c.LogLevel, err)
	}
	for _, pattern := range c.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}
	return nil
}

// ParseOptions returns the parser options the configuration selects
func (c *Config) ParseOptions() todo.Options {
	return todo.Options{
		MinDepth:   c.MinDepth,
		Strict:     c.Strict,
		MaxNesting: c.MaxNesting,
	}
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
