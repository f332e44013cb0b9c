package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the complete CLI configuration
type Config struct {
	Interpreter InterpreterConfig `toml:"interpreter"`
	Console     ConsoleConfig     `toml:"console"`
	Log         LogConfig         `toml:"log"`
}

// InterpreterConfig bounds program runs
type InterpreterConfig struct {
	MaxSteps int      `toml:"max_steps"`
	Timeout  Duration `toml:"timeout"`
	Seed     int64    `toml:"seed"`
}

// ConsoleConfig holds the interactive console settings
type ConsoleConfig struct {
	Prompt         string `toml:"prompt"`
	ContinuePrompt string `toml:"continue_prompt"`
	HistoryFile    string `toml:"history_file"`
	Color          *bool  `toml:"color"`
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is found
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	cfg.applyDefaults()
	cfg.Console.HistoryFile = os.ExpandEnv(cfg.Console.HistoryFile)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from the ALGORITMO_CONFIG environment
// variable, then from the default locations. Without any file it returns
// Default().
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("ALGORITMO_CONFIG")
	if path != "" {
		return Load(path)
	}

	for _, p := range defaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

func defaultPaths() []string {
	paths := []string{"./algoritmo.toml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "algoritmo", "config.toml"))
	}

	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Console
	if c.Console.Prompt == "" {
		c.Console.Prompt = "algoritmo> "
	}
	if c.Console.ContinuePrompt == "" {
		c.Console.ContinuePrompt = "......... "
	}
	if c.Console.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			c.Console.HistoryFile = filepath.Join(home, ".algoritmo_history")
		}
	}
	if c.Console.Color == nil {
		color := true
		c.Console.Color = &color
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) validate() error {
	if c.Interpreter.MaxSteps < 0 {
		return fmt.Errorf("interpreter.max_steps must not be negative, got %d", c.Interpreter.MaxSteps)
	}
	if c.Interpreter.Timeout.Duration < 0 {
		return fmt.Errorf("interpreter.timeout must not be negative, got %s", c.Interpreter.Timeout)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	return nil
}

// ColorEnabled reports whether diagnostics should be coloured
func (c *Config) ColorEnabled() bool {
	return c.Console.Color == nil || *c.Console.Color
}
