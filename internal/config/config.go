// Package config handles configuration loading, validation, and management
// for passentropy.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Version is the current configuration schema version.
const Version = 1

// Config holds the complete configuration.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version" json:"version" yaml:"version"`

	// Dictionaries selects the ranked word lists.
	Dictionaries DictionaryConfig `toml:"dictionaries" json:"dictionaries" yaml:"dictionaries"`

	// Keyboards selects the layouts walked by the spatial matcher.
	Keyboards KeyboardConfig `toml:"keyboards" json:"keyboards" yaml:"keyboards"`

	// Dates configures date and year pricing.
	Dates DateConfig `toml:"dates" json:"dates" yaml:"dates"`

	// Engine configures how an estimate runs.
	Engine EngineConfig `toml:"engine" json:"engine" yaml:"engine"`

	// Policy is the acceptance policy used by the check command.
	Policy PolicyConfig `toml:"policy" json:"policy" yaml:"policy"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// DictionaryConfig holds word list configuration.
type DictionaryConfig struct {
	// Builtin enables the bundled frequency lists.
	Builtin bool `toml:"builtin" json:"builtin" yaml:"builtin"`

	// Files are extra word lists, one word per line with an optional rank.
	// Relative paths are resolved against the config file's directory.
	Files []string `toml:"files" json:"files" yaml:"files"`
}

// KeyboardConfig holds keyboard layout configuration.
type KeyboardConfig struct {
	// Layouts names built-in layouts: qwerty, qwerty_uk, dvorak, keypad, mac_keypad.
	Layouts []string `toml:"layouts" json:"layouts" yaml:"layouts"`
}

// DateConfig holds date pricing configuration.
type DateConfig struct {
	// ReferenceYear is the year considered most likely in a password.
	ReferenceYear int `toml:"reference_year" json:"reference_year" yaml:"reference_year"`
}

// EngineConfig holds estimation engine configuration.
type EngineConfig struct {
	// Concurrent runs the matchers of an estimate in parallel.
	Concurrent bool `toml:"concurrent" json:"concurrent" yaml:"concurrent"`
}

// PolicyConfig holds acceptance rules.
type PolicyConfig struct {
	MinLength      int     `toml:"min_length" json:"min_length" yaml:"min_length"`
	MaxLength      int     `toml:"max_length" json:"max_length" yaml:"max_length"`
	RequireLower   bool    `toml:"require_lower" json:"require_lower" yaml:"require_lower"`
	RequireUpper   bool    `toml:"require_upper" json:"require_upper" yaml:"require_upper"`
	RequireNumbers bool    `toml:"require_numbers" json:"require_numbers" yaml:"require_numbers"`
	RequireSymbols bool    `toml:"require_symbols" json:"require_symbols" yaml:"require_symbols"`
	MinEntropy     float64 `toml:"min_entropy" json:"min_entropy" yaml:"min_entropy"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is text or json.
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is stderr, stdout or file.
	Output string `toml:"output" json:"output" yaml:"output"`

	// FilePath is used when Output is file.
	FilePath string `toml:"file_path" json:"file_path" yaml:"file_path"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Version: Version,
		Dictionaries: DictionaryConfig{
			Builtin: true,
		},
		Keyboards: KeyboardConfig{
			Layouts: []string{"qwerty", "qwerty_uk", "dvorak", "keypad", "mac_keypad"},
		},
		Dates: DateConfig{
			ReferenceYear: 2020,
		},
		Policy: PolicyConfig{
			MinLength:  8,
			MaxLength:  128,
			MinEntropy: 36,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
	}
}

// ApplyEnvOverrides applies PASSENTROPY_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PASSENTROPY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PASSENTROPY_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("PASSENTROPY_DICTIONARIES"); v != "" {
		for _, f := range strings.Split(v, string(os.PathListSeparator)) {
			if f = strings.TrimSpace(f); f != "" {
				c.Dictionaries.Files = append(c.Dictionaries.Files, f)
			}
		}
	}
	if v := os.Getenv("PASSENTROPY_REFERENCE_YEAR"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			c.Dates.ReferenceYear = year
		}
	}
	if v := os.Getenv("PASSENTROPY_CONCURRENT"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Engine.Concurrent = on
		}
	}
	if v := os.Getenv("PASSENTROPY_MIN_ENTROPY"); v != "" {
		if bits, err := strconv.ParseFloat(v, 64); err == nil {
			c.Policy.MinEntropy = bits
		}
	}
}

// resolvePaths makes relative word list paths relative to dir.
func (c *Config) resolvePaths(dir string) {
	for i, f := range c.Dictionaries.Files {
		if !filepath.IsAbs(f) {
			c.Dictionaries.Files[i] = filepath.Join(dir, f)
		}
	}
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "passentropy", "config.toml")
	}
	return filepath.Join(".passentropy", "config.toml")
}

// Summary returns a one-line description for diagnostics.
func (c *Config) Summary() string {
	return fmt.Sprintf("builtin=%t files=%d layouts=%s reference_year=%d concurrent=%t",
		c.Dictionaries.Builtin, len(c.Dictionaries.Files), strings.Join(c.Keyboards.Layouts, ","),
		c.Dates.ReferenceYear, c.Engine.Concurrent)
}
