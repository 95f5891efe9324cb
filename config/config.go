// Package config provides configuration loading and management for schemaspell.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultWatchDebounce is used when spell_watch_debounce is unset.
const DefaultWatchDebounce = 500 * time.Millisecond

// Config holds the spell-check options. It is built once at process entry
// and passed read-only into the checker.
type Config struct {
	// CheckProps, when non-empty, restricts checking to these properties.
	CheckProps []string `yaml:"spell_check_props,omitempty"`
	// IgnoreProps lists properties that are never checked.
	// Nil means DefaultIgnoreProps.
	IgnoreProps []string `yaml:"spell_check_ignore_props,omitempty"`
	// TextOnly checks quoted values only and skips property names.
	TextOnly bool `yaml:"spell_check_text_only,omitempty"`
	// Allowlist is a comma-separated list of globs of word-list files.
	Allowlist string `yaml:"spell_allowlist,omitempty"`
	// AllowWords are extra known words.
	AllowWords WordList `yaml:"spell_allow_words,omitempty"`
	// Output is the destination of the error report.
	Output string `yaml:"spell_check_output,omitempty"`
	// BaseLexicon lists globs of extra lexicon files merged into the
	// embedded base lexicon.
	BaseLexicon string `yaml:"spell_base_lexicon,omitempty"`
	// CountersOutput is where counters are dumped in Prometheus text format.
	CountersOutput string `yaml:"spell_counters_output,omitempty"`
	// WatchDebounce is how long watch mode waits for more changes.
	WatchDebounce string `yaml:"spell_watch_debounce,omitempty"`
}

// DefaultIgnoreProps returns the properties skipped when no ignore list is
// configured: language-tagged names, URL and JSON valued fields and opaque
// keys.
func DefaultIgnoreProps() []string {
	return []string{
		"nameWithLanguage",

		"url",
		"descriptionUrl",
		"license",
		"sourceDataUrl",
		"cachedSourceDataUrl",
		"dataTransformationLogic",

		"geoJsonCoordinates",
		"geoJsonCoodinatesDP1",
		"geoJsonCoodinatesDP2",
		"geoJsonCoodinatesDP3",

		"keyString",
	}
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		AllowWords:    WordList{"dcs", "dcid"},
		WatchDebounce: DefaultWatchDebounce.String(),
	}
}

// EffectiveIgnoreProps returns IgnoreProps, or the default set when unset.
func (c *Config) EffectiveIgnoreProps() []string {
	if c.IgnoreProps == nil {
		return DefaultIgnoreProps()
	}
	return c.IgnoreProps
}

// GetWatchDebounce returns the watch debounce as a duration.
func (c *Config) GetWatchDebounce() time.Duration {
	if c.WatchDebounce == "" {
		return DefaultWatchDebounce
	}
	d, err := time.ParseDuration(c.WatchDebounce)
	if err != nil || d <= 0 {
		return DefaultWatchDebounce
	}
	return d
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	for _, p := range c.CheckProps {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("spell_check_props contains an empty property")
		}
	}
	for _, p := range c.IgnoreProps {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("spell_check_ignore_props contains an empty property")
		}
	}
	if c.WatchDebounce != "" {
		d, err := time.ParseDuration(c.WatchDebounce)
		if err != nil {
			return fmt.Errorf("spell_watch_debounce: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("spell_watch_debounce must be positive")
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// configHeader starts every saved configuration file.
const configHeader = "# schemaspell configuration\n# Environment variables SCHEMASPELL_* and command line flags override these values.\n"

// SaveToFile writes the configuration as YAML to path, creating parent
// directories.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if len(other.CheckProps) > 0 {
		c.CheckProps = other.CheckProps
	}
	if other.IgnoreProps != nil {
		c.IgnoreProps = other.IgnoreProps
	}
	if other.TextOnly {
		c.TextOnly = true
	}
	if other.Allowlist != "" {
		c.Allowlist = other.Allowlist
	}
	if len(other.AllowWords) > 0 {
		c.AllowWords = other.AllowWords
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if other.BaseLexicon != "" {
		c.BaseLexicon = other.BaseLexicon
	}
	if other.CountersOutput != "" {
		c.CountersOutput = other.CountersOutput
	}
	if other.WatchDebounce != "" {
		c.WatchDebounce = other.WatchDebounce
	}
}
