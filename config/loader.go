package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// DefaultEnvFile is the dotenv file read by the loader when present.
	DefaultEnvFile = ".env"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SCHEMASPELL_"
)

// ErrConfigExists is returned when a config file would be overwritten.
var ErrConfigExists = errors.New("config file already exists")

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger    *slog.Logger
	envFile   string
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger,
		envFile:   DefaultEnvFile,
		lookupEnv: os.LookupEnv,
	}
}

// WithEnvFile sets the dotenv file consulted for overrides. An empty path
// disables dotenv loading.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// WithLookupEnv replaces the process environment lookup.
func (l *Loader) WithLookupEnv(lookup func(string) (string, bool)) *Loader {
	l.lookupEnv = lookup
	return l
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. YAML config file at path (when path is not empty)
// 3. Dotenv file values
// 4. SCHEMASPELL_* environment variables
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config file", slog.String("path", path))
		config.Merge(fileConfig)
	}

	envConfig, textOnly, err := l.envConfig()
	if err != nil {
		return nil, err
	}
	config.Merge(envConfig)
	// Merge cannot clear a bool, so an explicit env value is applied as is.
	if textOnly != nil {
		config.TextOnly = *textOnly
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Init writes cfg to path as a starting config file. The default ignore
// list is written out so it can be edited. An existing file is only
// replaced when force is set.
func (l *Loader) Init(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	out := *cfg
	out.IgnoreProps = cfg.EffectiveIgnoreProps()
	if err := out.SaveToFile(path); err != nil {
		return err
	}

	l.logger.Info("Created config file", slog.String("path", path))
	return nil
}

// envConfig builds a partial config from the environment. Process
// variables take precedence over dotenv values. The text-only switch is
// returned separately; it is nil when unset.
func (l *Loader) envConfig() (*Config, *bool, error) {
	dotenv := map[string]string{}
	if l.envFile != "" {
		if _, err := os.Stat(l.envFile); err == nil {
			values, err := godotenv.Read(l.envFile)
			if err != nil {
				l.logger.Warn("Failed to read env file", slog.String("path", l.envFile), slog.String("error", err.Error()))
			} else {
				l.logger.Debug("Loaded env file", slog.String("path", l.envFile))
				dotenv = values
			}
		}
	}

	get := func(name string) (string, bool) {
		key := EnvPrefix + name
		if v, ok := l.lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	config := &Config{}
	var textOnly *bool
	if v, ok := get("CHECK_PROPS"); ok {
		config.CheckProps = ParseWordList(v)
	}
	if v, ok := get("IGNORE_PROPS"); ok {
		config.IgnoreProps = []string(ParseWordList(v))
		if config.IgnoreProps == nil {
			config.IgnoreProps = []string{}
		}
	}
	if v, ok := get("TEXT_ONLY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, nil, fmt.Errorf("%sTEXT_ONLY: %w", EnvPrefix, err)
		}
		textOnly = &b
	}
	if v, ok := get("ALLOWLIST"); ok {
		config.Allowlist = v
	}
	if v, ok := get("ALLOW_WORDS"); ok {
		config.AllowWords = ParseWordList(v)
	}
	if v, ok := get("OUTPUT"); ok {
		config.Output = v
	}
	if v, ok := get("BASE_LEXICON"); ok {
		config.BaseLexicon = v
	}
	if v, ok := get("COUNTERS_OUTPUT"); ok {
		config.CountersOutput = v
	}
	if v, ok := get("WATCH_DEBOUNCE"); ok {
		config.WatchDebounce = v
	}
	return config, textOnly, nil
}
