// Package config loads user defaults for filecombiner from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"filecombiner/pkg/combine"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

// Config mirrors config.toml. Pointer fields distinguish "unset" from the
// zero value so defaults survive partial files.
type Config struct {
	Separator       *string  `toml:"separator"`
	Encoding        *string  `toml:"encoding"`
	SkipCSVHeader   *bool    `toml:"skip_csv_header"`
	Atomic          *bool    `toml:"atomic"`
	Extensions      []string `toml:"extensions"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	MaxFileSizeKB   *int     `toml:"max_file_size_kb"`
	LogLevel        *string  `toml:"log_level"`
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

// Default returns the built-in settings.
func Default() Config {
	def := combine.DefaultConfig()
	return Config{
		Separator:       strPtr(def.Separator.String()),
		Encoding:        strPtr(def.Encoding.String()),
		SkipCSVHeader:   boolPtr(def.SkipCSVHeaderAfterFirst),
		Atomic:          boolPtr(def.Atomic),
		Extensions:      append([]string(nil), combine.DefaultExtensions...),
		ExcludePatterns: []string{},
		MaxFileSizeKB:   intPtr(0),
		LogLevel:        strPtr("info"),
	}
}

// DefaultPath is $UserConfigDir/filecombiner/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "filecombiner", "config.toml"), nil
}

// Load reads the configuration. With customPath empty the default location
// is tried and a missing file yields the defaults; a custom path must
// exist.
func Load(customPath string, logger *zap.Logger) (Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := Default()

	configFile := customPath
	isCustomPath := customPath != ""
	if isCustomPath {
		abs, err := filepath.Abs(customPath)
		if err != nil {
			return cfg, fmt.Errorf("invalid config path '%s': %w", customPath, err)
		}
		configFile = abs
	} else {
		p, err := DefaultPath()
		if err != nil {
			logger.Warn("Could not determine user config directory, using default settings", zap.Error(err))
			return cfg, nil
		}
		configFile = p
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !isCustomPath {
			logger.Debug("No config file found, using default settings", zap.String("path", configFile))
			return cfg, nil
		}
		return cfg, fmt.Errorf("error reading config file '%s': %w", configFile, err)
	}

	loaded := Default()
	meta, err := toml.Decode(string(content), &loaded)
	if err != nil {
		return cfg, fmt.Errorf("error decoding TOML from '%s': %w", configFile, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logger.Warn("Unrecognized keys found in config file", zap.String("path", configFile), zap.Strings("keys", keys))
	}
	loaded.fillDefaults()

	if _, err := loaded.CombineConfig(); err != nil {
		return cfg, fmt.Errorf("invalid config file '%s': %w", configFile, err)
	}

	logger.Debug("Configuration loaded",
		zap.String("source", configFile),
		zap.String("separator", *loaded.Separator),
		zap.String("encoding", *loaded.Encoding),
		zap.Bool("skipCsvHeader", *loaded.SkipCSVHeader),
		zap.Strings("excludePatterns", loaded.ExcludePatterns))
	return loaded, nil
}

// fillDefaults restores defaults for keys explicitly set to nothing.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Separator == nil {
		c.Separator = def.Separator
	}
	if c.Encoding == nil {
		c.Encoding = def.Encoding
	}
	if c.SkipCSVHeader == nil {
		c.SkipCSVHeader = def.SkipCSVHeader
	}
	if c.Atomic == nil {
		c.Atomic = def.Atomic
	}
	if len(c.Extensions) == 0 {
		c.Extensions = def.Extensions
	}
	if c.MaxFileSizeKB == nil {
		c.MaxFileSizeKB = def.MaxFileSizeKB
	}
	if c.LogLevel == nil {
		c.LogLevel = def.LogLevel
	}
}

// CombineConfig converts the file settings into engine options.
func (c Config) CombineConfig() (combine.Config, error) {
	c.fillDefaults()
	sep, err := combine.ParseSeparator(*c.Separator)
	if err != nil {
		return combine.Config{}, err
	}
	enc, err := combine.ParseEncoding(*c.Encoding)
	if err != nil {
		return combine.Config{}, err
	}
	return combine.Config{
		Separator:               sep,
		SkipCSVHeaderAfterFirst: *c.SkipCSVHeader,
		Encoding:                enc,
		Atomic:                  *c.Atomic,
	}, nil
}
