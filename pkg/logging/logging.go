// Package logging builds the zap logger shared by the CLI and its
// components.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance
var Logger = zap.NewNop()

// Options configures Setup.
type Options struct {
	Debug      bool   // Human-readable console output at debug level.
	Level      string // debug, info, warn or error; ignored when Debug is set.
	AppName    string
	AppVersion string
}

// Setup builds the logger, stores it in Logger and replaces zap's globals.
// Output always goes to stderr so stdout stays free for command output.
func Setup(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		level, err := ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	cfg.InitialFields = map[string]interface{}{
		"appName":    opts.AppName,
		"appVersion": opts.AppVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	Logger = logger
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// ParseLevel maps a level name to a zapcore.Level. An empty name is info.
func ParseLevel(name string) (zapcore.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	if name == "warning" {
		name = "warn"
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
