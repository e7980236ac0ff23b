// Package logging builds the zap logger used by the protobind command.
package logging

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLogLevel = "PROTOBIND_LOG_LEVEL"
	EnvLogJSON  = "PROTOBIND_LOG_JSON"
)

// Config controls logger construction.
type Config struct {
	Level string
	JSON  bool
}

// New builds a logger writing to stderr. Environment variables override cfg.
// An empty level means info; an unrecognized one is an error.
func New(cfg Config) (*zap.Logger, error) {
	applyEnvOverrides(&cfg)

	level := zapcore.InfoLevel
	if strings.TrimSpace(cfg.Level) != "" {
		var ok bool
		if level, ok = ParseLevel(cfg.Level); !ok {
			return nil, fmt.Errorf("logging: unknown level %q", cfg.Level)
		}
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.JSON {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.DisableStacktrace = true

	return zcfg.Build()
}

func applyEnvOverrides(cfg *Config) {
	if raw := strings.TrimSpace(os.Getenv(EnvLogLevel)); raw != "" {
		cfg.Level = raw
	}
	if v, ok := parseBool(os.Getenv(EnvLogJSON)); ok {
		cfg.JSON = v
	}
}

// ParseLevel maps a level name to a zap level. "off" and friends map to a
// level above fatal so nothing is written.
func ParseLevel(raw string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zapcore.InfoLevel, false
	case "debug", "trace":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "disabled", "off", "none":
		return zapcore.FatalLevel + 1, true
	default:
		return zapcore.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
