// Package config loads protobind generator settings from TOML.
package config

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chazu/protobind/pkg/logging"
)

// Config holds generator settings.
type Config struct {
	Package        string // Go package name of the generated file
	RuntimePackage string // import path of the xproto runtime
	ResourceField  string // field holding the identifier in resource types
	Strict         bool   // validate descriptors before emitting
	Workers        int    // parallel emitters, 0 = GOMAXPROCS
	LogLevel       string
	LogJSON        bool
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Package:        "protocol",
		RuntimePackage: "github.com/chazu/protobind/xproto",
		ResourceField:  "xid",
		Strict:         true,
		LogLevel:       "info",
	}
}

type fileConfig struct {
	Package        string `toml:"package"`
	RuntimePackage string `toml:"runtime_package"`
	ResourceField  string `toml:"resource_field"`
	Strict         bool   `toml:"strict"`
	Workers        int    `toml:"workers"`
	Log            struct {
		Level string `toml:"level"`
		JSON  bool   `toml:"json"`
	} `toml:"log"`
}

// Load reads path and overlays the keys it defines onto DefaultConfig.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return overlay(raw, meta)
}

// Decode parses TOML text and overlays it onto DefaultConfig.
func Decode(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return overlay(raw, meta)
}

func overlay(raw fileConfig, meta toml.MetaData) (Config, error) {
	cfg := DefaultConfig()

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("package") {
		cfg.Package = strings.TrimSpace(raw.Package)
	}
	if meta.IsDefined("runtime_package") {
		cfg.RuntimePackage = strings.TrimSpace(raw.RuntimePackage)
	}
	if meta.IsDefined("resource_field") {
		cfg.ResourceField = strings.TrimSpace(raw.ResourceField)
	}
	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("log", "level") {
		cfg.LogLevel = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "json") {
		cfg.LogJSON = raw.Log.JSON
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise produce uncompilable output.
func Validate(cfg Config) error {
	if !token.IsIdentifier(cfg.Package) {
		return fmt.Errorf("config: package %q is not a valid Go identifier", cfg.Package)
	}
	if cfg.RuntimePackage == "" {
		return fmt.Errorf("config: runtime_package is required")
	}
	if !token.IsIdentifier(cfg.ResourceField) {
		return fmt.Errorf("config: resource_field %q is not a valid Go identifier", cfg.ResourceField)
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("config: log level %q is not one of debug, info, warn, error, off", cfg.LogLevel)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", cfg.Workers)
	}
	return nil
}
