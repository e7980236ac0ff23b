// protobind - capability implementation generator for protocol bindings
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/chazu/protobind/pkg/codegen"
	"github.com/chazu/protobind/pkg/config"
	"github.com/chazu/protobind/pkg/logging"
	"github.com/chazu/protobind/pkg/model"
	"github.com/chazu/protobind/pkg/pipeline"
)

var (
	configPath = flag.String("config", "", "path to a protobind.toml config file")
	inputPath  = flag.String("in", "", "manifest file (default: stdin)")
	outputPath = flag.String("o", "", "output file (default: stdout)")
	format     = flag.String("format", "", "manifest format: json or yaml (default: from -in extension, else json)")
	pkgName    = flag.String("pkg", "", "package name of the generated file")
	strict     = flag.Bool("strict", true, "reject out-of-range opcodes and unknown enum variants")
	dump       = flag.Bool("dump", false, "print the declaration tree to stderr")
	dryRun     = flag.Bool("dry-run", false, "show what would be generated without outputting")
	version    = flag.Bool("version", false, "print version and exit")
)

const versionStr = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "protobind - protocol capability implementation generator\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  protobind [options] < manifest.json > capabilities.go\n")
		fmt.Fprintf(os.Stderr, "  protobind -in manifest.yaml -o capabilities.go\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("protobind version %s\n", versionStr)
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	pipeline.SetLogger(logger.Named("pipeline"))

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// loadConfig merges defaults, the config file and explicitly set flags.
func loadConfig() (config.Config, error) {
	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return config.Config{}, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "pkg":
			cfg.Package = *pkgName
		case "strict":
			cfg.Strict = *strict
		}
	})
	return cfg, config.Validate(cfg)
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	input, err := readInput()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if len(input) == 0 {
		return fmt.Errorf("no input provided")
	}

	manifest, err := parseManifest(input)
	if err != nil {
		return err
	}
	pairs, err := manifest.Pairs()
	if err != nil {
		return err
	}
	logger.Debug("loaded manifest", zap.Int("types", len(manifest.Types)), zap.Int("capabilities", len(pairs)))

	res, err := pipeline.Run(ctx, pairs, pipeline.Options{
		Strict:   cfg.Strict,
		Workers:  cfg.Workers,
		Variants: manifest.Variants(),
	})
	if err != nil {
		return err
	}

	if *dump {
		spew.Fdump(os.Stderr, res.Declarations)
	}

	result := codegen.Generate(res.Declarations, codegen.Options{
		Package:        cfg.Package,
		RuntimePackage: cfg.RuntimePackage,
		ResourceField:  cfg.ResourceField,
	})
	for _, w := range res.Warnings {
		logger.Warn(w)
	}
	for _, s := range result.Skipped {
		logger.Warn("skipped declaration",
			zap.String("type", s.Type),
			zap.String("contract", s.Contract),
			zap.String("reason", s.Reason))
	}
	if result.Err != nil {
		return result.Err
	}

	if *dryRun {
		logger.Info("dry run",
			zap.Int("declarations", len(res.Declarations)),
			zap.Int("bytes", len(result.Code)))
		return nil
	}

	return writeOutput(result.Code)
}

func readInput() ([]byte, error) {
	if *inputPath == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(*inputPath)
}

func parseManifest(input []byte) (*model.Manifest, error) {
	f := strings.ToLower(*format)
	if f == "" {
		switch strings.ToLower(filepath.Ext(*inputPath)) {
		case ".yaml", ".yml":
			f = "yaml"
		default:
			f = "json"
		}
	}

	switch f {
	case "json":
		return model.ParseBytes(input)
	case "yaml":
		return model.ParseYAML(input)
	default:
		return nil, fmt.Errorf("unknown format %q (use 'json' or 'yaml')", *format)
	}
}

func writeOutput(code string) error {
	if *outputPath == "" {
		_, err := fmt.Print(code)
		return err
	}
	return os.WriteFile(*outputPath, []byte(code), 0o644)
}
