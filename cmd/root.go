package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentic-research/examine/examine"
	"github.com/agentic-research/examine/internal/config"
	"github.com/agentic-research/examine/internal/ingest"
	"github.com/agentic-research/examine/internal/report"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is stamped at build time via -ldflags.
var version = "dev"

var (
	cfgPath      string
	formatName   string
	selector     string
	colorMode    string
	budget       int
	detectCycles bool
	verbose      bool

	cfg    *config.Config
	logger *zap.Logger
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "Path to config file (default .examine.{yaml,json,toml})")
	pf.StringVarP(&formatName, "format", "f", "", "Input format: json, yaml, toml, hcl, sqlite (default: from extension)")
	pf.StringVarP(&selector, "select", "s", "", "JSONPath selecting the part of the document to inspect")
	pf.StringVar(&colorMode, "color", "", "Colour output: auto, always, never")
	pf.IntVarP(&budget, "budget", "b", 0, "Traversal step budget")
	pf.BoolVar(&detectCycles, "detect-cycles", false, "Fail fast on reference cycles instead of exhausting the budget")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:          "examine",
	Short:        "Flatten nested documents into a searchable table of nodes and parents",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}

		// Flags beat the config file.
		flags := cmd.Flags()
		if flags.Changed("budget") {
			cfg.Budget = budget
		}
		if flags.Changed("detect-cycles") {
			cfg.DetectCycles = detectCycles
		}
		if flags.Changed("color") {
			cfg.Color = colorMode
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zc.Level = zap.NewAtomicLevelAt(level)
		if logger, err = zc.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openInspector loads path and inspects it with the active configuration.
func openInspector(path string) (*examine.Inspector, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	var format ingest.Format
	if formatName != "" {
		if format, err = ingest.ParseFormat(formatName); err != nil {
			return nil, err
		}
	}

	dir, base := filepath.Split(abs)
	doc, err := ingest.NewLoader(osfs.New(dir)).Load(base, format)
	if err != nil {
		return nil, err
	}
	if selector != "" {
		if doc, err = ingest.Select(doc, selector); err != nil {
			return nil, err
		}
	}

	logger.Debug("document loaded", zap.String("path", abs), zap.String("select", selector))
	return examine.New(doc,
		examine.WithBudget(cfg.Budget),
		examine.WithCycleDetection(cfg.DetectCycles),
		examine.WithLogger(logger),
	)
}

func printer(cmd *cobra.Command) *report.Printer {
	return report.NewPrinter(cmd.OutOrStdout(), cfg.Color)
}
