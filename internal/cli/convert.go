package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/docs2openapi/internal/cache"
	"github.com/mark3labs/docs2openapi/internal/convert"
	"github.com/mark3labs/docs2openapi/internal/export"
)

// ConvertConfig captures all inputs that influence the convert command after
// merging defaults, config file values, and CLI overrides.
type ConvertConfig struct {
	Input      string
	Out        string
	Format     string
	CacheDir   string
	NoCache    bool
	ConfigPath string
	Verbose    bool
}

func defaultConvertConfig() ConvertConfig {
	return ConvertConfig{Format: export.FormatYAML}
}

var convertRunner = runConvert

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert unstructured API documentation into an OpenAPI 3.0 document",
		Long: "Convert Markdown or plain-text API documentation into an OpenAPI 3.0 document. " +
			"Options can be provided via flags, config files, or defaults.",
		Example: strings.TrimSpace(`  docs2openapi convert --input docs/api.md --format yaml
  docs2openapi --config config.yaml convert --out api.json --format json`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConvertConfig(cmd)
			if err != nil {
				return err
			}
			return convertRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path to the documentation file (Markdown or plain text)")
	flags.StringP("out", "o", "", "Output file (derived from the input path when omitted)")
	flags.StringP("format", "f", "", "Output format (yaml|json); defaults to yaml")
	flags.String("cache-dir", "", "Directory for the content cache (defaults to the user cache location)")
	flags.Bool("no-cache", false, "Disable the content cache for this run")

	return cmd
}

func resolveConvertConfig(cmd *cobra.Command) (*ConvertConfig, error) {
	cfg := defaultConvertConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyConvertConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyConvertFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyConvertFlagOverrides(flags *pflag.FlagSet, cfg *ConvertConfig) error {
	if flags.Changed("input") {
		value, err := flags.GetString("input")
		if err != nil {
			return err
		}
		cfg.Input = strings.TrimSpace(value)
	}
	if flags.Changed("out") {
		value, err := flags.GetString("out")
		if err != nil {
			return err
		}
		cfg.Out = strings.TrimSpace(value)
	}
	if flags.Changed("format") {
		value, err := flags.GetString("format")
		if err != nil {
			return err
		}
		cfg.Format = strings.TrimSpace(value)
	}
	if flags.Changed("cache-dir") {
		value, err := flags.GetString("cache-dir")
		if err != nil {
			return err
		}
		cfg.CacheDir = strings.TrimSpace(value)
	}
	if flags.Changed("no-cache") {
		value, err := flags.GetBool("no-cache")
		if err != nil {
			return err
		}
		cfg.NoCache = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}

	return nil
}

func (c *ConvertConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Out = strings.TrimSpace(c.Out)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.CacheDir = strings.TrimSpace(c.CacheDir)
}

func (c *ConvertConfig) validate() error {
	if c.Input == "" {
		return newUsageError("convert: --input is required (set via flag or config file)")
	}

	switch c.Format {
	case "":
		c.Format = export.FormatYAML
	case export.FormatYAML, export.FormatJSON:
	default:
		return newUsageError(fmt.Sprintf("convert: unsupported --format %q (allowed: yaml, json)", c.Format))
	}

	return nil
}

func runConvert(ctx context.Context, cfg *ConvertConfig) error {
	logger := newLogger(cfg.Verbose)

	// The only fatal condition: the input cannot be read. Everything after
	// this point degrades to a best-effort structured result.
	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("read input %s: %w", cfg.Input, err)
	}

	opts := []convert.Option{convert.WithLogger(logger)}
	if !cfg.NoCache {
		dir := cfg.CacheDir
		if dir == "" {
			dir = defaultCacheDir()
		}
		store, err := cache.OpenBadger(dir, logger)
		if err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("cache unavailable, converting without cache")
		} else {
			defer store.Close()
			opts = append(opts, convert.WithCache(store))
		}
	}

	res, err := convert.New(opts...).Convert(ctx, data)
	if err != nil {
		return err
	}
	if res.CacheHit {
		logger.Info().Msg("using cached result")
	}

	rendered, err := export.Render(res.Document, cfg.Format)
	if err != nil {
		return err
	}

	out := cfg.Out
	if out == "" {
		out = defaultOutputPath(cfg.Input, cfg.Format)
	}
	if err := os.WriteFile(out, rendered, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}
	fmt.Fprintf(os.Stdout, "Output written to: %s\n", out)

	return nil
}

func newLogger(verbose bool) log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.Logger{
		Level:  level,
		Writer: &log.ConsoleWriter{Writer: os.Stderr},
	}
}

// defaultCacheDir is the location used when neither --cache-dir nor a config
// value is given. The core pipeline never assumes this; it is purely a CLI
// default.
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "docs2openapi", "cache")
	}
	return filepath.Join(home, ".docs2openapi", "cache")
}

// defaultOutputPath swaps the input extension for the one matching the output
// format, e.g. docs/api.md -> docs/api.yaml.
func defaultOutputPath(input, format string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + export.Extension(format)
}

func applyConvertConfigFromFile(cfg *ConvertConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		normalized := normalizeKey(key)
		switch normalized {
		case "input":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Input = str
		case "out":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Out = str
		case "format":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Format = str
		case "cachedir":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.CacheDir = str
		case "nocache":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.NoCache = val
		case "verbose":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Verbose = val
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
	}

	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}
