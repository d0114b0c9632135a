package main

import (
	"flag"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/grafana/dskit/flagext"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/112RG/metasonic"
)

const configFileOption = "config.file"

// Config is the command configuration. Defaults come from flag registration,
// a YAML file named by -config.file overlays them and command-line flags
// overlay both.
type Config struct {
	Log         LogConfig   `yaml:"log,omitempty"`
	Walk        WalkConfig  `yaml:"walk,omitempty"`
	Parse       ParseConfig `yaml:"parse,omitempty"`
	Workers     int         `yaml:"workers,omitempty"`
	Output      string      `yaml:"output,omitempty"`
	MetricsFile string      `yaml:"metrics_file,omitempty"`

	PrintVersion bool `yaml:"-"`
}

type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

type WalkConfig struct {
	Extensions flagext.StringSliceCSV `yaml:"extensions,omitempty"`
}

type ParseConfig struct {
	Strict          bool  `yaml:"strict,omitempty"`
	StrictComments  bool  `yaml:"strict_comments,omitempty"`
	MaxMetadataSize int64 `yaml:"max_metadata_size,omitempty"`
}

func prefixConfig(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func (c *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.IntVar(&c.Workers, prefixConfig(prefix, "workers"), runtime.NumCPU(), "Number of files parsed concurrently.")
	f.StringVar(&c.Output, prefixConfig(prefix, "output"), "text", "Report format: text or yaml.")
	f.StringVar(&c.MetricsFile, prefixConfig(prefix, "metrics.file"), "", "Write Prometheus metrics in text format to this file when done.")
	f.BoolVar(&c.PrintVersion, prefixConfig(prefix, "version"), false, "Print version information and exit.")

	c.Log.RegisterFlagsAndApplyDefaults(prefixConfig(prefix, "log"), f)
	c.Walk.RegisterFlagsAndApplyDefaults(prefixConfig(prefix, "walk"), f)
	c.Parse.RegisterFlagsAndApplyDefaults(prefixConfig(prefix, "parse"), f)
}

func (c *LogConfig) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&c.Level, prefixConfig(prefix, "level"), "info", "Log level: debug, info, warn or error.")
	f.StringVar(&c.Format, prefixConfig(prefix, "format"), "text", "Log format: text or logfmt.")
}

func (c *WalkConfig) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	c.Extensions = flagext.StringSliceCSV{"flac"}
	f.Var(&c.Extensions, prefixConfig(prefix, "extensions"), "Comma-separated file extensions to pick up when walking directories.")
}

func (c *ParseConfig) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.BoolVar(&c.Strict, prefixConfig(prefix, "strict"), false, "Treat block errors and warnings as fatal.")
	f.BoolVar(&c.StrictComments, prefixConfig(prefix, "strict-comments"), false, "Fail a VORBIS_COMMENT block on a malformed entry instead of skipping it.")
	f.Int64Var(&c.MaxMetadataSize, prefixConfig(prefix, "max-metadata-size"), 64<<20, "Maximum total metadata payload per file in bytes; 0 disables the limit.")
}

// Validate checks values that flag parsing cannot.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.Output {
	case "text", "yaml":
	default:
		return errors.Errorf("unknown output format %q", c.Output)
	}
	switch c.Log.Format {
	case "text", "logfmt":
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if len(c.Walk.Extensions) == 0 {
		return errors.New("walk.extensions must not be empty")
	}
	return nil
}

// ParseOptions maps the parse settings to library options.
func (c *Config) ParseOptions() []metasonic.Option {
	opts := []metasonic.Option{
		metasonic.WithMaxMetadataSize(c.Parse.MaxMetadataSize),
	}
	if c.Parse.Strict {
		opts = append(opts, metasonic.WithStrictParsing())
	}
	if c.Parse.StrictComments {
		opts = append(opts, metasonic.WithStrictComments())
	}
	return opts
}

// extensionSet returns the configured extensions lower-cased, with any
// leading dot removed.
func (c *Config) extensionSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Walk.Extensions))
	for _, ext := range c.Walk.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			set[ext] = struct{}{}
		}
	}
	return set
}

// loadConfig builds the configuration from args and registers every flag on
// fs. Positional arguments are left in fs.Args().
func loadConfig(args []string, fs *flag.FlagSet) (*Config, error) {
	var configFile string

	// first get the config file
	cf := flag.NewFlagSet("", flag.ContinueOnError)
	cf.SetOutput(io.Discard)
	cf.StringVar(&configFile, configFileOption, "", "")

	// Parsing stops on the first unknown flag, so retry with the remaining
	// arguments until -config.file is found or none are left.
	for rest := args; len(rest) > 0; rest = rest[1:] {
		_ = cf.Parse(rest)
	}

	// load config defaults and register flags
	config := &Config{}
	config.RegisterFlagsAndApplyDefaults("", fs)

	// overlay with config file if provided
	if configFile != "" {
		buff, err := os.ReadFile(configFile)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read configFile %s", configFile)
		}

		if err := yaml.UnmarshalStrict(buff, config); err != nil {
			return nil, errors.Wrapf(err, "failed to parse configFile %s", configFile)
		}
	}

	// overlay with cli
	flagext.IgnoredFlag(fs, configFileOption, "Configuration file to load.")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return config, nil
}
