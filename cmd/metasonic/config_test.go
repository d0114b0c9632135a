package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	fs := newFlagSet()
	cfg, err := loadConfig([]string{"a.flac"}, fs)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
	}
	if cfg.Output != "text" || cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Output/Log = %q/%+v", cfg.Output, cfg.Log)
	}
	if !slices.Equal([]string(cfg.Walk.Extensions), []string{"flac"}) {
		t.Errorf("Extensions = %v, want [flac]", cfg.Walk.Extensions)
	}
	if cfg.Parse.MaxMetadataSize != 64<<20 {
		t.Errorf("MaxMetadataSize = %d", cfg.Parse.MaxMetadataSize)
	}
	if got := fs.Args(); !slices.Equal(got, []string{"a.flac"}) {
		t.Errorf("Args() = %v", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, `
workers: 3
output: yaml
log:
  level: debug
walk:
  extensions: flac,FLA
parse:
  strict_comments: true
  max_metadata_size: 1024
`)

	tests := []struct {
		name        string
		args        []string
		wantWorkers int
		wantOutput  string
	}{
		{
			name:        "file overlays defaults",
			args:        []string{"-config.file", path, "dir"},
			wantWorkers: 3,
			wantOutput:  "yaml",
		},
		{
			name:        "flags overlay file",
			args:        []string{"-workers", "7", "-config.file=" + path, "-output", "text", "dir"},
			wantWorkers: 7,
			wantOutput:  "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(tt.args, newFlagSet())
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			if cfg.Workers != tt.wantWorkers {
				t.Errorf("Workers = %d, want %d", cfg.Workers, tt.wantWorkers)
			}
			if cfg.Output != tt.wantOutput {
				t.Errorf("Output = %q, want %q", cfg.Output, tt.wantOutput)
			}
			if cfg.Log.Level != "debug" {
				t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
			}
			if !cfg.Parse.StrictComments || cfg.Parse.MaxMetadataSize != 1024 {
				t.Errorf("Parse = %+v", cfg.Parse)
			}
			if _, ok := cfg.extensionSet()["fla"]; !ok {
				t.Errorf("extensionSet() = %v, want fla", cfg.extensionSet())
			}
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	unknown := writeConfig(t, "not_a_field: true\n")

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"-config.file", filepath.Join(t.TempDir(), "nope.yaml")}},
		{"unknown yaml field", []string{"-config.file", unknown}},
		{"unknown flag", []string{"-no-such-flag"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadConfig(tt.args, newFlagSet()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"bad output", func(c *Config) { c.Output = "json" }},
		{"bad log format", func(c *Config) { c.Log.Format = "json" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"no extensions", func(c *Config) { c.Walk.Extensions = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(nil, newFlagSet())
			if err != nil {
				t.Fatal(err)
			}
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}
