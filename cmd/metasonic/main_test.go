package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v2"

	"github.com/112RG/metasonic"
	"github.com/112RG/metasonic/internal/flactest"
)

func writeFLAC(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func taggedStream() []byte {
	return flactest.New().
		StreamInfo(flactest.Reference, false).
		VorbisComment("reference libFLAC 1.3.2", []string{"TITLE=Song", "ARTIST=Foo", "ARTIST=Bar"}, false).
		Block(metasonic.BlockTypePadding, make([]byte, 16), true).
		Bytes()
}

func TestRun_Text(t *testing.T) {
	dir := t.TempDir()
	writeFLAC(t, dir, "song.flac", taggedStream())

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{dir}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"song.flac",
		"48000 Hz, 2 ch, 16 bit, 68546 samples (1.428s)",
		"reference libFLAC 1.3.2",
		"TITLE",
		"Bar",
		"PADDING, 16 bytes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFLAC(t, dir, "song.flac", taggedStream())

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-output", "yaml", dir}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}

	var reports []fileReport
	if err := yaml.Unmarshal(stdout.Bytes(), &reports); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, stdout.String())
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}

	r := reports[0]
	if r.StreamInfo == nil || r.StreamInfo.SampleRate != 48000 {
		t.Errorf("StreamInfo = %+v", r.StreamInfo)
	}
	if len(r.Blocks) != 3 || r.Blocks[2].Type != "PADDING" || r.Blocks[2].Length != 16 {
		t.Errorf("Blocks = %+v", r.Blocks)
	}
	if len(r.Tags) != 2 || r.Tags[0].Key != "TITLE" || r.Tags[1].Key != "ARTIST" {
		t.Errorf("Tags = %+v, want TITLE then ARTIST", r.Tags)
	}
}

func TestRun_FailureContinues(t *testing.T) {
	dir := t.TempDir()
	writeFLAC(t, dir, "a.flac", taggedStream())
	writeFLAC(t, dir, "b.flac", []byte("not a flac file"))
	writeFLAC(t, dir, "c.flac", taggedStream())

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-log.format", "logfmt", dir}, &stdout, &stderr)
	if code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}

	out := stdout.String()
	if !strings.Contains(out, "a.flac") || !strings.Contains(out, "c.flac") {
		t.Errorf("report should list the good files:\n%s", out)
	}
	if !strings.Contains(out, "fatal:") || !strings.Contains(out, "invalid FLAC marker") {
		t.Errorf("report should show the fatal error of the failed file:\n%s", out)
	}
	if !strings.Contains(stderr.String(), "level=error") || !strings.Contains(stderr.String(), "b.flac") {
		t.Errorf("stderr should log the failure:\n%s", stderr.String())
	}
}

func TestRun_PartialReport(t *testing.T) {
	dir := t.TempDir()
	writeFLAC(t, dir, "torn.flac", flactest.New().
		StreamInfo(flactest.Reference, false).
		Raw([]byte{0x04, 0x00}).
		Bytes())

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-output", "yaml", dir}, &stdout, &stderr)
	if code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}

	var reports []fileReport
	if err := yaml.Unmarshal(stdout.Bytes(), &reports); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, stdout.String())
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	r := reports[0]
	if r.StreamInfo == nil || r.StreamInfo.SampleRate != 48000 {
		t.Errorf("StreamInfo = %+v, want the block read before the failure", r.StreamInfo)
	}
	if !strings.Contains(r.Fatal, "truncated") {
		t.Errorf("Fatal = %q, want a truncation error", r.Fatal)
	}
}

func TestRun_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	writeFLAC(t, dir, "song.flac", taggedStream())
	metricsPath := filepath.Join(t.TempDir(), "metrics.prom")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-metrics.file", metricsPath, dir}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}

	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`metasonic_streams_total{result="ok"} 1`,
		`metasonic_blocks_total{outcome="decoded",type="STREAMINFO"} 1`,
		`metasonic_build_info`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics missing %q:\n%s", want, data)
		}
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}
	if want := "version " + metasonic.Version; !strings.Contains(stdout.String(), want) {
		t.Errorf("output %q should contain %q", stdout.String(), want)
	}
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no paths", nil, 2},
		{"help", []string{"-help"}, 0},
		{"version", []string{"-version"}, 0},
		{"bad output", []string{"-output", "xml", "x.flac"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(context.Background(), tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("run() = %d, want %d; stderr:\n%s", got, tt.want, stderr.String())
			}
		})
	}
}
