// Command metasonic prints the metadata blocks of FLAC files.
//
// Usage:
//
//	metasonic [flags] <path>...
//
// Directories are walked recursively. See -help for flags; every flag can
// also be set in the YAML file named by -config.file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/version"
	"golang.org/x/sync/errgroup"

	"github.com/112RG/metasonic"
)

const appName = "metasonic"

// Version is set via build flag -ldflags -X main.Version. When unset, the
// library version and build info are reported.
var (
	Version  string
	Branch   string
	Revision string
)

func init() {
	info := metasonic.GetVersionInfo()
	if Version == "" {
		Version = info.Version
	}
	if Revision == "" {
		Revision = info.GitCommit
	}
	version.Version = Version
	version.Branch = Branch
	version.Revision = Revision
	version.BuildDate = info.BuildTime
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Logger is the subset of *slog.Logger used by the command, so that the
// logfmt output can be served by go-kit.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type kitLogger struct {
	logger kitlog.Logger
}

func (l kitLogger) Debug(msg string, args ...any) { l.log(level.Debug(l.logger), msg, args) }
func (l kitLogger) Info(msg string, args ...any)  { l.log(level.Info(l.logger), msg, args) }
func (l kitLogger) Warn(msg string, args ...any)  { l.log(level.Warn(l.logger), msg, args) }
func (l kitLogger) Error(msg string, args ...any) { l.log(level.Error(l.logger), msg, args) }

func (kitLogger) log(logger kitlog.Logger, msg string, args []any) {
	_ = logger.Log(append([]any{"msg", msg}, args...)...)
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return lvl, errors.Wrap(err, "log.level")
	}
	return lvl, nil
}

// newLogger returns the command logger and the observer that reports parse
// events through it.
func newLogger(cfg LogConfig, w io.Writer) (Logger, metasonic.Observer, error) {
	lvl, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Format == "logfmt" {
		var allow level.Option
		switch {
		case lvl <= slog.LevelDebug:
			allow = level.AllowDebug()
		case lvl <= slog.LevelInfo:
			allow = level.AllowInfo()
		case lvl <= slog.LevelWarn:
			allow = level.AllowWarn()
		default:
			allow = level.AllowError()
		}
		logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
		logger = level.NewFilter(logger, allow)
		logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
		return kitLogger{logger: logger}, metasonic.NewKitLogObserver(logger), nil
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(lvl)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
	return logger, metasonic.NewSlogObserver(logger), nil
}

type result struct {
	path string
	file *metasonic.File
	err  error
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <path>...\n\nFlags:\n", appName)
		fs.PrintDefaults()
	}

	cfg, err := loadConfig(args, fs)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 2
	}

	if cfg.PrintVersion {
		fmt.Fprintln(stdout, version.Print(appName))
		return 0
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 2
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	logger, observer, err := newLogger(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "failed to create logger: %v\n", err)
		return 2
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(version.NewCollector(appName))
	metrics, err := metasonic.NewMetricsObserver(reg)
	if err != nil {
		logger.Error("failed to register metrics", "err", err)
		return 1
	}

	opts := append(cfg.ParseOptions(),
		metasonic.WithObserver(observer),
		metasonic.WithObserver(metrics),
	)

	failed := 0
	paths := collectPaths(fs.Args(), cfg.extensionSet(), func(path string, err error) {
		logger.Error("failed to walk path; skipped", "path", path, "err", err)
		failed++
	})

	results := parseAll(ctx, paths, cfg.Workers, opts, logger)

	var reports []*fileReport
	for _, r := range results {
		if r.err != nil {
			logger.Error("failed to parse file", "path", r.path, "err", r.err)
			failed++
			if r.file == nil {
				continue
			}
		}
		report := newFileReport(r.file)
		if r.err != nil {
			report.Fatal = r.err.Error()
		}
		reports = append(reports, report)
	}

	write := writeText
	if cfg.Output == "yaml" {
		write = writeYAML
	}
	if err := write(stdout, reports); err != nil {
		logger.Error("failed to write report", "err", err)
		return 1
	}

	if cfg.MetricsFile != "" {
		if err := writeMetrics(cfg.MetricsFile, reg); err != nil {
			logger.Error("failed to write metrics", "file", cfg.MetricsFile, "err", err)
			return 1
		}
	}

	logger.Info("done", "files", len(results), "failed", failed)

	if failed > 0 {
		return 1
	}
	return 0
}

// parseAll parses paths with at most workers files in flight. Results are
// in input order; a failing file does not stop the others.
func parseAll(ctx context.Context, paths []string, workers int, opts []metasonic.Option, logger Logger) []result {
	results := make([]result, len(paths))

	var g errgroup.Group
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			start := time.Now()
			file, err := metasonic.ParseFile(ctx, path, opts...)
			logger.Debug("parsed file", "path", path, "elapsed", time.Since(start))
			results[i] = result{path: path, file: file, err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func writeMetrics(path string, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create metrics file")
	}

	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			f.Close()
			return errors.Wrap(err, "encode metrics")
		}
	}

	return f.Close()
}
