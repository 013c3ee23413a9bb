package figures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/reloadstats/internal/chart"
)

const (
	tracerName    = "reloadstats/figures"
	outputDirPerm = 0o750
)

// ErrNoOutputDir is returned when RenderAll has nowhere to write.
var ErrNoOutputDir = errors.New("output directory is required")

// Recorder receives one observation per rendered figure.
type Recorder interface {
	RecordRender(ctx context.Context, figureID string, duration time.Duration, bytes int64, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordRender(context.Context, string, time.Duration, int64, error) {}

// Options configures RenderAll.
type Options struct {
	// Dir receives the PNG files and manifest.yaml.
	Dir string
	// DPI defaults to chart.DefaultDPI.
	DPI int
	// Workers bounds concurrent renders. Zero or less uses DefaultWorkers.
	Workers int
	// Logger defaults to slog.Default.
	Logger *slog.Logger
	// Recorder defaults to a no-op.
	Recorder Recorder
}

// DefaultWorkers is one render per CPU.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

func (o Options) withDefaults() Options {
	if o.DPI <= 0 {
		o.DPI = chart.DefaultDPI
	}

	if o.Workers <= 0 {
		o.Workers = DefaultWorkers()
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	if o.Recorder == nil {
		o.Recorder = nopRecorder{}
	}

	return o
}

// Result describes one rendered figure.
type Result struct {
	Figure   Figure
	Path     string
	Bytes    int64
	Duration time.Duration
	Stats    Stats
}

// RenderAll renders figs concurrently into opts.Dir and writes the manifest.
// Results keep the order of figs. The first failure cancels the rest.
func RenderAll(ctx context.Context, figs []Figure, opts Options) ([]Result, error) {
	opts = opts.withDefaults()
	if opts.Dir == "" {
		return nil, ErrNoOutputDir
	}

	if err := os.MkdirAll(opts.Dir, outputDirPerm); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "reloadstats.figures.render_all",
		trace.WithAttributes(
			attribute.Int("figures.count", len(figs)),
			attribute.Int("figures.workers", opts.Workers),
			attribute.Int("figures.dpi", opts.DPI),
		))
	defer span.End()

	results := make([]Result, len(figs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)

	for i, f := range figs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := Render(ctx, f, opts)
			if err != nil {
				return err
			}

			results[i] = res

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	if err := WriteManifest(filepath.Join(opts.Dir, ManifestFile), NewManifest(results, opts.DPI)); err != nil {
		return nil, err
	}

	return results, nil
}

// Render draws a single figure with its own seeded generator.
func Render(ctx context.Context, f Figure, opts Options) (Result, error) {
	opts = opts.withDefaults()

	_, span := otel.Tracer(tracerName).Start(ctx, "reloadstats.figure",
		trace.WithAttributes(attribute.String("figure.id", f.ID())))
	defer span.End()

	start := time.Now()
	path := filepath.Join(opts.Dir, f.FileName())

	canvas, stats := f.Render(f.Rand())
	n, err := canvas.Save(path, opts.DPI)
	elapsed := time.Since(start)

	opts.Recorder.RecordRender(ctx, f.ID(), elapsed, n, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return Result{}, fmt.Errorf("figure %s: %w", f.ID(), err)
	}

	span.SetAttributes(attribute.Int64("figure.bytes", n))
	opts.Logger.DebugContext(ctx, "figure rendered",
		"id", f.ID(), "file", path, "bytes", n, "duration", elapsed)

	return Result{Figure: f, Path: path, Bytes: n, Duration: elapsed, Stats: stats}, nil
}
