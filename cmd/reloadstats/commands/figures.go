package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/reloadstats/internal/figures"
)

// ErrNoFigures is returned when render is given neither ids nor --all.
var ErrNoFigures = errors.New("no figures selected (pass ids or --all)")

// ErrIDsWithAll is returned when render is given both ids and --all.
var ErrIDsWithAll = errors.New("figure ids and --all are mutually exclusive")

func newFiguresCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "figures",
		Short: "List and render the curriculum figures",
	}

	cmd.AddCommand(newFiguresListCommand(a), newFiguresRenderCommand(a))

	return cmd
}

func newFiguresListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the figure registry",
		Args:  cobra.NoArgs,
		RunE: a.run(func(_ context.Context, cmd *cobra.Command, _ []string) error {
			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"ID", "Lesson", "Seed", "File", "Title"})

			for _, f := range figures.Registry() {
				tw.AppendRow(table.Row{f.ID(), f.Lesson, f.Seed, f.FileName(), f.Title})
			}

			tw.Render()

			return nil
		}),
	}
}

func newFiguresRenderCommand(a *app) *cobra.Command {
	var (
		all     bool
		output  string
		workers int
		dpi     int
	)

	cmd := &cobra.Command{
		Use:   "render [ids...]",
		Short: "Render figures to PNG and write manifest.yaml",
		Example: `  reloadstats figures render --all
  reloadstats figures render 01_03 velocity_node_illusion --output /tmp/figs`,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0 && !all:
				return ErrNoFigures
			case len(args) > 0 && all:
				return ErrIDsWithAll
			}

			figs, err := figures.Select(args)
			if err != nil {
				return err
			}

			opts := a.cfg.FigureOptions()
			opts.Logger = a.logger
			opts.Recorder = a.metrics

			if cmd.Flags().Changed("output") {
				opts.Dir = output
			}

			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}

			if cmd.Flags().Changed("dpi") {
				opts.DPI = dpi
			}

			results, err := figures.RenderAll(ctx, figs, opts)
			if err != nil {
				return fmt.Errorf("render figures: %w", err)
			}

			var total int64

			for _, entry := range figures.NewManifest(results, opts.DPI).Figures {
				total += entry.Bytes
				a.logger.InfoContext(ctx, "figure rendered", figureAttrs(entry)...)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d figures (%s) to %s\n",
				len(results), sizeOf(total), filepath.Join(opts.Dir, figures.ManifestFile))

			return nil
		}),
	}

	cmd.Flags().BoolVar(&all, "all", false, "render every figure")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default figures.output_dir)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent renders (default figures.workers)")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "resolution (default figures.dpi)")

	return cmd
}

func figureAttrs(e figures.ManifestEntry) []any {
	attrs := []any{"id", e.ID, "file", e.File, "size", sizeOf(e.Bytes)}

	keys := e.StatKeys()
	if len(keys) == 0 {
		return attrs
	}

	stats := make([]any, 0, len(keys))
	for _, k := range keys {
		stats = append(stats, slog.Float64(k, e.Stats[k]))
	}

	return append(attrs, slog.Group("stats", stats...))
}
