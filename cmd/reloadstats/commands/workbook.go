package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/reloadstats/internal/observability"
	"github.com/Sumatoshi-tech/reloadstats/internal/workbook"
	"github.com/Sumatoshi-tech/reloadstats/pkg/safeconv"
)

const workbookDirPerm = 0o750

// ErrConflictingVariants is returned when both --examples-only and
// --blank-only are set.
var ErrConflictingVariants = errors.New("--examples-only and --blank-only are mutually exclusive")

func newWorkbookCommand(a *app) *cobra.Command {
	var (
		output       string
		examplesOnly bool
		blankOnly    bool
	)

	cmd := &cobra.Command{
		Use:   "workbook",
		Short: "Generate the Excel analysis templates",
		Long: `Generate Reloading_Analysis_Templates.xlsx (blank) and
Reloading_Analysis_Templates_Examples.xlsx (pre-filled with the example data).`,
		Args: cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			if examplesOnly && blankOnly {
				return ErrConflictingVariants
			}

			dir := a.cfg.Workbook.OutputDir
			if cmd.Flags().Changed("output") {
				dir = output
			}

			variants := []bool{false, true}

			switch {
			case examplesOnly:
				variants = []bool{true}
			case blankOnly:
				variants = []bool{false}
			}

			err := os.MkdirAll(dir, workbookDirPerm)
			if err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			opts := a.cfg.WorkbookOptions()

			for _, examples := range variants {
				opts.Examples = examples

				name := workbook.BlankFile
				if examples {
					name = workbook.ExamplesFile
				}

				start := time.Now()
				written, writeErr := workbook.Write(filepath.Join(dir, name), opts)
				a.metrics.RecordArtifact(ctx, observability.KindWorkbook, time.Since(start), written.Bytes, writeErr)

				if writeErr != nil {
					return writeErr
				}

				a.logger.InfoContext(ctx, "workbook saved",
					"file", written.Path, "examples", written.Examples, "size", sizeOf(written.Bytes))
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", written.Path)
			}

			return nil
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default workbook.output_dir)")
	cmd.Flags().BoolVar(&examplesOnly, "examples-only", false, "write only the example workbook")
	cmd.Flags().BoolVar(&blankOnly, "blank-only", false, "write only the blank workbook")

	return cmd
}

func sizeOf(n int64) string {
	return humanize.Bytes(safeconv.ClampUint64(n))
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}

	return info.Size()
}
