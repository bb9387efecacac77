// Package proc drives a batch run: discover the input files, fan the
// conversions out over the worker pool, and wait for the batch to drain.
//
// Job outcomes deliberately do not propagate: a file that fails to parse or
// render is logged and the rest of the batch proceeds. Only infrastructure
// failures (an unusable scan root, a broken pool) abort a run.
package proc

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sbomkit/vex2pdf/internal/config"
	"github.com/sbomkit/vex2pdf/internal/discover"
	"github.com/sbomkit/vex2pdf/internal/log"
	"github.com/sbomkit/vex2pdf/internal/model"
	"github.com/sbomkit/vex2pdf/internal/pool"
	"github.com/sbomkit/vex2pdf/internal/report"
	"github.com/sbomkit/vex2pdf/internal/vex"
)

// Processor runs conversion batches for one configuration.
type Processor struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Processor {
	return &Processor{cfg: cfg}
}

// FindFiles scans the configured working path and returns the batch of files
// to convert.
func (p *Processor) FindFiles(ctx context.Context) (*Batch, error) {
	ignored := p.cfg.IgnoredKinds()
	for k := range ignored {
		slog.InfoContext(ctx, "skipping files: deactivated by user", "kind", k.String())
	}

	files, err := discover.Scan(ctx, p.cfg.WorkingPath, ignored)
	if err != nil {
		return nil, err
	}
	return &Batch{cfg: p.cfg, files: files}, nil
}

// Batch is one discovered set of input files ready for conversion.
type Batch struct {
	cfg   *config.Config
	files *model.PendingSet
}

func (b *Batch) Len() int {
	return b.files.Len()
}

// Process converts every file in the batch and blocks until all conversions
// have finished. Per-file failures are logged, not returned; the error covers
// only pool construction and submission.
func (b *Batch) Process(ctx context.Context) error {
	workers, err := pool.New(b.cfg.MaxJobs)
	if err != nil {
		return fmt.Errorf("creating worker pool: %w", err)
	}
	defer workers.Close()

	slog.InfoContext(ctx, workers.String())

	gen := report.New(b.cfg)
	total := b.files.Len()

	for file := range b.files.Drain() {
		jobCtx := log.ContextAttrs(ctx, slog.String("path", file.Path))
		if err := workers.Execute(func() {
			if err := runJob(jobCtx, b.cfg, gen, file); err != nil {
				slog.ErrorContext(jobCtx, "processing file", "error", err)
			}
		}); err != nil {
			return fmt.Errorf("submitting job for %s: %w", file.Path, err)
		}
	}

	workers.Close()
	slog.InfoContext(ctx, "processed files", "count", total)
	return nil
}

// runJob converts a single file: parse, derive the output path, render. A
// render failure is reported here and swallowed so a single unwritable PDF
// cannot take the batch down.
func runJob(ctx context.Context, cfg *config.Config, gen *report.Generator, file model.Identity) error {
	slog.InfoContext(ctx, "processing file", "kind", file.Kind.String())

	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	bom, err := vex.Parse(f, file.Kind)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", file.Kind, err)
	}

	out, err := OutputPath(cfg.OutputDir, file.Path)
	if err != nil {
		return fmt.Errorf("deriving output path: %w", err)
	}

	if err := gen.Generate(bom, out); err != nil {
		slog.WarnContext(ctx, "failed to generate PDF report", "output", out, "error", err)
		return nil
	}

	slog.InfoContext(ctx, "PDF report generated", "output", out)
	return nil
}
