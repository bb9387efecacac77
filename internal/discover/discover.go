// Package discover finds the input files of one batch run.
//
// The scan root may be a single file or a directory. A directory is
// enumerated one level deep only; sub-directories are not descended into.
// The two roots carry different error policies: naming one file is an
// unambiguous user intent and any rejection of it fails the scan, while a
// directory sweep is best-effort and individual rejections are only logged.
package discover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sbomkit/vex2pdf/internal/model"
)

// Scan classifies and collects everything under root into a pending set.
// Kinds mapped to true in ignored are skipped with an informational log.
// Only a failure to stat or enumerate the root itself is fatal; with a
// directory root, per-file rejections never abort the scan and an empty
// result is not an error.
func Scan(ctx context.Context, root string, ignored map[model.Kind]bool) (*model.PendingSet, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	set := model.NewPendingSet()

	if !info.IsDir() {
		if err := set.AddAllowed(root, ignored); err != nil {
			return nil, fmt.Errorf("%s: %w", root, err)
		}
		logCounts(ctx, set)
		return set, nil
	}

	slog.InfoContext(ctx, "scanning for BOM/VEX files", "dir", root)

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", root, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		switch err := set.AddAllowed(path, ignored); {
		case err == nil:
		case errors.Is(err, model.ErrIgnoredByUser):
			slog.InfoContext(ctx, "skipping file deactivated by user", "path", path)
		default:
			slog.WarnContext(ctx, "skipping file", "path", path, "error", err)
		}
	}

	logCounts(ctx, set)
	return set, nil
}

func logCounts(ctx context.Context, set *model.PendingSet) {
	if set.Len() == 0 {
		slog.InfoContext(ctx, "no parseable files in selected path")
		return
	}
	for _, k := range model.Kinds() {
		slog.InfoContext(ctx, "found files", "kind", k.String(), "count", set.CountByKind(k))
	}
}
