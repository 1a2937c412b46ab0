package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tradedesk/internal/logger"
)

const maxParallelReads = 8

// LoadDirectory reads every *.csv file in dir (case-insensitive extension).
//
// Files are read concurrently, bounded by parallel (defaults to min(8, NumCPU)),
// and returned sorted by filename so the import order is stable. The first read
// error cancels the remaining reads.
func LoadDirectory(ctx context.Context, dir string, parallel int) ([]Upload, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no csv files in %s", dir)
	}

	limit := maxParallelReads
	if parallel > 0 {
		limit = min(parallel, maxParallelReads)
	} else if c := runtime.NumCPU(); c < limit {
		limit = c
	}

	uploads := make([]Upload, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			uploads[i] = Upload{Filename: name, Content: b}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.L().Info().Str("dir", dir).Int("files", len(uploads)).Int("max_parallel", limit).Msg("directory loaded")
	return uploads, nil
}
