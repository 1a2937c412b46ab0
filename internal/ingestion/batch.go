package ingestion

import (
	"context"
	"fmt"

	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/guttosm/tradedesk/internal/logger"
	"github.com/guttosm/tradedesk/internal/storage"
)

const defaultBatchSize = 50

// writeBatches inserts trades in chunks of batchSize, one transaction per chunk.
//
// A failed chunk is reported as an error string and skipped; earlier chunks stay
// committed and later chunks are still attempted. The returned count covers
// committed chunks only.
func writeBatches(ctx context.Context, repo storage.TradesRepository, trades []models.Trade, batchSize int) (int, []string) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	var (
		inserted int
		errs     []string
	)
	for start, n := 0, 1; start < len(trades); start, n = start+batchSize, n+1 {
		end := start + batchSize
		if end > len(trades) {
			end = len(trades)
		}
		batch := trades[start:end]

		if err := repo.InsertTradesBatch(ctx, batch); err != nil {
			logger.L().Error().
				Err(err).
				Int("batch", n).
				Int("rows", len(batch)).
				Str("account_id", batch[0].AccountID).
				Msg("batch insert failed")
			errs = append(errs, fmt.Sprintf("batch %d (rows %d-%d): %v", n, start+1, end, err))
			continue
		}
		inserted += len(batch)
	}
	return inserted, errs
}
