package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/tradedesk/internal/domain/dto"
	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/guttosm/tradedesk/internal/logger"
	"github.com/guttosm/tradedesk/internal/notify"
	"github.com/guttosm/tradedesk/internal/service"
	"github.com/guttosm/tradedesk/internal/storage"
)

// Request-shape errors. Callers map these to client errors.
var (
	ErrMissingAccountID = errors.New("account_id is required")
	ErrMissingFile      = errors.New("file is required")
	ErrNoFiles          = errors.New("at least one file is required")
	ErrFileTooShort     = errors.New("file must contain a header and at least one data row")
)

// Upload is one named CSV payload.
type Upload struct {
	Filename string
	Content  []byte
}

// Service imports broker CSV exports into account trade histories.
type Service interface {
	// ImportSingle imports one file into an explicitly chosen account.
	ImportSingle(ctx context.Context, accountID string, file *Upload) (*dto.ImportResponse, error)
	// ImportMany imports each file into the account named by its filename.
	ImportMany(ctx context.Context, files []Upload) (*dto.MultiImportResponse, error)
}

type importer struct {
	trades     storage.TradesRepository
	accounts   storage.AccountsRepository
	reconciler service.BalanceReconciler
	notifier   notify.Notifier
	batchSize  int
	now        func() time.Time
	newID      func(time.Time) string
}

func NewService(
	trades storage.TradesRepository,
	accounts storage.AccountsRepository,
	reconciler service.BalanceReconciler,
	notifier notify.Notifier,
	batchSize int,
) Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &importer{
		trades:     trades,
		accounts:   accounts,
		reconciler: reconciler,
		notifier:   notifier,
		batchSize:  batchSize,
		now:        time.Now,
		newID:      newTradeID,
	}
}

// fileOutcome is the pipeline result for one file before it is shaped into a response.
type fileOutcome struct {
	imported int
	skipped  int
	total    int
	errors   []string
	status   string
}

func (s *importer) ImportSingle(ctx context.Context, accountID string, file *Upload) (*dto.ImportResponse, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, ErrMissingAccountID
	}
	if file == nil {
		return nil, ErrMissingFile
	}
	if len(splitLines(string(file.Content))) < 2 {
		return nil, ErrFileTooShort
	}

	acc, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", accountID, err)
	}

	out := s.ingest(ctx, *file, *acc)
	if out.imported > 0 {
		if _, err := s.reconciler.Reconcile(reconcileContext(ctx), acc.ID); err != nil {
			logger.L().Error().Err(err).Str("account_id", acc.ID).Msg("reconciliation failed")
			out.errors = append(out.errors, fmt.Sprintf("reconcile balance: %v", err))
		}
	}

	s.notify(ctx, notify.ImportEvent{
		Source:      "single",
		Files:       1,
		FilesFailed: boolToInt(out.status != dto.StatusSuccess),
		Imported:    out.imported,
		Skipped:     out.skipped,
		Accounts:    touchedNumbers(out.imported, acc.AccountNumber),
	})

	return &dto.ImportResponse{
		Success:       out.status == dto.StatusSuccess,
		ImportedCount: out.imported,
		SkippedCount:  out.skipped,
		TotalRows:     out.total,
		Errors:        nonNil(out.errors),
	}, nil
}

// ImportMany processes files sequentially in the order given. A file whose name
// does not resolve to a known account is reported unmatched without affecting
// its siblings. When two files resolve to the same account the later one sees
// the earlier one's rows as duplicates.
func (s *importer) ImportMany(ctx context.Context, files []Upload) (*dto.MultiImportResponse, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	known, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	index := NewAccountIndex(known)

	resp := &dto.MultiImportResponse{
		Results: make([]dto.FileResult, 0, len(files)),
		Summary: dto.ImportSummary{TotalFiles: len(files)},
	}

	// touched keeps first-touch order so reconciliation is deterministic.
	var touched []models.Account
	queued := map[string]bool{}
	// results holds the result indexes of every file per account.
	results := map[string][]int{}

	for _, f := range files {
		acc, number, ok := index.Lookup(f.Filename)
		if !ok {
			resp.Results = append(resp.Results, unmatchedResult(f.Filename, number))
			logger.L().Warn().Str("file", f.Filename).Str("account_number", number).Msg("file unmatched")
			continue
		}

		out := s.ingest(ctx, f, acc)
		id := acc.ID
		resp.Results = append(resp.Results, dto.FileResult{
			Filename:      f.Filename,
			AccountNumber: acc.AccountNumber,
			AccountID:     &id,
			AccountLabel:  acc.Label,
			ClientName:    acc.ClientName,
			ImportedCount: out.imported,
			SkippedCount:  out.skipped,
			TotalRows:     out.total,
			Errors:        nonNil(out.errors),
			Status:        out.status,
		})
		if out.imported > 0 && !queued[acc.ID] {
			queued[acc.ID] = true
			touched = append(touched, acc)
		}
		results[acc.ID] = append(results[acc.ID], len(resp.Results)-1)
	}

	var numbers []string
	rctx := reconcileContext(ctx)
	for _, acc := range touched {
		numbers = append(numbers, acc.AccountNumber)
		if _, err := s.reconciler.Reconcile(rctx, acc.ID); err != nil {
			logger.L().Error().Err(err).Str("account_id", acc.ID).Msg("reconciliation failed")
			msg := fmt.Sprintf("reconcile balance: %v", err)
			for _, i := range results[acc.ID] {
				resp.Results[i].Errors = append(resp.Results[i].Errors, msg)
			}
		}
	}

	for _, r := range resp.Results {
		resp.Summary.TotalImported += r.ImportedCount
		resp.Summary.TotalSkipped += r.SkippedCount
		if r.Status == dto.StatusSuccess {
			resp.Summary.FilesProcessed++
		} else {
			resp.Summary.FilesFailed++
		}
	}

	s.notify(ctx, notify.ImportEvent{
		Source:      "batch",
		Files:       resp.Summary.TotalFiles,
		FilesFailed: resp.Summary.FilesFailed,
		Imported:    resp.Summary.TotalImported,
		Skipped:     resp.Summary.TotalSkipped,
		Accounts:    numbers,
	})

	return resp, nil
}

// ingest runs one file through parse, dedup and batch write for a resolved account.
// It never returns an error: every failure ends up in the outcome.
func (s *importer) ingest(ctx context.Context, f Upload, acc models.Account) fileOutcome {
	start := s.now()
	log := logger.L().With().Str("file", f.Filename).Str("account_id", acc.ID).Logger()
	log.Info().Msg("file start")

	var out fileOutcome
	lines := splitLines(string(f.Content))
	if len(lines) < 2 {
		out.errors = []string{ErrFileTooShort.Error()}
		out.status = dto.StatusError
		log.Warn().Msg("file too short")
		return out
	}

	cols := ResolveColumns(SplitLine(lines[0]))
	if cols.Positional {
		log.Info().Msg("header not recognised, using default column order")
	}

	existing, err := s.trades.ExistingIdentityKeys(ctx, acc.ID)
	if err != nil {
		out.errors = []string{fmt.Sprintf("load existing trades: %v", err)}
		out.status = dto.StatusError
		log.Error().Err(err).Msg("load existing trades failed")
		return out
	}
	dedup := NewDeduplicator(existing)

	rows := lines[1:]
	out.total = len(rows)
	accepted := make([]models.Trade, 0, len(rows))
	for i, line := range rows {
		t, err := rowToTrade(SplitLine(line), cols, s.now)
		if err != nil {
			out.errors = append(out.errors, fmt.Sprintf("Row %d: %v", i+2, err))
			continue
		}
		if !dedup.Admit(t.IdentityKey) {
			out.skipped++
			continue
		}
		now := s.now().UTC()
		t.ID = s.newID(now)
		t.AccountID = acc.ID
		t.CreatedAt = now
		accepted = append(accepted, t)
	}

	imported, batchErrs := writeBatches(ctx, s.trades, accepted, s.batchSize)
	out.imported = imported
	out.errors = append(out.errors, batchErrs...)
	out.status = fileStatus(out)

	log.Info().
		Int("rows", out.total).
		Int("imported", out.imported).
		Int("skipped", out.skipped).
		Int("errors", len(out.errors)).
		Dur("elapsed", s.now().Sub(start)).
		Str("status", out.status).
		Msg("file done")
	return out
}

// fileStatus: success when anything was inserted or skipped, or when the file
// had nothing to report at all; error when only errors remain.
func fileStatus(out fileOutcome) string {
	if out.imported+out.skipped > 0 {
		return dto.StatusSuccess
	}
	if len(out.errors) > 0 {
		return dto.StatusError
	}
	return dto.StatusSuccess
}

// reconcileContext detaches reconciliation from the caller's cancellation:
// once a batch has committed, the balance must be brought back in line with it.
func reconcileContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func unmatchedResult(filename, number string) dto.FileResult {
	msg := "could not extract an account number from the filename"
	if number != "" {
		msg = fmt.Sprintf("no account found for account number %s", number)
	}
	return dto.FileResult{
		Filename:      filename,
		AccountNumber: number,
		Errors:        []string{msg},
		Status:        dto.StatusUnmatched,
	}
}

func (s *importer) notify(ctx context.Context, ev notify.ImportEvent) {
	if err := s.notifier.ImportCompleted(ctx, ev); err != nil {
		logger.L().Warn().Err(err).Str("source", ev.Source).Msg("import notification failed")
	}
}

func touchedNumbers(imported int, number string) []string {
	if imported == 0 {
		return nil
	}
	return []string{number}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
