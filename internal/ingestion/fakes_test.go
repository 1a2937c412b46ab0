package ingestion

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/guttosm/tradedesk/internal/notify"
	"github.com/guttosm/tradedesk/internal/storage"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory stand-in for both repositories.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	order    []string
	trades   map[string][]models.Trade

	batchCalls int
	failBatch  map[int]error // 1-based InsertTradesBatch call number -> error
	keysErr    error
	listErr    error
	updErr     error
}

func newMemStore(accs ...models.Account) *memStore {
	s := &memStore{accounts: map[string]*models.Account{}, trades: map[string][]models.Trade{}}
	for _, a := range accs {
		cp := a
		s.accounts[a.ID] = &cp
		s.order = append(s.order, a.ID)
	}
	return s
}

func (s *memStore) ExistingIdentityKeys(_ context.Context, accountID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keysErr != nil {
		return nil, s.keysErr
	}
	var keys []string
	for _, t := range s.trades[accountID] {
		keys = append(keys, t.IdentityKey)
	}
	return keys, nil
}

func (s *memStore) InsertTradesBatch(_ context.Context, trades []models.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchCalls++
	if err := s.failBatch[s.batchCalls]; err != nil {
		return err
	}
	for _, t := range trades {
		for _, existing := range s.trades[t.AccountID] {
			if existing.IdentityKey == t.IdentityKey {
				return errors.New("duplicate key value violates unique constraint")
			}
		}
	}
	for _, t := range trades {
		s.trades[t.AccountID] = append(s.trades[t.AccountID], t)
	}
	return nil
}

func (s *memStore) SumPnL(_ context.Context, accountID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, t := range s.trades[accountID] {
		sum = sum.Add(t.PnL)
	}
	return sum, nil
}

func (s *memStore) DeleteTradesByAccount(_ context.Context, accountID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.trades[accountID]))
	delete(s.trades, accountID)
	return n, nil
}

func (s *memStore) ListTrades(_ context.Context, accountID string, _ int) ([]models.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Trade(nil), s.trades[accountID]...), nil
}

func (s *memStore) GetStats(context.Context, string) (*models.AccountStats, error) {
	return &models.AccountStats{}, nil
}

func (s *memStore) GetAccount(_ context.Context, id string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *memStore) ListAccounts(context.Context) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.Account, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.accounts[id])
	}
	return out, nil
}

func (s *memStore) UpdateBalance(_ context.Context, id string, balance decimal.Decimal, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updErr != nil {
		return s.updErr
	}
	a, ok := s.accounts[id]
	if !ok {
		return storage.ErrAccountNotFound
	}
	a.Balance, a.Equity, a.UpdatedAt = balance, balance, at
	return nil
}

func (s *memStore) UpdateStartingBalance(_ context.Context, id string, sb decimal.Decimal, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return storage.ErrAccountNotFound
	}
	a.StartingBalance, a.UpdatedAt = sb, at
	return nil
}

func (s *memStore) tradeCount(accountID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trades[accountID])
}

// countingReconciler records every account it was asked to reconcile.
type countingReconciler struct {
	inner interface {
		Reconcile(ctx context.Context, accountID string) (decimal.Decimal, error)
	}
	calls   []string
	ctxErrs []error
}

func (c *countingReconciler) Reconcile(ctx context.Context, accountID string) (decimal.Decimal, error) {
	c.calls = append(c.calls, accountID)
	c.ctxErrs = append(c.ctxErrs, ctx.Err())
	return c.inner.Reconcile(ctx, accountID)
}

type recordingNotifier struct {
	events []notify.ImportEvent
	err    error
}

func (r *recordingNotifier) ImportCompleted(_ context.Context, ev notify.ImportEvent) error {
	r.events = append(r.events, ev)
	return r.err
}
