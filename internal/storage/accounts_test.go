package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

var accountCols = []string{
	"id", "client_id", "client_name", "account_number", "label", "platform",
	"starting_balance", "balance", "equity", "updated_at",
}

func newMockAccounts(t *testing.T) (*accountsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	return &accountsRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestGetAccount_SQLMock(t *testing.T) {
	ts := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		rows    *sqlmock.Rows
		err     error
		wantErr error
	}{
		{
			name: "found",
			rows: sqlmock.NewRows(accountCols).
				AddRow("acc-1", "cl-1", "Jane Trader", "APEX12345678", "Eval 50k", "tradovate", "50000", "50125.5", "50125.5", ts),
		},
		{name: "not found", err: sql.ErrNoRows, wantErr: ErrAccountNotFound},
		{name: "db error", err: dummyErr{}, wantErr: dummyErr{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockAccounts(t)
			defer done()

			q := mock.ExpectQuery(`FROM accounts a\s+LEFT JOIN clients c ON c.id = a.client_id\s+WHERE a.id = \$1`).WithArgs("acc-1")
			if tc.rows != nil {
				q.WillReturnRows(tc.rows)
			} else {
				q.WillReturnError(tc.err)
			}

			acc, err := repo.GetAccount(context.Background(), "acc-1")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err=%v want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetAccount: %v", err)
			}
			if acc.ClientName != "Jane Trader" || acc.Platform != "tradovate" || !acc.Balance.Equal(decimal.RequireFromString("50125.5")) {
				t.Fatalf("unexpected account %+v", acc)
			}
		})
	}
}

func TestListAccounts_SQLMock(t *testing.T) {
	repo, mock, done := newMockAccounts(t)
	defer done()

	ts := time.Now().UTC()
	mock.ExpectQuery(`ORDER BY a.account_number`).
		WillReturnRows(sqlmock.NewRows(accountCols).
			AddRow("acc-1", "cl-1", "A", "APEX-12345678", "", "tradovate", "0", "0", "0", ts).
			AddRow("acc-2", "cl-2", "", "FTMO87654321", "main", "mt5", "100", "100", "100", ts))

	out, err := repo.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(out) != 2 || out[1].AccountNumber != "FTMO87654321" {
		t.Fatalf("unexpected accounts %+v", out)
	}
}

func TestUpdateBalance_SQLMock(t *testing.T) {
	cases := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "updated", affected: 1},
		{name: "missing", affected: 0, wantErr: ErrAccountNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockAccounts(t)
			defer done()

			at := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
			mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET balance = $2, equity = $2, updated_at = $3 WHERE id = $1")).
				WithArgs("acc-1", sqlmock.AnyArg(), at).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			err := repo.UpdateBalance(context.Background(), "acc-1", decimal.RequireFromString("10.5"), at)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err=%v want %v", err, tc.wantErr)
			}
		})
	}
}

func TestUpdateStartingBalance_SQLMock(t *testing.T) {
	repo, mock, done := newMockAccounts(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET starting_balance = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("acc-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(dummyErr{})

	if err := repo.UpdateStartingBalance(context.Background(), "acc-1", decimal.NewFromInt(1), time.Now()); err == nil {
		t.Fatalf("expected error")
	}
}
