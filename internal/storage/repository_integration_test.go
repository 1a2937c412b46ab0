//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	migrations "github.com/guttosm/tradedesk/db"
	"github.com/guttosm/tradedesk/internal/domain/models"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "tradedesk",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=tradedesk sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "tradedesk")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	goose.SetBaseFS(migrations.Migrations)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	if err := goose.Up(db, migrations.MigrationsDir); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func seedAccount(t *testing.T, db *sql.DB, number string, starting string) string {
	t.Helper()
	agency, client, account := uuid.NewString(), uuid.NewString(), uuid.NewString()
	stmts := []struct {
		q    string
		args []any
	}{
		{`INSERT INTO agencies (id, name) VALUES ($1, 'Apex Agency')`, []any{agency}},
		{`INSERT INTO clients (id, agency_id, name) VALUES ($1, $2, 'Jane Trader')`, []any{client, agency}},
		{`INSERT INTO accounts (id, client_id, account_number, label, starting_balance) VALUES ($1, $2, $3, 'Eval', $4)`,
			[]any{account, client, number, starting}},
	}
	for _, s := range stmts {
		if _, err := db.Exec(s.q, s.args...); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return account
}

func trade(accountID, key, pnl string, closed time.Time) models.Trade {
	return models.Trade{
		ID:           uuid.NewString(),
		AccountID:    accountID,
		IdentityKey:  key,
		Symbol:       "MNQZ4",
		TradeType:    models.TradeTypeBuy,
		EntryPrice:   decimal.RequireFromString("21000.25"),
		ExitPrice:    decimal.RequireFromString("21010.50"),
		PositionSize: "1",
		PnL:          decimal.RequireFromString(pnl),
		OpenedAt:     closed.Add(-time.Minute),
		ClosedAt:     closed,
		Duration:     "1min",
		Status:       models.TradeStatusClosed,
	}
}

func TestRepository_Integration_TableDriven(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	ctx := context.Background()
	accountID := seedAccount(t, db, "APEX-12345678", "50000")
	trades := NewTradesRepository(db)
	accounts := NewAccountsRepository(db)

	sep := time.Date(2024, 9, 30, 15, 0, 0, 0, time.UTC)
	oct := time.Date(2024, 10, 1, 15, 0, 0, 0, time.UTC)
	batch := []models.Trade{
		trade(accountID, "1-1", "395.00", sep),
		trade(accountID, "2-2", "-50.00", oct),
		trade(accountID, "3-3", "1234.56", oct.Add(time.Hour)),
	}
	if err := trades.InsertTradesBatch(ctx, batch); err != nil {
		t.Fatalf("insert: %v", err)
	}

	t.Run("duplicate identity key rejects whole batch", func(t *testing.T) {
		err := trades.InsertTradesBatch(ctx, []models.Trade{
			trade(accountID, "4-4", "1", oct),
			trade(accountID, "1-1", "1", oct),
		})
		if err == nil {
			t.Fatalf("expected unique violation")
		}
		keys, err := trades.ExistingIdentityKeys(ctx, accountID)
		if err != nil || len(keys) != 3 {
			t.Fatalf("keys=%v err=%v, want 3 keys", keys, err)
		}
	})

	t.Run("sum and list", func(t *testing.T) {
		sum, err := trades.SumPnL(ctx, accountID)
		if err != nil || !sum.Equal(decimal.RequireFromString("1579.56")) {
			t.Fatalf("sum=%s err=%v", sum, err)
		}
		list, err := trades.ListTrades(ctx, accountID, 2)
		if err != nil || len(list) != 2 || list[0].IdentityKey != "3-3" {
			t.Fatalf("list=%+v err=%v", list, err)
		}
	})

	t.Run("stats", func(t *testing.T) {
		st, err := trades.GetStats(ctx, accountID)
		if err != nil {
			t.Fatalf("stats: %v", err)
		}
		if st.TotalTrades != 3 || st.Wins != 2 || st.Losses != 1 || len(st.Monthly) != 2 {
			t.Fatalf("unexpected stats %+v", st)
		}
		if st.Monthly[0].Month != "2024-09" || st.Monthly[1].Trades != 2 {
			t.Fatalf("unexpected monthly %+v", st.Monthly)
		}
	})

	t.Run("account balance updates", func(t *testing.T) {
		now := time.Now().UTC()
		if err := accounts.UpdateBalance(ctx, accountID, decimal.RequireFromString("51579.56"), now); err != nil {
			t.Fatalf("update balance: %v", err)
		}
		acc, err := accounts.GetAccount(ctx, accountID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if acc.ClientName != "Jane Trader" || !acc.Balance.Equal(acc.Equity) || acc.Balance.StringFixed(2) != "51579.56" {
			t.Fatalf("unexpected account %+v", acc)
		}
		if err := accounts.UpdateBalance(ctx, uuid.NewString(), decimal.Zero, now); err != ErrAccountNotFound {
			t.Fatalf("want ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("delete by account", func(t *testing.T) {
		n, err := trades.DeleteTradesByAccount(ctx, accountID)
		if err != nil || n != 3 {
			t.Fatalf("deleted=%d err=%v", n, err)
		}
		sum, _ := trades.SumPnL(ctx, accountID)
		if !sum.IsZero() {
			t.Fatalf("sum after delete=%s", sum)
		}
	})
}
