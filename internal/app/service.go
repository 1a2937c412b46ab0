package app

import (
	"database/sql"

	"github.com/guttosm/tradedesk/config"
	"github.com/guttosm/tradedesk/internal/ingestion"
	"github.com/guttosm/tradedesk/internal/notify"
	"github.com/guttosm/tradedesk/internal/service"
	"github.com/guttosm/tradedesk/internal/storage"
)

// Services bundles the business layer shared by the HTTP server and the CLI.
type Services struct {
	Imports  ingestion.Service
	Accounts service.AccountService
}

// notifierCtor is an indirection for unit testing; defaults to notify.New.
var notifierCtor = notify.New

// NewServices wires repositories, the balance reconciler, the import pipeline
// and the account service over one database handle.
func NewServices(db *sql.DB, cfg config.Config) Services {
	trades := storage.NewTradesRepository(db)
	accounts := storage.NewAccountsRepository(db)
	reconciler := service.NewReconciler(accounts, trades)

	return Services{
		Imports:  ingestion.NewService(trades, accounts, reconciler, notifierCtor(cfg.Notify.WebhookURL), cfg.Import.BatchSize),
		Accounts: service.NewAccountService(accounts, trades, reconciler),
	}
}
