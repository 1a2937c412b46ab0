package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradedesk/config"
	"github.com/guttosm/tradedesk/internal/api"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Wires repositories and services via NewServices().
//   - Creates the HTTP handler layer and the Gin router.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close the DB connection.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	svcs := NewServices(db, cfg)
	handler := api.NewHandler(svcs.Imports, svcs.Accounts)

	router := api.NewRouter(handler, api.RouterConfig{
		RequestsPerMinute: cfg.Server.RateLimitPerMinute,
		MaxUploadBytes:    cfg.Import.MaxUploadMB << 20,
	})

	api.NewHealthHandler(db.PingContext).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
