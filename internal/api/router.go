package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/tradedesk/internal/middleware"
)

const defaultRequestTimeout = 60 * time.Second

// RouterConfig tunes the cross-cutting middlewares.
type RouterConfig struct {
	RequestsPerMinute int           // per client IP; <= 0 uses the limiter default
	MaxUploadBytes    int64         // body cap on import routes; <= 0 disables it
	RequestTimeout    time.Duration // <= 0 uses defaultRequestTimeout
}

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Bounds every request with a context timeout.
//   - Caps upload size on the import routes.
//   - Mounts Swagger docs (/swagger/*any) and the /api/v1 routes.
//
// Health and readiness endpoints are registered in app.InitializeApp().
func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(cfg.RequestsPerMinute),
	)

	// ─── Timeout ──────────────────────────────────
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		imports := v1.Group("/imports", middleware.BodyLimit(cfg.MaxUploadBytes))
		imports.POST("", handler.ImportFile)
		imports.POST("/batch", handler.ImportFiles)

		accounts := v1.Group("/accounts/:id")
		accounts.GET("", handler.GetAccount)
		accounts.GET("/trades", handler.ListTrades)
		accounts.DELETE("/trades", handler.ClearTrades)
		accounts.PATCH("/starting-balance", handler.UpdateStartingBalance)
		accounts.POST("/reconcile", handler.Reconcile)
		accounts.GET("/stats", handler.Stats)
	}

	return router
}
