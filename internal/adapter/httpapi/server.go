package httpapi

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine exposing the transaction API.
func NewRouter(h *TransactionHandler, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/transactions", h.CreateTransaction)
		api.GET("/transactions/stream", h.StreamTransactions)
		api.GET("/accounts/:number", h.GetAccount)
		api.GET("/accounts/:number/transactions", h.ListTransactions)
	}

	return r
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
