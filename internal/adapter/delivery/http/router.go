package http

import (
	"time"

	handler "bridgequote/internal/adapter/handler/http"

	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
)

// RegisterRoutes sets up the quote API routes, health check and metrics endpoint.
func RegisterRoutes(r *router.Router, h *handler.QuoteHandler, logger *zap.Logger) {
	logger.Info("Setting up application-specific routes...")

	r.GET("/chains", h.GetChains)
	r.GET("/chains/{chainId}/tokens", h.GetTokens)
	r.POST("/chains/{chainId}/tokens/refresh", h.RefreshTokens)
	r.POST("/quotes", h.CompareQuotes)

	logger.Info("Setting up health check and metrics routes...")
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))

	logger.Info("All routes registered.")
}

// LoggingMiddleware logs each request with its status and duration.
func LoggingMiddleware(next fasthttp.RequestHandler, logger *zap.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		logger.Info("Request handled",
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("uri", ctx.RequestURI()),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
