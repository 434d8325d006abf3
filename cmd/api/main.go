package main

import (
	"context"
	"errors"
	"log"
	"net"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"bridgequote/internal/adapter/delivery/http"
	handler "bridgequote/internal/adapter/handler/http"
	"bridgequote/internal/adapter/handler/stream"
	"bridgequote/internal/adapter/probe"
	"bridgequote/internal/adapter/storage/memory"
	"bridgequote/internal/adapter/storage/quoteapi"
	"bridgequote/internal/application"
	"bridgequote/internal/config"
	"bridgequote/internal/domain/tokenpriority"
	"bridgequote/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// --- Configuration ---
	cfgPath := "configs"
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	// --- Logger ---
	appLogger, err := logger.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info("Logger initialized", zap.Any("config", cfg.Logger))

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Dependency Injection (Manual) ---
	appLogger.Info("Initializing dependencies...")

	priority, err := tokenpriority.Load(cfg.Tokens.PriorityFile)
	if err != nil {
		appLogger.Fatal("Failed to load token priority table", zap.Error(err))
	}

	// Storage
	quoteClient := quoteapi.NewClient(cfg.QuoteAPI, appLogger)
	cacheRepo := memory.NewCacheRepository(cfg.Cache, appLogger)

	// Services
	metadata := application.NewMetadataCache(quoteClient, cacheRepo, priority, cfg.QuoteAPI, appLogger)
	bridgeService := application.NewBridgeService(quoteClient, metadata, cfg.QuoteAPI, appLogger)

	loadCtx, cancelLoad := context.WithTimeout(rootCtx, cfg.QuoteAPI.GetTimeout())
	if err := metadata.LoadChains(loadCtx); err != nil {
		appLogger.Error("Starting without chains", zap.Error(err))
	}
	cancelLoad()

	// --- REST server ---
	appLogger.Info("Setting up HTTP router...")
	backendProbe := probe.NewChecker(cfg.QuoteAPI, nil, appLogger)
	quoteHandler := handler.NewQuoteHandler(metadata, bridgeService, backendProbe, appLogger)
	r := router.New()
	http.RegisterRoutes(r, quoteHandler, appLogger)

	restServer := &fasthttp.Server{
		Handler: http.LoggingMiddleware(r.Handler, appLogger.Named("HTTP")),
		Name:    cfg.App.Name,
	}

	// --- Stream server ---
	streamServer := &nethttp.Server{
		Addr:              ":" + cfg.Stream.Port,
		Handler:           stream.NewHandler(metadata, bridgeService, *cfg, appLogger),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return rootCtx },
	}

	serverErrors := make(chan error, 2)
	go func() {
		serverAddr := ":" + cfg.Server.Port
		appLogger.Info("Starting HTTP server", zap.String("address", serverAddr))
		serverErrors <- restServer.ListenAndServe(serverAddr)
	}()
	go func() {
		appLogger.Info("Starting stream server", zap.String("address", streamServer.Addr))
		if err := streamServer.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		appLogger.Error("Server failed", zap.Error(err))
	case <-rootCtx.Done():
		appLogger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := streamServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("Stream server shutdown failed", zap.Error(err))
	}
	if err := restServer.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Warn("HTTP server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Servers stopped")
}
