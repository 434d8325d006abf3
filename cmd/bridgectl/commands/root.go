package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bridgequote/internal/adapter/storage/memory"
	"bridgequote/internal/adapter/storage/quoteapi"
	"bridgequote/internal/application"
	"bridgequote/internal/config"
	"bridgequote/internal/domain/tokenpriority"
	"bridgequote/internal/logger"
)

var (
	configDir string
	baseURL   string
	logLevel  string
	asJSON    bool

	appCtx *appContext
)

type appContext struct {
	cfg      *config.Config
	metadata *application.MetadataCache
	bridge   *application.BridgeService
	logger   *zap.Logger
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bridgectl",
		Short:         "Compare cross-chain bridge quotes from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configDir)
			if err != nil {
				return err
			}
			if baseURL != "" {
				cfg.QuoteAPI.BaseURL = baseURL
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			cfg.Logger.Level = logLevel
			cfg.Logger.Encoding = "console"

			log, err := logger.NewLogger(cfg.Logger, cfg.App)
			if err != nil {
				return err
			}

			priority, err := tokenpriority.Load(cfg.Tokens.PriorityFile)
			if err != nil {
				return err
			}

			client := quoteapi.NewClient(cfg.QuoteAPI, log)
			store := memory.NewCacheRepository(cfg.Cache, log)
			metadata := application.NewMetadataCache(client, store, priority, cfg.QuoteAPI, log)
			appCtx = &appContext{
				cfg:      cfg,
				metadata: metadata,
				bridge:   application.NewBridgeService(client, metadata, cfg.QuoteAPI, log),
				logger:   log,
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				_ = appCtx.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configDir, "config", "configs", "directory containing config.yaml")
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "quoting backend base URL (overrides config)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	root.AddCommand(chainsCmd(), tokensCmd(), quoteCmd())
	return root
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), appCtx.cfg.QuoteAPI.GetTimeout())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
