package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BetterCallFirewall/ShopAudit/internal/audit"
	"github.com/BetterCallFirewall/ShopAudit/internal/config"
	"github.com/BetterCallFirewall/ShopAudit/internal/llm"
	"github.com/BetterCallFirewall/ShopAudit/internal/logger"
	"github.com/BetterCallFirewall/ShopAudit/internal/storage"
	"github.com/BetterCallFirewall/ShopAudit/internal/web"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "shopaudit",
	Short:         "AI audits for Shopify storefronts",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the audit web UI",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, auditCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app is everything a command needs to run audits
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client *audit.Client
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, log.Named("llm"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	return &app{
		cfg:    cfg,
		logger: log,
		client: audit.NewClient(provider, log),
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	g, ctx := errgroup.WithContext(cmd.Context())

	history := storage.NewMemoryStorage(a.cfg.Web.HistorySize)
	auditor := storage.NewRecorder(a.client, history)

	srv, err := web.NewServer(ctx, a.cfg.Web, auditor, history, a.logger.Named("web"))
	if err != nil {
		return err
	}

	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down")
		return srv.Stop()
	})

	return g.Wait()
}
