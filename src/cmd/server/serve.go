package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nttbank/msaccount/src/internal/adapter/creditcard"
	"github.com/nttbank/msaccount/src/internal/adapter/http/controller"
	"github.com/nttbank/msaccount/src/internal/adapter/http/middleware"
	"github.com/nttbank/msaccount/src/internal/adapter/http/router"
	"github.com/nttbank/msaccount/src/internal/adapter/notification"
	"github.com/nttbank/msaccount/src/internal/adapter/repository/memory"
	"github.com/nttbank/msaccount/src/internal/adapter/repository/postgres"
	"github.com/nttbank/msaccount/src/internal/adapter/repository/repo_interfaces"
	"github.com/nttbank/msaccount/src/internal/config"
	"github.com/nttbank/msaccount/src/internal/logger"
	"github.com/nttbank/msaccount/src/internal/metrics"
	"github.com/nttbank/msaccount/src/internal/usecase/services"
	"github.com/spf13/cobra"
)

const (
	storePostgres = "postgres"
	storeMemory   = "memory"
)

type repositories struct {
	accounts     repo_interfaces.AccountRepository
	commissions  repo_interfaces.CommissionRepository
	transactions repo_interfaces.TransactionRepository
	close        func() error
}

func newServeCmd() *cobra.Command {
	var store string
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, store, migrate)
		},
	}

	cmd.Flags().StringVar(&store, "store", storePostgres, "account storage backend: postgres or memory")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving (postgres only)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, store string, migrate bool) error {
	repos, err := openRepositories(ctx, cfg, store, migrate)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.close(); err != nil {
			logger.Error("close repositories failed", err, nil)
		}
	}()

	collector := metrics.NewCollector()

	cardClient := creditcard.NewClient(creditcard.Options{
		URL:             cfg.CreditCardURL,
		Timeout:         cfg.CreditCardTimeout,
		BreakerFailures: cfg.CreditCardBreakerFailures,
		BreakerCooldown: cfg.CreditCardBreakerCooldown,
		Metrics:         collector,
	})

	var mailer notification.Mailer = notification.LogMailer{}
	if cfg.SMTP.Enabled() {
		smtpMailer, err := notification.NewSMTPMailer(cfg.SMTP)
		if err != nil {
			return err
		}
		mailer = smtpMailer
	}
	notifier := notification.NewFallbackNotifier(mailer, cfg.SMTP.From, cfg.SMTP.To)
	defer notifier.Wait()

	commissionService := services.NewCommissionService(repos.commissions)
	accountService := services.NewAccountService(repos.accounts, cardClient, notifier, cfg.VIPMinBalance, cfg.PYMEMinBalance)
	transactionService := services.NewTransactionService(repos.accounts, repos.transactions, commissionService, cfg.FreeTransactionLimit, collector)
	reportService := services.NewReportService(repos.accounts, repos.transactions, nil)

	var authMiddleware func(http.Handler) http.Handler
	if cfg.ChannelKeyHash != "" {
		authMiddleware = middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKeyHash)
	} else {
		logger.Warn("basic auth disabled, CHANNEL_KEY_HASH is empty", nil)
	}

	handler := router.New(
		collector,
		authMiddleware,
		controller.NewAccountController(accountService),
		controller.NewTransactionController(transactionService),
		controller.NewCommissionController(commissionService),
		controller.NewReportController(reportService),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", logger.Fields{
			"addr":  cfg.HTTPAddr,
			"store": store,
		})
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("http server shutting down", nil)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func openRepositories(ctx context.Context, cfg config.Config, store string, migrate bool) (repositories, error) {
	switch store {
	case storeMemory:
		logger.Warn("using in-memory storage, data is lost on exit", nil)
		return repositories{
			accounts:     memory.NewAccountRepository(),
			commissions:  memory.NewCommissionRepository(),
			transactions: memory.NewTransactionRepository(),
			close:        func() error { return nil },
		}, nil
	case storePostgres:
		openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := postgres.Open(openCtx, cfg.DatabaseDSN)
		if err != nil {
			return repositories{}, err
		}
		if migrate {
			if err := runMigrations(openCtx, db, cfg.MigrationsDir); err != nil {
				_ = db.Close()
				return repositories{}, err
			}
		}
		return repositories{
			accounts:     postgres.NewAccountRepository(db),
			commissions:  postgres.NewCommissionRepository(db),
			transactions: postgres.NewTransactionRepository(db),
			close:        db.Close,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unknown store %q, expected %s or %s", store, storePostgres, storeMemory)
	}
}
