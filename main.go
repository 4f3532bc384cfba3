package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // Asia/Seoul must resolve on minimal images

	"github.com/iamdew/yellostory-lunch/api"
	"github.com/iamdew/yellostory-lunch/bot"
	"github.com/iamdew/yellostory-lunch/config"
	"github.com/iamdew/yellostory-lunch/db"
	"github.com/iamdew/yellostory-lunch/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lunch-server",
		Short:         "Cafeteria lunch menu API and chat bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the lunch HTTP API (default)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd.Context())
			},
		},
	)
	return root
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func runMigrate(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	pool, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (services.LunchStore, func(), error) {
	if cfg.Lunch.Store == config.StoreMemory {
		log.Warn("using in-memory store; menus are lost on restart")
		return services.NewMemStore(), func() {}, nil
	}

	pool, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("db: %w", err)
	}
	if cfg.Lunch.AutoMigrate {
		if err := db.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return services.NewPgStore(pool), pool.Close, nil
}

func runServe(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Lunch.Location()
	if err != nil {
		return err
	}
	events, err := config.LoadEventDays(cfg.Lunch.EventDaysFile)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	lunch := services.NewService(store,
		services.WithLocation(loc),
		services.WithEventDays(events),
		services.WithRegisterURL(cfg.Lunch.RegisterURL),
	)

	var tg *bot.Bot
	if cfg.Telegram.Token != "" {
		tg, err = bot.New(cfg.Telegram.Token, lunch, log.Named("telegram"))
		if err != nil {
			return fmt.Errorf("telegram bot: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	srv := api.New(cfg.HTTP, lunch, log)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	if tg != nil {
		g.Go(func() error {
			return tg.Start(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}
