package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/zvezde365/zvezde-api/internal/api"
	"github.com/zvezde365/zvezde-api/internal/config"
	"github.com/zvezde365/zvezde-api/internal/esp"
	"github.com/zvezde365/zvezde-api/internal/horoscope"
	"github.com/zvezde365/zvezde-api/internal/pkg/logger"
	"github.com/zvezde365/zvezde-api/internal/ratelimit"
	"github.com/zvezde365/zvezde-api/internal/relay"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("server exited", "error", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender, err := esp.New(ctx, cfg, &http.Client{Timeout: cfg.Email.Timeout()})
	if err != nil {
		return fmt.Errorf("email provider: %w", err)
	}
	rl, err := relay.New(sender, relay.Config{
		From:             cfg.Email.OrdersFrom,
		NewsletterFrom:   cfg.Email.NewsletterFrom,
		DefaultRecipient: cfg.Email.DefaultRecipient,
		SiteName:         cfg.Email.SiteName,
		Timeout:          cfg.Email.Timeout(),
	})
	if err != nil {
		return fmt.Errorf("relay: %w", err)
	}

	store := horoscope.NewStore()
	source, err := horoscope.NewSource(ctx, cfg.Horoscopes)
	if err != nil {
		return err
	}
	opts := []horoscope.Option{horoscope.WithInterval(cfg.Horoscopes.RefreshInterval())}
	if cfg.Horoscopes.Watch && cfg.Horoscopes.Source == "file" {
		opts = append(opts, horoscope.WithWatch(cfg.Horoscopes.Path))
	}
	refresher := horoscope.NewRefresher(source, store, opts...)

	var (
		limiter     *ratelimit.Limiter
		redisClient *redis.Client
	)
	if cfg.Redis.URL != "" {
		limiter, redisClient, err = ratelimit.NewFromURL(ctx, cfg.Redis.URL, cfg.Redis.SubmissionsPerMinute, time.Minute)
		if err != nil {
			logger.Warn("submission rate limiting disabled", "error", err)
		} else {
			defer redisClient.Close()
		}
	}

	server := api.NewServer(cfg.Server, api.Deps{
		Relay:      rl,
		Horoscopes: store,
		Refresher:  refresher,
		Limiter:    limiter,
		Redis:      redisClient,
	})
	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return refresher.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("starting server", "addr", addr, "provider", sender.Name(), "horoscopes", source.Name())
		if err := server.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
