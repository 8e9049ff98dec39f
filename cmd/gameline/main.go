package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Aidan-usc/Game-Line/internal/board"
	"github.com/Aidan-usc/Game-Line/internal/cache"
	"github.com/Aidan-usc/Game-Line/internal/config"
	"github.com/Aidan-usc/Game-Line/internal/httpapi"
	"github.com/Aidan-usc/Game-Line/internal/ingest"
	"github.com/Aidan-usc/Game-Line/internal/league"
	"github.com/Aidan-usc/Game-Line/internal/logger"
	"github.com/Aidan-usc/Game-Line/internal/oddsapi"
	"github.com/Aidan-usc/Game-Line/internal/parlay"
	"github.com/Aidan-usc/Game-Line/internal/scheduler"
	"github.com/Aidan-usc/Game-Line/internal/storage"
	"github.com/Aidan-usc/Game-Line/internal/telegram"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
	envPath    = flag.String("env", ".env", "Optional dotenv file loaded before the config")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(*envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Failed to load %s: %v", *envPath, err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage: %v", err)
		}
	}()

	sports := league.Defaults()
	for i := range sports {
		sports[i].LookaheadDays = cfg.LookaheadDays(sports[i].Key, sports[i].LookaheadDays)
	}
	registry := league.NewRegistry(sports...)

	oddsClient := oddsapi.NewClient(
		cfg.OddsAPI.BaseURL,
		cfg.OddsAPI.APIKey,
		cfg.OddsAPI.Timeout,
		oddsapi.ClientConfig{
			Regions:             cfg.OddsAPI.Regions,
			Markets:             cfg.OddsAPI.Markets,
			OddsFormat:          cfg.OddsAPI.OddsFormat,
			DateFormat:          cfg.OddsAPI.DateFormat,
			MaxIdleConns:        cfg.OddsAPI.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.OddsAPI.MaxIdleConnsPerHost,
			IdleConnTimeout:     cfg.OddsAPI.IdleConnTimeout,
		},
	)

	loc := cfg.Location()
	oddsCache := cache.New(store, cache.Options{Location: loc})
	sched := scheduler.New()

	var telegramClient *telegram.Client
	if cfg.Telegram.Enabled {
		telegramClient, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		telegramClient.SetLocation(loc)
		logger.Info("Telegram client initialized successfully")
	} else {
		logger.Debug("Telegram notifications disabled")
	}

	opts := board.Options{
		Grace:        cfg.Board.HideGrace,
		HideInterval: cfg.Board.HideInterval,
	}
	var submitter parlay.Submitter = parlay.LogSubmitter{}
	if telegramClient != nil {
		opts.Notifier = telegramClient
		if cfg.Telegram.AnnounceParlays {
			submitter = telegramClient
		}
	}
	normalizer := ingest.NewNormalizer(registry, ingest.NewSelector(cfg.OddsAPI.Bookmakers))
	games := board.New(oddsClient, oddsCache, registry, normalizer, sched, opts)

	if cfg.Board.PrefetchInterval > 0 {
		prefetch := func() {
			if err := games.Prefetch(ctx); err != nil {
				logger.Warn("Prefetch failed: %v", err)
			}
		}
		logger.Debug("Running initial prefetch")
		prefetch()
		sched.Every("prefetch", cfg.Board.PrefetchInterval, prefetch)
	}

	for _, key := range cfg.Board.Watch {
		view, err := games.Open(ctx, key, board.LogRenderer{})
		if err != nil {
			logger.Warn("Failed to open %s board: %v", key, err)
			continue
		}
		defer view.Close()
	}

	if telegramClient != nil {
		telegramClient.ListenForCommands(ctx, games)
	}

	api := httpapi.New(games, parlay.Limits{
		MaxLegs:      cfg.Parlay.MaxLegs,
		MaxStake:     cfg.Parlay.MaxStake,
		DefaultStake: cfg.Parlay.DefaultStake,
	}, submitter, httpapi.Options{
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: cfg.Server.WriteTimeout,
		SlipIdleTTL:    cfg.Server.SlipIdleTTL,
		MaxSlips:       cfg.Server.MaxSlips,
	})
	sched.Every("slips:evict", cfg.Server.SlipSweepInterval, func() { api.EvictIdleSlips() })
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	sched.Start()
	logger.Info("Starting gameline on %s (sports: %v, storage: %s, hide grace: %v)",
		cfg.Server.Addr, registry.Keys(), cfg.Storage.Backend, cfg.Board.HideGrace)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		sched.Stop(shutdownCtx)
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Service stopped with error: %v", err)
		return
	}
	logger.Info("Service stopped")
}

func openStore(ctx context.Context, cfg config.StorageConfig) (storage.KV, error) {
	switch cfg.Backend {
	case "redis":
		logger.Info("Using Redis cache store at %s", cfg.Redis.Addr)
		return storage.NewRedis(ctx, storage.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			KeyTTL:   cfg.Redis.KeyTTL,
		})
	default:
		logger.Info("Using SQLite cache store at %s", cfg.DBPath)
		return storage.NewSQLite(cfg.DBPath)
	}
}
