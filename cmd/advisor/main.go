package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"fareadvisor/internal/advisor"
	"fareadvisor/internal/cache"
	"fareadvisor/internal/calculator"
	"fareadvisor/internal/config"
	"fareadvisor/internal/fare"
	"fareadvisor/internal/scheduler"
)

const cachePrefix = "fareadvisor:"

func main() {
	trips := flag.Float64("trips", -1, "trips per week (overrides config)")
	zone := flag.String("zone", "", "zone letters, e.g. AB or BCD (overrides config)")
	watch := flag.Bool("watch", false, "keep running and refresh on the configured schedule")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	calculator.SetLogger(logger.Named("calculator"))

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if *trips >= 0 {
		cfg.Rider.TripsPerWeek = *trips
	}
	if *zone != "" {
		cfg.Rider.Zone = *zone
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation", zap.Error(err))
	}

	// SQLite-backed store, falling back to memory when the file
	// cannot be opened.
	var store cache.Store
	sqlStore, err := cache.NewSQLiteStore(cfg.Cache.SQLitePath, cfg.Cache.MaxBytes, logger.Named("store"))
	if err != nil {
		logger.Warn("sqlite store unavailable, using in-memory store", zap.Error(err))
		store = cache.NewMemoryStore(cfg.Cache.MaxBytes)
	} else {
		store = sqlStore
	}
	defer store.Close()

	priceCache := cache.New(store, cachePrefix, logger.Named("cache"))
	client := fare.NewClient(cfg.API.BaseURL, cfg.API.Language, logger.Named("client"))
	normalizer := fare.NewNormalizer(client, priceCache, logger.Named("normalizer"))
	adv := advisor.New(normalizer, logger.Named("advisor"))

	rider := scheduler.Rider{
		TripsPerWeek:  cfg.Rider.TripsPerWeek,
		Zone:          cfg.Rider.Zone,
		CustomerGroup: cfg.Rider.CustomerGroup,
		Municipality:  cfg.Rider.HomeMunicipality,
	}

	if !*watch {
		cmp, err := adv.Compare(context.Background(), rider.TripsPerWeek, rider.Zone, rider.CustomerGroup, rider.Municipality)
		if err != nil {
			logger.Error("comparison failed", zap.Error(err))
			fmt.Fprintln(os.Stderr, advisor.UserMessage(err))
			os.Exit(1)
		}
		fmt.Println(advisor.FormatComparison(cmp))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, adv, priceCache, logger.Named("scheduler"), func(report string) {
		fmt.Println(report)
	})
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.CleanupCron, rider); err != nil {
		logger.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	// First report right away instead of waiting for the next tick.
	go sched.RunRefreshNow(rider)

	logger.Info("watch mode running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping")
	cancel()
}
