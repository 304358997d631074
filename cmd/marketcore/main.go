package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Goutam245/Crypto-DashBoard/internal/api"
	alertv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/alert/v1"
	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	"github.com/Goutam245/Crypto-DashBoard/internal/feed"
	"github.com/Goutam245/Crypto-DashBoard/internal/usecase/alert"
	"github.com/Goutam245/Crypto-DashBoard/internal/usecase/candle"
	"github.com/Goutam245/Crypto-DashBoard/internal/usecase/core"
	"github.com/Goutam245/Crypto-DashBoard/internal/usecase/orderbook"
	"github.com/Goutam245/Crypto-DashBoard/pkg/config"
	"github.com/Goutam245/Crypto-DashBoard/pkg/interval"
	"github.com/Goutam245/Crypto-DashBoard/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	instruments, err := cfg.ParseInstruments()
	if err != nil {
		appLogger.Error(err)
		os.Exit(1)
	}

	intervals, err := interval.Parse(cfg.Candle.Intervals)
	if err != nil {
		appLogger.Error(err)
		os.Exit(1)
	}

	marketCore, err := core.NewCore(core.Options{
		Book:   orderbookOptions(cfg),
		Candle: candleOptions(cfg, intervals),
		Alert: alert.Options{
			HistoryCap: cfg.Alert.HistoryCap,
		},
		SubscriberQueue: cfg.Subscriber.QueueSize,
	}, appLogger)
	if err != nil {
		appLogger.Error(err)
		os.Exit(1)
	}

	startPrices := defaultStartPrices()
	for _, instrument := range instruments {
		if err := marketCore.RegisterInstrument(instrument); err != nil {
			appLogger.Error(err)
			os.Exit(1)
		}
	}

	for _, rule := range defaultRules(instruments) {
		if err := marketCore.AddRule(rule); err != nil {
			appLogger.Error(err)
			os.Exit(1)
		}
	}

	// Synthetic tick source
	if cfg.Feed.Enabled {
		simulator, err := feed.NewSimulator(feed.Options{
			Interval:    time.Duration(cfg.Feed.IntervalMillis) * time.Millisecond,
			Drift:       cfg.Feed.Drift,
			Seed:        cfg.Feed.Seed,
			SecondVenue: cfg.Feed.SecondVenue,
			VenueOffset: cfg.Feed.VenueOffset,
			StartPrices: startPrices,
		}, instruments, marketCore, appLogger)
		if err != nil {
			appLogger.Error(err)
			os.Exit(1)
		}
		go simulator.Run(ctx)
	}

	// HTTP and websocket surface
	server := api.NewServer(marketCore, appLogger)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(ctx, fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	}()

	appLogger.Info("market core started",
		logger.Field{Key: "app", Value: cfg.App.Name},
		logger.Field{Key: "environment", Value: cfg.App.Environment},
		logger.Field{Key: "instruments", Value: len(instruments)},
		logger.Field{Key: "port", Value: cfg.Server.Port},
	)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		appLogger.Info("shutting down")
	case err := <-serverErr:
		if err != nil {
			appLogger.Error(err)
		}
	}

	cancel()
	appLogger.Info("market core stopped")
}

func orderbookOptions(cfg *config.Config) orderbook.Options {
	opts := orderbook.DefaultOptions()
	opts.Depth = cfg.Book.Depth
	opts.Spacing = cfg.Book.Spacing
	opts.Seed = cfg.Book.Seed
	return opts
}

func candleOptions(cfg *config.Config, intervals []interval.Interval) candle.Options {
	return candle.Options{
		Intervals: intervals,
		Retention: cfg.Candle.Retention,
	}
}

// defaultStartPrices seeds the walk near familiar levels so the demo feed
// looks plausible out of the box.
func defaultStartPrices() map[string]float64 {
	return map[string]float64{
		"BTC-USDT": 67000,
		"ETH-USDT": 3500,
		"SOL-USDT": 150,
	}
}

// defaultRules installs a starter rule set covering every predicate kind.
func defaultRules(instruments []marketv1.Instrument) []alertv1.Rule {
	rules := []alertv1.Rule{
		{
			ID:           "volatility-any",
			Kind:         alertv1.KindVolatilitySpike,
			InstrumentID: alertv1.WildcardInstrument,
			Params:       alertv1.Params{ThresholdPct: 0.02},
			Cooldown:     time.Minute,
		},
		{
			ID:           "spread-any",
			Kind:         alertv1.KindSpreadAnomaly,
			InstrumentID: alertv1.WildcardInstrument,
			Params:       alertv1.Params{ThresholdPct: 0.005},
			Cooldown:     time.Minute,
		},
		{
			ID:           "volume-any",
			Kind:         alertv1.KindVolumeSpike,
			InstrumentID: alertv1.WildcardInstrument,
			Params:       alertv1.Params{Multiple: 3, Lookback: 20},
			Cooldown:     5 * time.Minute,
		},
	}
	for _, instrument := range instruments {
		if price, ok := defaultStartPrices()[instrument.ID]; ok {
			rules = append(rules, alertv1.Rule{
				ID:           "threshold-" + instrument.ID,
				Kind:         alertv1.KindPriceThreshold,
				InstrumentID: instrument.ID,
				Params:       alertv1.Params{Level: price * 1.02, Direction: alertv1.DirectionAbove},
				Cooldown:     10 * time.Minute,
			})
		}
	}
	return rules
}
