package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/somwatee/HATS-v4/service"
	"github.com/somwatee/HATS-v4/shared"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Error().Msgf("loading config: %v", err)
		os.Exit(1)
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	timeframe, _ := shared.ParseTimeframe(cfg.Timeframe)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleTermination(ctx, cancel)

	backtestCfg := service.BacktestConfig{
		BarsFilepath:        cfg.BarsFilepath,
		Resolution:          timeframe.Duration(),
		HTFMultiplier:       cfg.HTFMultiplier,
		HTFCloseStamp:       cfg.HTFCloseStamp,
		GapLookback:         cfg.GapLookback,
		ADXThreshold:        &cfg.ADXThreshold,
		ClassifierThreshold: &cfg.ClassifierThreshold,
		ClassifierURL:       cfg.ClassifierURL,
		ClassifierTimeout:   cfg.ClassifierTimeout,
		StrictFallback:      cfg.StrictFallback,
		OutputDir:           cfg.OutputDir,
		DatabaseEndpoint:    cfg.DatabaseEndpoint,
		DatabaseUser:        cfg.DatabaseUser,
		DatabasePass:        cfg.DatabasePass,
		Interval:            cfg.Interval,
	}
	backtest, err := service.NewBacktest(ctx, &backtestCfg)
	if err != nil {
		log.Error().Msgf("creating backtest service: %v", err)
		cancel()
		os.Exit(1)
	}

	err = backtest.Run(ctx)
	if err != nil && ctx.Err() == nil {
		log.Error().Msgf("running backtest: %v", err)
		cancel()
		os.Exit(1)
	}
}
