package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/somwatee/HATS-v4/database"
	"github.com/somwatee/HATS-v4/engine"
	"github.com/somwatee/HATS-v4/fetch"
	"github.com/somwatee/HATS-v4/indicator"
	"github.com/somwatee/HATS-v4/market"
	"github.com/somwatee/HATS-v4/position"
	"github.com/somwatee/HATS-v4/report"
	"github.com/somwatee/HATS-v4/shared"
	"go.uber.org/atomic"
)

const (
	// TradesCSVFile is the trade log csv file name.
	TradesCSVFile = "backtest_trades.csv"
	// TradesParquetFile is the trade log parquet file name.
	TradesParquetFile = "backtest_trades.parquet"
	// MetricsFile is the metrics record file name.
	MetricsFile = "backtest_metrics.txt"
)

// BacktestConfig represents the configuration struct for the backtest service.
type BacktestConfig struct {
	// BarsFilepath is the filepath to the base bar series (.json or .csv).
	BarsFilepath string
	// Resolution is the expected interval between base bars.
	Resolution time.Duration
	// HTFMultiplier is the number of base intervals per higher timeframe bucket.
	HTFMultiplier int
	// HTFCloseStamp joins higher timeframe values at bucket close instead of bucket open.
	HTFCloseStamp bool
	// GapLookback caps the number of bars scanned backwards for an imbalance.
	GapLookback int
	// ADXThreshold is the minimum higher timeframe adx required to confirm a
	// trend. The engine default applies when nil.
	ADXThreshold *float64
	// ClassifierThreshold is the minimum class probability for a fallback
	// signal. The engine default applies when nil.
	ClassifierThreshold *float64
	// ClassifierURL is the base url of the inference service. The fallback path
	// is disabled when empty.
	ClassifierURL string
	// ClassifierTimeout is the deadline of a single classifier call.
	ClassifierTimeout time.Duration
	// StrictFallback restricts the fallback path to rows with a structure shift and an imbalance.
	StrictFallback bool
	// OutputDir is the directory the trade logs and metrics are written to.
	OutputDir string
	// DatabaseEndpoint is the rqlite endpoint runs are persisted to. Runs are
	// not persisted when empty.
	DatabaseEndpoint string
	// DatabaseUser is the database user.
	DatabaseUser string
	// DatabasePass is the database user pass.
	DatabasePass string
	// Interval is the period between scheduled re-runs. A single run is
	// performed when zero.
	Interval time.Duration
	// Store overrides the run storer created from the database endpoint.
	Store database.RunStorer
}

// Validate asserts the config sane inputs.
func (cfg *BacktestConfig) Validate() error {
	var errs error

	if cfg.BarsFilepath == "" {
		errs = errors.Join(errs, fmt.Errorf("bars filepath cannot be an empty string"))
	}
	if cfg.OutputDir == "" {
		errs = errors.Join(errs, fmt.Errorf("output directory cannot be an empty string"))
	}
	if cfg.Interval < 0 {
		errs = errors.Join(errs, fmt.Errorf("interval cannot be negative"))
	}
	if cfg.ClassifierTimeout < 0 {
		errs = errors.Join(errs, fmt.Errorf("classifier timeout cannot be negative"))
	}
	if cfg.DatabaseUser != "" && cfg.DatabaseEndpoint == "" {
		errs = errors.Join(errs, fmt.Errorf("database user provided without a database endpoint"))
	}

	return errs
}

// Result represents the outcome of a single backtest run.
type Result struct {
	// RunID uniquely identifies the run.
	RunID string
	// Bars is the number of base bars processed.
	Bars int
	// Signals is the number of rows labeled Buy or Sell.
	Signals int
	// Trades are the closed trades in entry order.
	Trades []position.Trade
	// Metrics are the performance metrics of the trades.
	Metrics position.Metrics
}

// Backtest represents the backtesting service.
type Backtest struct {
	cfg       *BacktestConfig
	pipeline  *market.Pipeline
	engine    *engine.Engine
	simulator *position.Simulator
	store     database.RunStorer
	logger    *zerolog.Logger
	runs      atomic.Uint32
}

// NewBacktest initializes a new backtest service.
func NewBacktest(ctx context.Context, cfg *BacktestConfig) (*Backtest, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating backtest config: %w", err)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger := log.With().Str("service", "backtest").Logger()

	stamp := indicator.StampOpen
	if cfg.HTFCloseStamp {
		stamp = indicator.StampClose
	}

	pipelineLogger := logger.With().Str("component", "pipeline").Logger()
	pipeline, err := market.NewPipeline(&market.PipelineConfig{
		Resolution:    cfg.Resolution,
		HTFMultiplier: cfg.HTFMultiplier,
		HTFStamp:      stamp,
		GapLookback:   cfg.GapLookback,
		Logger:        &pipelineLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}

	var classifier shared.Classifier
	if cfg.ClassifierURL != "" {
		classifier = fetch.NewClassifierClient(&fetch.ClassifierConfig{
			BaseURL: cfg.ClassifierURL,
		})
	}

	engineLogger := logger.With().Str("component", "engine").Logger()
	signalEngine, err := engine.NewEngine(&engine.EngineConfig{
		ADXThreshold:        cfg.ADXThreshold,
		ClassifierThreshold: cfg.ClassifierThreshold,
		Classifier:          classifier,
		ClassifierTimeout:   cfg.ClassifierTimeout,
		StrictFallback:      cfg.StrictFallback,
		Logger:              &engineLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	simulatorLogger := logger.With().Str("component", "simulator").Logger()
	simulator := position.NewSimulator(&position.SimulatorConfig{
		Logger: &simulatorLogger,
	})

	store := cfg.Store
	if store == nil && cfg.DatabaseEndpoint != "" {
		dbLogger := logger.With().Str("component", "database").Logger()
		store, err = database.NewDatabase(ctx, &database.DatabaseConfig{
			Endpoint: cfg.DatabaseEndpoint,
			User:     cfg.DatabaseUser,
			Pass:     cfg.DatabasePass,
			Logger:   &dbLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating database: %w", err)
		}
	}

	return &Backtest{
		cfg:       cfg,
		pipeline:  pipeline,
		engine:    signalEngine,
		simulator: simulator,
		store:     store,
		logger:    &logger,
	}, nil
}

// logDiagnostics logs the primary condition counts per direction.
func (b *Backtest) logDiagnostics(diag engine.Diagnostics) {
	for _, entry := range []struct {
		direction string
		counts    engine.ConditionCounts
	}{
		{direction: "bullish", counts: diag.Bullish},
		{direction: "bearish", counts: diag.Bearish},
	} {
		c := entry.counts
		b.logger.Info().Msgf("%s conditions: shifts %d, gaps %d, overlaps %d, "+
			"pullbacks %d, confirmations %d, matches %d", entry.direction, c.Shifts,
			c.Gaps, c.Overlaps, c.Pullbacks, c.Confirmations, c.Matches)
	}
}

// writeReports persists the trade logs and metrics record to the output directory.
func (b *Backtest) writeReports(trades []position.Trade, metrics *position.Metrics) error {
	err := report.WriteTradesCSV(filepath.Join(b.cfg.OutputDir, TradesCSVFile), trades)
	if err != nil {
		return fmt.Errorf("writing trades csv: %w", err)
	}

	err = report.WriteTradesParquet(filepath.Join(b.cfg.OutputDir, TradesParquetFile), trades)
	if err != nil {
		return fmt.Errorf("writing trades parquet: %w", err)
	}

	err = report.WriteMetrics(filepath.Join(b.cfg.OutputDir, MetricsFile), metrics)
	if err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}

	return nil
}

// RunOnce performs a single backtest over the configured bar series.
func (b *Backtest) RunOnce(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	b.runs.Inc()

	bars, err := fetch.LoadBars(b.cfg.BarsFilepath)
	if err != nil {
		return nil, fmt.Errorf("loading bars: %w", err)
	}

	rows, err := b.pipeline.Run(bars)
	if err != nil {
		return nil, fmt.Errorf("computing features: %w", err)
	}

	b.logDiagnostics(b.engine.Diagnose(rows))

	labeled, err := b.engine.Label(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("labeling rows: %w", err)
	}

	var signals int
	for idx := range labeled {
		if labeled[idx].Label != shared.NoTrade {
			signals++
		}
	}

	trades := b.simulator.Run(labeled)
	metrics := position.Evaluate(trades)

	err = b.writeReports(trades, &metrics)
	if err != nil {
		return nil, err
	}

	if b.store != nil {
		err = b.store.PersistRun(ctx, runID, trades, &metrics)
		if err != nil {
			return nil, fmt.Errorf("persisting run %s: %w", runID, err)
		}
	}

	event := b.logger.Info().Str("run", runID)
	for key, value := range metrics.Record() {
		event = event.Float64(key, value)
	}
	event.Msgf("run #%d done: %d bars, %d signals", b.runs.Load(), len(bars), signals)

	return &Result{
		RunID:   runID,
		Bars:    len(bars),
		Signals: signals,
		Trades:  trades,
		Metrics: metrics,
	}, nil
}

// Run handles the lifecycle of the backtest service. Without an interval a
// single run is performed, otherwise the backtest is re-run on schedule until
// the context is cancelled. Scheduled runs that fail are logged, a classifier
// contract violation stops the schedule.
func (b *Backtest) Run(ctx context.Context) error {
	if b.cfg.Interval == 0 {
		_, err := b.RunOnce(ctx)
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var fatal atomic.Error
	jobScheduler := gocron.NewScheduler(time.UTC)
	_, err := jobScheduler.Every(b.cfg.Interval).SingletonMode().Do(func() {
		_, err := b.RunOnce(ctx)
		if err == nil {
			return
		}

		var contractErr *shared.ClassifierContractError
		if errors.As(err, &contractErr) {
			fatal.Store(err)
			cancel()
			return
		}

		if ctx.Err() == nil {
			b.logger.Error().Err(err).Msgf("scheduled backtest run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling backtest: %w", err)
	}

	jobScheduler.StartAsync()
	<-ctx.Done()
	jobScheduler.Stop()

	return fatal.Load()
}
