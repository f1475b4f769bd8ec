package database

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	rqlitehttp "github.com/rqlite/rqlite-go-http"
	"github.com/rs/zerolog"
	"github.com/somwatee/HATS-v4/position"
)

const (
	// SQL statements.
	createTradeTableSQL = "CREATE TABLE IF NOT EXISTS trade (runid TEXT, id TEXT, entrytime INTEGER, exittime INTEGER, side TEXT, source TEXT, entryprice REAL, exitprice REAL, pnl REAL, stoploss REAL, target1 REAL, target2 REAL, target3 REAL, atr REAL, vwap REAL, exitreason TEXT, PRIMARY KEY (runid, id))"
	createRunTableSQL   = "CREATE TABLE IF NOT EXISTS run (id TEXT PRIMARY KEY, total INTEGER, wins INTEGER, losses INTEGER, winrate REAL, profitfactor REAL, maxdrawdown REAL, expectancy REAL, createdon INTEGER)"
	persistTradeSQL     = "INSERT OR REPLACE INTO trade(runid, id, entrytime, exittime, side, source, entryprice, exitprice, pnl, stoploss, target1, target2, target3, atr, vwap, exitreason) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)"
	persistRunSQL       = "INSERT OR REPLACE INTO run(id, total, wins, losses, winrate, profitfactor, maxdrawdown, expectancy, createdon) VALUES(?,?,?,?,?,?,?,?,?)"
)

// RunStorer defines the requirements for storing backtest runs.
type RunStorer interface {
	// PersistRun stores the provided trades and metrics of a run to the database.
	PersistRun(ctx context.Context, runID string, trades []position.Trade, metrics *position.Metrics) error
}

// DatabaseConfig is the configuration for the database.
type DatabaseConfig struct {
	// Endpoint represents the database connection endpoint.
	Endpoint string
	// User is the database user.
	User string
	// Pass is the database user pass.
	Pass string
	// Logger is the database logger.
	Logger *zerolog.Logger
}

// Database represents the database connection.
type Database struct {
	cfg    *DatabaseConfig
	client *rqlitehttp.Client
}

// Ensure the database implements the RunStorer interface.
var _ RunStorer = (*Database)(nil)

// NewDatabase initializes a new database connection.
func NewDatabase(ctx context.Context, cfg *DatabaseConfig) (*Database, error) {
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}

	httpc := &http.Client{Timeout: time.Second * 5}
	client, err := rqlitehttp.NewClient(cfg.Endpoint, httpc)
	if err != nil {
		return nil, fmt.Errorf("creating database client: %w", err)
	}

	if cfg.User != "" {
		client.SetBasicAuth(cfg.User, cfg.Pass)
	}

	db := &Database{
		cfg:    cfg,
		client: client,
	}

	err = db.bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping database: %w", err)
	}

	return db, nil
}

// bootstrap initializes the database.
func (db *Database) bootstrap(ctx context.Context) error {
	resp, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{SQL: createRunTableSQL},
		{SQL: createTradeTableSQL},
	}, &rqlitehttp.ExecuteOptions{
		Transaction: true,
		Timings:     true,
	})
	if err != nil {
		return err
	}

	has, idx, errStr := resp.HasError()
	if has {
		return fmt.Errorf("creating tables: %d -> %s", idx, errStr)
	}

	return nil
}

// finiteOrNil returns nil for infinite and NaN values, which have no json encoding.
func finiteOrNil(v float64) any {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}

	return v
}

// PersistRun stores the provided trades and metrics of a run in a single transaction.
func (db *Database) PersistRun(ctx context.Context, runID string, trades []position.Trade, metrics *position.Metrics) error {
	stmts := make(rqlitehttp.SQLStatements, 0, len(trades)+1)
	for idx := range trades {
		trade := &trades[idx]
		stmts = append(stmts, rqlitehttp.SQLStatements{
			{
				SQL: persistTradeSQL,
				PositionalParams: []any{runID, trade.ID, trade.EntryTime.Unix(), trade.ExitTime.Unix(),
					trade.Side.String(), trade.Source.String(), trade.EntryPrice, trade.ExitPrice, trade.PNL,
					finiteOrNil(trade.StopLoss), finiteOrNil(trade.Target1), finiteOrNil(trade.Target2),
					finiteOrNil(trade.Target3), trade.ATRAtEntry,
					trade.VWAPAtEntry, trade.ExitReason.String()},
			},
		}...)
	}

	stmts = append(stmts, rqlitehttp.SQLStatements{
		{
			SQL: persistRunSQL,
			PositionalParams: []any{runID, metrics.TotalTrades, metrics.WinCount, metrics.LossCount,
				metrics.WinRate, finiteOrNil(metrics.ProfitFactor), metrics.MaxDrawdown, metrics.Expectancy,
				time.Now().Unix()},
		},
	}...)

	resp, err := db.client.Execute(ctx, stmts, &rqlitehttp.ExecuteOptions{Transaction: true, Timings: true})
	if err != nil {
		return fmt.Errorf("persisting run %s: %w", runID, err)
	}

	has, idx, errStr := resp.HasError()
	if has {
		if idx >= 0 && idx < len(trades) {
			db.cfg.Logger.Error().Msgf("failed to persist trade: %s", spew.Sdump(trades[idx]))
		} else {
			db.cfg.Logger.Error().Msgf("failed to persist run metrics: %s", spew.Sdump(metrics))
		}

		return fmt.Errorf("persisting run %s: %d -> %s", runID, idx, errStr)
	}

	db.cfg.Logger.Info().Msgf("persisted run %s with %d trades", runID, len(trades))

	return nil
}
