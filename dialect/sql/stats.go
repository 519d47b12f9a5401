package sql

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Endeer/pontoon/dialect"
)

// QueryStats counts the statements sent through a StatsDriver, including
// those of its transactions.
type QueryStats struct {
	queries atomic.Int64
	execs   atomic.Int64
	slow    atomic.Int64
	errors  atomic.Int64
}

// StatsSnapshot is a point-in-time copy of QueryStats.
type StatsSnapshot struct {
	// TotalQueries is the number of store round trips that returned rows.
	TotalQueries int64
	TotalExecs   int64
	SlowQueries  int64
	Errors       int64
}

// Stats returns a snapshot of the counters.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries: s.queries.Load(),
		TotalExecs:   s.execs.Load(),
		SlowQueries:  s.slow.Load(),
		Errors:       s.errors.Load(),
	}
}

// Reset zeroes the counters.
func (s *QueryStats) Reset() {
	s.queries.Store(0)
	s.execs.Store(0)
	s.slow.Store(0)
	s.errors.Store(0)
}

// LogValue reports the counters as a log group.
func (s StatsSnapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("queries", s.TotalQueries),
		slog.Int64("execs", s.TotalExecs),
		slog.Int64("slow", s.SlowQueries),
		slog.Int64("errors", s.Errors),
	)
}

// SlowQueryHook is called for every statement slower than the threshold.
type SlowQueryHook func(ctx context.Context, query string, args []any, duration time.Duration)

// StatsDriver wraps a Driver with statement counting.
type StatsDriver struct {
	dialect.Driver
	stats         *QueryStats
	slowThreshold time.Duration
	slowHook      SlowQueryHook
}

// StatsOption configures the StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the duration above which a statement counts as
// slow. Default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) {
		s.slowThreshold = d
	}
}

// WithSlowQueryHook sets the callback for slow statements.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsDriver) {
		s.slowHook = hook
	}
}

// WithSlowQueryLog logs slow statements to logger at warn level.
// A nil logger falls back to slog.Default().
func WithSlowQueryLog(logger *slog.Logger) StatsOption {
	if logger == nil {
		logger = slog.Default()
	}
	return WithSlowQueryHook(func(ctx context.Context, query string, args []any, duration time.Duration) {
		logger.WarnContext(ctx, "slow query detected", "duration", duration, "query", query, "args", args)
	})
}

// NewStatsDriver wraps drv with statement counting:
//
//	drv := sql.NewStatsDriver(base, sql.WithSlowQueryLog(logger))
//	client := pontoon.NewClient(pontoon.Driver(drv))
//	...
//	n := drv.QueryStats().Stats().TotalQueries
func NewStatsDriver(drv dialect.Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{
		Driver:        drv,
		stats:         &QueryStats{},
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryStats returns the live counters.
func (d *StatsDriver) QueryStats() *QueryStats {
	return d.stats
}

// Query executes a query and records it.
func (d *StatsDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.record(ctx, query, args, start, err, &d.stats.queries)
	return err
}

// Exec executes a statement and records it.
func (d *StatsDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.record(ctx, query, args, start, err, &d.stats.execs)
	return err
}

// Tx starts a transaction whose statements are recorded by d.
func (d *StatsDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsTx{Tx: tx, drv: d}, nil
}

// Ping forwards to the wrapped driver when it supports liveness checks.
func (d *StatsDriver) Ping(ctx context.Context) error {
	if p, ok := d.Driver.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (d *StatsDriver) record(ctx context.Context, query string, args any, start time.Time, err error, counter *atomic.Int64) {
	duration := time.Since(start)
	counter.Add(1)
	if err != nil {
		d.stats.errors.Add(1)
	}
	if duration <= d.slowThreshold {
		return
	}
	d.stats.slow.Add(1)
	if d.slowHook != nil {
		argv, _ := args.([]any)
		d.slowHook(ctx, query, argv, duration)
	}
}

// StatsTx is a transaction of a StatsDriver.
type StatsTx struct {
	dialect.Tx
	drv *StatsDriver
}

// Query executes a query in the transaction and records it.
func (tx *StatsTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Query(ctx, query, args, v)
	tx.drv.record(ctx, query, args, start, err, &tx.drv.stats.queries)
	return err
}

// Exec executes a statement in the transaction and records it.
func (tx *StatsTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Exec(ctx, query, args, v)
	tx.drv.record(ctx, query, args, start, err, &tx.drv.stats.execs)
	return err
}

// DebugDriver logs every statement at debug level.
type DebugDriver struct {
	dialect.Driver
	logger *slog.Logger
}

// NewDebugDriver wraps drv with statement logging. A nil logger falls back
// to slog.Default().
func NewDebugDriver(drv dialect.Driver, logger *slog.Logger) *DebugDriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebugDriver{Driver: drv, logger: logger}
}

// Query logs and executes a query.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	d.logger.DebugContext(ctx, "query", "query", query, "args", args)
	return d.Driver.Query(ctx, query, args, v)
}

// Exec logs and executes a statement.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	d.logger.DebugContext(ctx, "exec", "query", query, "args", args)
	return d.Driver.Exec(ctx, query, args, v)
}

// Tx starts a transaction whose statements are logged.
func (d *DebugDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	d.logger.DebugContext(ctx, "tx: begin")
	return &DebugTx{Tx: tx, logger: d.logger, ctx: ctx}, nil
}

// Ping forwards to the wrapped driver when it supports liveness checks.
func (d *DebugDriver) Ping(ctx context.Context) error {
	if p, ok := d.Driver.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// DebugTx is a transaction of a DebugDriver.
type DebugTx struct {
	dialect.Tx
	logger *slog.Logger
	// ctx is the context the transaction was started with, used to log
	// Commit and Rollback.
	ctx context.Context
}

// Query logs and executes a query in the transaction.
func (tx *DebugTx) Query(ctx context.Context, query string, args, v any) error {
	tx.logger.DebugContext(ctx, "tx: query", "query", query, "args", args)
	return tx.Tx.Query(ctx, query, args, v)
}

// Exec logs and executes a statement in the transaction.
func (tx *DebugTx) Exec(ctx context.Context, query string, args, v any) error {
	tx.logger.DebugContext(ctx, "tx: exec", "query", query, "args", args)
	return tx.Tx.Exec(ctx, query, args, v)
}

// Commit logs and commits the transaction.
func (tx *DebugTx) Commit() error {
	tx.logger.DebugContext(tx.ctx, "tx: commit")
	return tx.Tx.Commit()
}

// Rollback logs and rolls back the transaction.
func (tx *DebugTx) Rollback() error {
	tx.logger.DebugContext(tx.ctx, "tx: rollback")
	return tx.Tx.Rollback()
}

var (
	_ dialect.Driver = (*StatsDriver)(nil)
	_ dialect.Driver = (*DebugDriver)(nil)
	_ dialect.Tx     = (*StatsTx)(nil)
	_ dialect.Tx     = (*DebugTx)(nil)
	_ Pinger         = (*StatsDriver)(nil)
	_ Pinger         = (*DebugDriver)(nil)
)
