package sql

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Endeer/pontoon/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsDriverCountsRoundTrips(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := NewStatsDriver(OpenDB(dialect.SQLite, db))

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("boom"))

	ctx := context.Background()
	for range 2 {
		rows := &Rows{}
		require.NoError(t, drv.Query(ctx, "SELECT id FROM projects", []any{}, rows))
		require.NoError(t, rows.Close())
	}
	require.NoError(t, drv.Exec(ctx, "INSERT INTO projects DEFAULT VALUES", []any{}, nil))
	require.Error(t, drv.Query(ctx, "SELECT id FROM locales", []any{}, &Rows{}))
	require.NoError(t, mock.ExpectationsWereMet())

	snap := drv.QueryStats().Stats()
	assert.Equal(t, int64(3), snap.TotalQueries)
	assert.Equal(t, int64(1), snap.TotalExecs)
	assert.Equal(t, int64(1), snap.Errors)

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("done", "stats", snap)
	assert.Contains(t, buf.String(), "stats.queries=3 stats.execs=1")

	drv.QueryStats().Reset()
	assert.Equal(t, StatsSnapshot{}, drv.QueryStats().Stats())
}

func TestStatsDriverSlowQueryHook(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var hooked []string
	drv := NewStatsDriver(OpenDB(dialect.SQLite, db),
		WithSlowThreshold(0),
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, _ time.Duration) {
			hooked = append(hooked, query)
		}),
	)

	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, drv.Exec(context.Background(), "DELETE FROM tags", []any{}, nil))
	assert.Equal(t, []string{"DELETE FROM tags"}, hooked)
	assert.Equal(t, int64(1), drv.QueryStats().Stats().SlowQueries)

	fast := NewStatsDriver(OpenDB(dialect.SQLite, db),
		WithSlowThreshold(time.Hour),
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, _ time.Duration) {
			hooked = append(hooked, query)
		}),
	)
	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, fast.Exec(context.Background(), "DELETE FROM tags", []any{}, nil))
	assert.Len(t, hooked, 1)
	assert.Zero(t, fast.QueryStats().Stats().SlowQueries)
}

func TestStatsDriverSlowQueryLog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	drv := NewStatsDriver(OpenDB(dialect.SQLite, db), WithSlowThreshold(0), WithSlowQueryLog(logger))

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT id FROM tags", []any{}, rows))
	require.NoError(t, rows.Close())
	assert.Contains(t, buf.String(), "slow query detected")
	assert.Contains(t, buf.String(), "SELECT id FROM tags")
}

func TestStatsDriverTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := NewStatsDriver(OpenDB(dialect.SQLite, db))
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()
	err = WithTx(ctx, drv, func(tx dialect.Tx) error {
		if err := tx.Exec(ctx, "INSERT INTO locales (code) VALUES (?)", []any{"sl"}, nil); err != nil {
			return err
		}
		rows := &Rows{}
		if err := tx.Query(ctx, "SELECT id FROM locales", []any{}, rows); err != nil {
			return err
		}
		return rows.Close()
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT").WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()
	err = WithTx(ctx, drv, func(tx dialect.Tx) error {
		return tx.Exec(ctx, "INSERT INTO locales (code) VALUES (?)", []any{"sl"}, nil)
	})
	require.ErrorContains(t, err, "constraint")
	require.NoError(t, mock.ExpectationsWereMet())

	snap := drv.QueryStats().Stats()
	assert.Equal(t, int64(1), snap.TotalQueries)
	assert.Equal(t, int64(2), snap.TotalExecs)
	assert.Equal(t, int64(1), snap.Errors)
}

func TestDebugDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	drv := NewDebugDriver(OpenDB(dialect.SQLite, db), logger)
	ctx := context.Background()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))

	rows := &Rows{}
	require.NoError(t, drv.Query(ctx, "SELECT id FROM locales", []any{}, rows))
	require.NoError(t, rows.Close())
	require.NoError(t, drv.Exec(ctx, "INSERT INTO locales (code) VALUES (?)", []any{"sl"}, nil))
	require.NoError(t, mock.ExpectationsWereMet())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `msg=query query="SELECT id FROM locales"`)
	assert.Contains(t, lines[1], `msg=exec query="INSERT INTO locales (code) VALUES (?)" args=[sl]`)
}

func TestDebugDriverTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	drv := NewDebugDriver(OpenDB(dialect.SQLite, db), logger)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()
	err = WithTx(ctx, drv, func(tx dialect.Tx) error {
		if err := tx.Exec(ctx, "DELETE FROM tags", []any{}, nil); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")
	require.NoError(t, mock.ExpectationsWereMet())

	out := buf.String()
	assert.Contains(t, out, `msg="tx: begin"`)
	assert.Contains(t, out, `msg="tx: exec" query="DELETE FROM tags"`)
	assert.Contains(t, out, `msg="tx: rollback"`)
	assert.NotContains(t, out, "tx: commit")
}

func TestWrappedDriversPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	base := OpenDB(dialect.SQLite, db)
	mock.ExpectPing()
	mock.ExpectPing()
	require.NoError(t, NewStatsDriver(base).Ping(context.Background()))
	require.NoError(t, NewDebugDriver(NewStatsDriver(base), nil).Ping(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
