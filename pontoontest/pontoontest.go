// Package pontoontest opens migrated in-memory databases for tests.
package pontoontest

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Endeer/pontoon"
	"github.com/Endeer/pontoon/dialect"
	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/dialect/sql/schema"
	"github.com/Endeer/pontoon/fixture"
)

//go:embed testdata/sample.yaml
var sample []byte

// Sample returns the shared test data set.
//
// Anonymous viewers see the public projects firefox (active), focus
// (disabled), terminology (system) and legacy (disabled and system).
// The private project secret is only visible to admins.
func Sample() *fixture.Set {
	set, err := fixture.Parse(bytes.NewReader(sample))
	if err != nil {
		panic(fmt.Sprintf("pontoontest: parse sample: %v", err))
	}
	return set
}

// DSN returns the data source name of a fresh shared in-memory database.
func DSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
}

// OpenDriver opens a migrated in-memory SQLite database and wraps it with
// statistics collection. The database is closed when the test ends.
func OpenDriver(tb testing.TB) *sql.StatsDriver {
	tb.Helper()
	drv, err := sql.Open(dialect.SQLite, DSN())
	if err != nil {
		tb.Fatalf("pontoontest: open: %v", err)
	}
	// Keep one connection open so the shared in-memory database survives
	// idle connection reaping.
	drv.DB().SetMaxIdleConns(1)
	tb.Cleanup(func() { _ = drv.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := schema.NewMigrator(drv, schema.WithLogger(logger)).Create(context.Background()); err != nil {
		tb.Fatalf("pontoontest: migrate: %v", err)
	}
	return sql.NewStatsDriver(drv)
}

// Open returns a client over a migrated database seeded with the given data
// sets, and the driver whose statistics count the store round trips.
// Statistics are reset after seeding.
func Open(tb testing.TB, sets ...*fixture.Set) (*pontoon.Client, *sql.StatsDriver) {
	tb.Helper()
	drv := OpenDriver(tb)
	for _, set := range sets {
		if err := fixture.Insert(context.Background(), drv, set); err != nil {
			tb.Fatalf("pontoontest: seed: %v", err)
		}
	}
	drv.QueryStats().Reset()
	return pontoon.NewClient(pontoon.Driver(drv)), drv
}
