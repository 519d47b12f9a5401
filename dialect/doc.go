// Package dialect provides the database dialect abstraction used by the
// pontoon store.
//
// The store never talks to database/sql directly. Every statement goes
// through a Driver, which lets the statistics and debug wrappers in
// dialect/sql observe each round trip.
//
// # Supported Dialects
//
//   - Postgres: PostgreSQL database
//   - MySQL: MySQL/MariaDB database
//   - SQLite: SQLite database
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Driver Interface
//
//	type Driver interface {
//	    ExecQuerier
//	    Close() error
//	    Dialect() string
//	}
//
// # ExecQuerier Interface
//
//	type ExecQuerier interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	}
//
// # Usage
//
//	drv, err := sql.Open(dialect.SQLite, "file:pontoon.db?_pragma=foreign_keys(1)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := pontoon.NewClient(pontoon.Driver(drv))
//	defer client.Close()
package dialect
