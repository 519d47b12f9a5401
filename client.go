package pontoon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"github.com/Endeer/pontoon/dialect"
	"github.com/Endeer/pontoon/dialect/sql"
)

// Client is the entry point of the store.
type Client struct {
	config
}

// config is the configuration shared by the client, its queries and the
// entities they return.
type config struct {
	driver dialect.Driver
	logger *slog.Logger
}

// Option configures the client.
type Option func(*config)

// Driver configures the client driver.
func Driver(driver dialect.Driver) Option {
	return func(c *config) {
		c.driver = driver
	}
}

// Logger configures the logger used by Debug.
func Logger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// NewClient creates a new client configured with the given options.
func NewClient(opts ...Option) *Client {
	c := config{logger: slog.Default()}
	for _, opt := range opts {
		opt(&c)
	}
	return &Client{config: c}
}

// Open opens a database/sql.DB specified by the driver name and
// the data source name, and returns a new client attached to it.
// Optional parameters can be added for configuring the client.
func Open(driverName, dataSourceName string, opts ...Option) (*Client, error) {
	switch driverName {
	case dialect.MySQL, dialect.Postgres, dialect.SQLite:
		drv, err := sql.Open(driverName, dataSourceName)
		if err != nil {
			return nil, err
		}
		return NewClient(append([]Option{Driver(drv)}, opts...)...), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %q", driverName)
	}
}

// Debug returns a new debug-client. It's used to get verbose logging on
// specific operations.
//
//	client.Debug().Projects().All(ctx)
func (c *Client) Debug() *Client {
	if _, ok := c.driver.(*sql.DebugDriver); ok {
		return c
	}
	cfg := c.config
	cfg.driver = sql.NewDebugDriver(c.driver, c.logger)
	return &Client{config: cfg}
}

// Driver returns the underlying driver.
func (c *Client) Driver() dialect.Driver {
	return c.driver
}

// Close closes the database connection and prevents new queries from starting.
func (c *Client) Close() error {
	return c.driver.Close()
}

// Ping checks the database connection when the driver supports it.
func (c *Client) Ping(ctx context.Context) error {
	if p, ok := c.driver.(sql.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Projects returns a query builder for Project.
func (c *Client) Projects() *ProjectQuery {
	return &ProjectQuery{config: c.config}
}

// Locales returns a query builder for Locale.
func (c *Client) Locales() *LocaleQuery {
	return &LocaleQuery{config: c.config}
}

// ProjectLocales returns a query builder for ProjectLocale.
func (c *Client) ProjectLocales() *ProjectLocaleQuery {
	return &ProjectLocaleQuery{config: c.config}
}

// Tags returns a query builder for Tag.
func (c *Client) Tags() *TagQuery {
	return &TagQuery{config: c.config}
}

// builder returns a statement builder for the driver dialect.
func (c config) builder() sq.StatementBuilderType {
	return sql.Builder(c.driver.Dialect())
}

// selectRows runs the statement and calls scan once per returned row.
func (c config) selectRows(ctx context.Context, entity, op string, stmt sq.SelectBuilder, scan func(sql.ColumnScanner) error) error {
	query, args, err := stmt.ToSql()
	if err != nil {
		return NewQueryError(entity, op, err)
	}
	rows := &sql.Rows{}
	if err := c.driver.Query(ctx, query, args, rows); err != nil {
		return NewQueryError(entity, op, err)
	}
	for rows.Next() {
		if err := scan(rows); err != nil {
			return NewQueryError(entity, op, errors.Join(err, rows.Close()))
		}
	}
	if err := rows.Err(); err != nil {
		return NewQueryError(entity, op, errors.Join(err, rows.Close()))
	}
	if err := rows.Close(); err != nil {
		return NewQueryError(entity, op, err)
	}
	return nil
}
