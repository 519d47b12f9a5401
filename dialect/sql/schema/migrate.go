// Package schema applies the embedded table definitions to development and
// test databases. Production data is owned by the synchronization and admin
// processes; the query API only reads it.
package schema

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Endeer/pontoon/dialect"
	"github.com/Endeer/pontoon/dialect/sql"
)

//go:embed migrations
var migrationsFS embed.FS

// MigrationsTable records the applied migration files.
const MigrationsTable = "schema_migrations"

// Migrator applies the embedded migrations of one dialect.
type Migrator struct {
	drv    dialect.Driver
	files  fs.FS
	logger *slog.Logger
}

// MigrateOption configures a Migrator.
type MigrateOption func(*Migrator)

// WithLogger logs every applied migration to logger.
func WithLogger(logger *slog.Logger) MigrateOption {
	return func(m *Migrator) {
		m.logger = logger
	}
}

// WithFS replaces the embedded migrations. The file system must contain one
// directory per dialect holding *.sql files.
func WithFS(files fs.FS) MigrateOption {
	return func(m *Migrator) {
		m.files = files
	}
}

// NewMigrator returns a Migrator for the given driver.
func NewMigrator(drv dialect.Driver, opts ...MigrateOption) *Migrator {
	sub, _ := fs.Sub(migrationsFS, "migrations")
	m := &Migrator{drv: drv, files: sub, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create applies all pending migrations in lexical order and returns the
// names of the files it applied.
func (m *Migrator) Create(ctx context.Context) ([]string, error) {
	if err := m.drv.Exec(ctx, createMigrationsTable, []any{}, nil); err != nil {
		return nil, fmt.Errorf("create %s: %w", MigrationsTable, err)
	}
	pending, err := m.Pending(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range pending {
		if err := m.apply(ctx, name); err != nil {
			return nil, err
		}
		m.logger.InfoContext(ctx, "migration applied", "name", name, "dialect", m.drv.Dialect())
	}
	return pending, nil
}

// apply runs one migration file and records it in the same transaction.
// MySQL commits DDL implicitly, so there a failing file may leave its earlier
// statements applied.
func (m *Migrator) apply(ctx context.Context, name string) error {
	body, err := fs.ReadFile(m.files, path.Join(m.drv.Dialect(), name))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}
	query, args, err := sql.Builder(m.drv.Dialect()).Insert(MigrationsTable).
		Columns("name", "applied_at").
		Values(name, time.Now().UTC().Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return fmt.Errorf("record migration %s: %w", name, err)
	}
	return sql.WithTx(ctx, m.drv, func(tx dialect.Tx) error {
		for _, stmt := range Statements(string(body)) {
			if err := tx.Exec(ctx, stmt, []any{}, nil); err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
		}
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		return nil
	})
}

// Pending returns the migration files not yet recorded as applied.
func (m *Migrator) Pending(ctx context.Context) ([]string, error) {
	files, err := m.available()
	if err != nil {
		return nil, err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	var pending []string
	for _, name := range files {
		if _, ok := applied[name]; !ok {
			pending = append(pending, name)
		}
	}
	return pending, nil
}

func (m *Migrator) available() ([]string, error) {
	entries, err := fs.ReadDir(m.files, m.drv.Dialect())
	if err != nil {
		return nil, fmt.Errorf("read migrations for %s: %w", m.drv.Dialect(), err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]struct{}, error) {
	query, args, err := sql.Builder(m.drv.Dialect()).Select("name").From(MigrationsTable).ToSql()
	if err != nil {
		return nil, err
	}
	rows := &sql.Rows{}
	if err := m.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()
	applied := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		applied[name] = struct{}{}
	}
	return applied, rows.Err()
}

// Statements splits a migration file into single statements. Statements are
// terminated by a semicolon at the end of a line.
func Statements(body string) []string {
	var (
		stmts []string
		cur   strings.Builder
	)
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		cur.WriteString(line)
		cur.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmts = append(stmts, strings.TrimSuffix(strings.TrimSpace(cur.String()), ";"))
			cur.Reset()
		}
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name VARCHAR(255) NOT NULL PRIMARY KEY,
    applied_at VARCHAR(64) NOT NULL
)`
