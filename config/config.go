// Package config loads the server configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables prefixed with PONTOON_ (for example
// PONTOON_DATABASE_DSN or PONTOON_GRAPHQL_PREFETCH). The result is
// validated before use.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/Endeer/pontoon/dialect"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PONTOON_"

// Config is the complete server configuration.
type Config struct {
	HTTP     HTTP     `yaml:"http" envPrefix:"HTTP_"`
	Database Database `yaml:"database" envPrefix:"DATABASE_"`
	Auth     Auth     `yaml:"auth" envPrefix:"AUTH_"`
	GraphQL  GraphQL  `yaml:"graphql" envPrefix:"GRAPHQL_"`
	Log      Log      `yaml:"log" envPrefix:"LOG_"`
}

// HTTP configures the listener.
type HTTP struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// Database configures the store connection.
type Database struct {
	Driver string `yaml:"driver" env:"DRIVER"`
	DSN    string `yaml:"dsn" env:"DSN"`
	// Debug logs every statement at debug level.
	Debug bool `yaml:"debug" env:"DEBUG"`
	// SlowThreshold is the duration above which a query is logged as slow.
	SlowThreshold time.Duration `yaml:"slow_threshold" env:"SLOW_THRESHOLD"`
}

// Auth configures viewer tokens.
type Auth struct {
	// Secret signs and verifies tokens. Empty disables authentication, so
	// every request is anonymous.
	Secret    string `yaml:"secret" env:"SECRET"`
	AdminRole string `yaml:"admin_role" env:"ADMIN_ROLE"`
}

// GraphQL configures query execution.
type GraphQL struct {
	Prefetch        bool `yaml:"prefetch" env:"PREFETCH"`
	ComplexityLimit int  `yaml:"complexity_limit" env:"COMPLEXITY_LIMIT"`
	QueryCacheSize  int  `yaml:"query_cache_size" env:"QUERY_CACHE_SIZE"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTP{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: Database{
			Driver:        dialect.SQLite,
			DSN:           "file:pontoon.db?_pragma=foreign_keys(1)",
			SlowThreshold: 200 * time.Millisecond,
		},
		Auth: Auth{
			AdminRole: "admin",
		},
		GraphQL: GraphQL{
			Prefetch:        true,
			ComplexityLimit: 1000,
			QueryCacheSize:  1000,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration file at path, which may be empty, and applies
// the environment on top.
func Load(path string) (*Config, error) {
	return load(path, nil)
}

// load is Load with an explicit environment. A nil environ reads the
// process environment.
func load(path string, environ map[string]string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := cfg.decode(f); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	for name, d := range map[string]time.Duration{
		"http.read_timeout":     c.HTTP.ReadTimeout,
		"http.write_timeout":    c.HTTP.WriteTimeout,
		"http.shutdown_timeout": c.HTTP.ShutdownTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}
	if !slices.Contains([]string{dialect.SQLite, dialect.Postgres, dialect.MySQL}, c.Database.Driver) {
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if c.Database.SlowThreshold < 0 {
		errs = append(errs, errors.New("database.slow_threshold must not be negative"))
	}
	if c.Auth.AdminRole == "" {
		errs = append(errs, errors.New("auth.admin_role is required"))
	}
	if c.GraphQL.ComplexityLimit <= 0 {
		errs = append(errs, errors.New("graphql.complexity_limit must be positive"))
	}
	if c.GraphQL.QueryCacheSize <= 0 {
		errs = append(errs, errors.New("graphql.query_cache_size must be positive"))
	}
	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	if len(errs) > 0 {
		slices.SortFunc(errs, func(a, b error) int {
			return strings.Compare(a.Error(), b.Error())
		})
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Logger builds the process logger writing to w.
func (l Log) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := l.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
