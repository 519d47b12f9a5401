// Package server exposes the GraphQL API over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"golang.org/x/sync/errgroup"

	"github.com/Endeer/pontoon"
	"github.com/Endeer/pontoon/auth"
	"github.com/Endeer/pontoon/config"
	"github.com/Endeer/pontoon/graph"
	"github.com/Endeer/pontoon/privacy"
)

const healthTimeout = 2 * time.Second

// Server serves /graphql and /healthz.
type Server struct {
	client          *pontoon.Client
	auth            *auth.Authenticator
	logger          *slog.Logger
	resolverOpts    []graph.Option
	complexityLimit int
	queryCacheSize  int
	handler         http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithAuthenticator sets the verifier of bearer tokens.
func WithAuthenticator(a *auth.Authenticator) Option {
	return func(s *Server) {
		s.auth = a
	}
}

// WithLogger sets the logger for access logs and recovered panics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithResolverOptions configures the GraphQL resolver.
func WithResolverOptions(opts ...graph.Option) Option {
	return func(s *Server) {
		s.resolverOpts = append(s.resolverOpts, opts...)
	}
}

// WithComplexityLimit rejects operations whose complexity exceeds limit.
func WithComplexityLimit(limit int) Option {
	return func(s *Server) {
		s.complexityLimit = limit
	}
}

// WithQueryCacheSize sets the number of parsed queries kept in memory.
func WithQueryCacheSize(size int) Option {
	return func(s *Server) {
		s.queryCacheSize = size
	}
}

// FromConfig applies the server-related settings of cfg.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithAuthenticator(auth.New(cfg.Auth.Secret)),
		WithComplexityLimit(cfg.GraphQL.ComplexityLimit),
		WithQueryCacheSize(cfg.GraphQL.QueryCacheSize),
		WithResolverOptions(
			graph.WithPrefetch(cfg.GraphQL.Prefetch),
			graph.WithPolicy(privacy.DefaultProjectPolicy(cfg.Auth.AdminRole)),
		),
	}
}

// New returns a server over client.
func New(client *pontoon.Client, opts ...Option) *Server {
	s := &Server{
		client:          client,
		auth:            auth.New(""),
		logger:          slog.Default(),
		complexityLimit: 1000,
		queryCacheSize:  1000,
	}
	for _, opt := range opts {
		opt(s)
	}
	resolverOpts := append([]graph.Option{graph.WithLogger(s.logger)}, s.resolverOpts...)
	gql := handler.New(graph.NewExecutableSchema(graph.NewResolver(client, resolverOpts...)))
	gql.AddTransport(transport.GET{})
	gql.AddTransport(transport.POST{})
	gql.SetQueryCache(lru.New[*ast.QueryDocument](s.queryCacheSize))
	gql.Use(extension.FixedComplexityLimit(s.complexityLimit))
	gql.SetErrorPresenter(graph.ErrorPresenter)
	gql.SetRecoverFunc(s.recoverPanic)

	mux := http.NewServeMux()
	mux.Handle("GET /graphql", gql)
	mux.Handle("POST /graphql", gql)
	mux.HandleFunc("GET /healthz", s.health)
	s.handler = s.requestID(s.accessLog(s.authenticate(mux)))
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run serves on cfg.Addr until ctx is done, then shuts down gracefully
// within cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context, cfg config.HTTP) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	return s.Serve(ctx, ln, cfg)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, cfg config.HTTP) error {
	srv := &http.Server{
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.client.Ping(ctx); err != nil {
		s.logger.WarnContext(ctx, "health check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unavailable\n"))
		return
	}
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) recoverPanic(ctx context.Context, err any) error {
	s.logger.ErrorContext(ctx, "panic while resolving", "panic", err, "stack", string(debug.Stack()))
	return gqlerror.Errorf("internal server error")
}
