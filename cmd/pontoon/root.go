package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Endeer/pontoon"
	"github.com/Endeer/pontoon/auth"
	"github.com/Endeer/pontoon/config"
	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/dialect/sql/schema"
	"github.com/Endeer/pontoon/fixture"
	"github.com/Endeer/pontoon/server"
)

// app holds the state shared by the subcommands.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "pontoon",
		Short:         "Read-only GraphQL API over Pontoon localization data",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			logger, err := cfg.Log.Logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to the YAML configuration file")
	root.AddCommand(a.serveCmd(), a.migrateCmd(), a.seedCmd(), a.tokenCmd())
	return root
}

// open connects to the configured database.
func (a *app) open() (*pontoon.Client, *sql.StatsDriver, error) {
	db := a.cfg.Database
	drv, err := sql.Open(db.Driver, db.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s database: %w", db.Driver, err)
	}
	stats := sql.NewStatsDriver(drv,
		sql.WithSlowThreshold(db.SlowThreshold),
		sql.WithSlowQueryLog(a.logger),
	)
	client := pontoon.NewClient(pontoon.Driver(stats), pontoon.Logger(a.logger))
	if db.Debug {
		client = client.Debug()
	}
	return client, stats, nil
}

func (a *app) serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the GraphQL API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			client, drv, err := a.open()
			if err != nil {
				return err
			}
			defer client.Close()
			if err := client.Ping(ctx); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}
			if migrate {
				if _, err := schema.NewMigrator(drv, schema.WithLogger(a.logger)).Create(ctx); err != nil {
					return err
				}
			}
			opts := append(server.FromConfig(a.cfg), server.WithLogger(a.logger))
			err = server.New(client, opts...).Run(ctx, a.cfg.HTTP)
			a.logger.Info("server stopped", "stats", drv.QueryStats().Stats())
			return err
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func (a *app) migrateCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, drv, err := a.open()
			if err != nil {
				return err
			}
			defer client.Close()
			m := schema.NewMigrator(drv, schema.WithLogger(a.logger))
			var names []string
			if dryRun {
				names, err = m.Pending(cmd.Context())
			} else {
				names, err = m.Create(cmd.Context())
			}
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list pending migrations without applying them")
	return cmd
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixtures.yaml>",
		Short: "Load a fixture file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := fixture.ParseFile(args[0])
			if err != nil {
				return err
			}
			client, drv, err := a.open()
			if err != nil {
				return err
			}
			defer client.Close()
			if err := fixture.Insert(cmd.Context(), drv, set); err != nil {
				return err
			}
			a.logger.InfoContext(cmd.Context(), "seeded",
				"projects", len(set.Projects),
				"locales", len(set.Locales),
				"project_locales", len(set.ProjectLocales),
				"tags", len(set.Tags),
			)
			return nil
		},
	}
}

func (a *app) tokenCmd() *cobra.Command {
	var (
		subject string
		roles   []string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a viewer token signed with auth.secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := auth.New(a.cfg.Auth.Secret).Sign(subject, roles, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "", "user id carried in the subject claim")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "role granted to the viewer, repeatable")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
