package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonkarrer/brize/internal/app/migrate"
	"github.com/jonkarrer/brize/internal/metrics"
	"github.com/jonkarrer/brize/internal/pipeline"
	"github.com/jonkarrer/brize/internal/ui"
)

func migrateCmd(d *deps, o *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the schema with goose (up|status|down)",
	}
	c.PersistentFlags().StringVar(&o.databaseURL, "database-url", "", "Postgres URL (defaults to POSTGRES_URL from the env file)")

	var target int64
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration, or down to --target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), d, o, "Rolled back migrations", func(r migrate.Runner, ctx context.Context) error {
				return r.Down(ctx, target)
			})
		},
	}
	down.Flags().Int64Var(&target, "target", 0, "version to roll back to (0 rolls back one step)")

	c.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), d, o, "Migrations completed", migrate.Runner.Ensure)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), d, o, "", migrate.Runner.Status)
			},
		},
		down,
	)
	return c
}

func withMigrator(ctx context.Context, d *deps, o *options, done string, fn func(migrate.Runner, context.Context) error) error {
	log := o.logger(d)
	rec := metrics.New()
	defer o.flushMetrics(rec, log)

	databaseURL, err := resolveDatabaseURL(o.databaseURL, o.envFile)
	if err != nil {
		return err
	}
	runner, err := migrate.New(databaseURL, d.cfg.ConnectTimeout, log)
	if err != nil {
		return err
	}

	start := time.Now()
	err = fn(runner, ctx)
	rec.Observe(pipeline.StageMigrate, time.Since(start), err)
	if err != nil {
		return err
	}
	if done != "" {
		ui.New(d.stdout).Success(done)
	}
	return nil
}
