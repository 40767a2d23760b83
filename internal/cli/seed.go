package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jonkarrer/brize/internal/metrics"
	"github.com/jonkarrer/brize/internal/pipeline"
	"github.com/jonkarrer/brize/internal/seed"
	"github.com/jonkarrer/brize/internal/ui"
)

func seedCmd(d *deps, o *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "seed",
		Short: "Insert the admin user, team and membership",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := o.logger(d)
			rec := metrics.New()
			defer o.flushMetrics(rec, log)

			databaseURL, err := resolveDatabaseURL(o.databaseURL, o.envFile)
			if err != nil {
				return err
			}

			start := time.Now()
			res, err := seed.New(adminFrom(d.cfg), d.cfg.ConnectTimeout, log).Run(cmd.Context(), databaseURL)
			rec.Observe(pipeline.StageSeed, time.Since(start), err)
			if err != nil {
				return err
			}
			ui.New(d.stdout).Success("Seeded %s (user %d) into team %q (team %d)", d.cfg.AdminEmail, res.UserID, d.cfg.TeamName, res.TeamID)
			return nil
		},
	}
	c.Flags().StringVar(&o.databaseURL, "database-url", "", "Postgres URL (defaults to POSTGRES_URL from the env file)")
	return c
}
