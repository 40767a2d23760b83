package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonkarrer/brize/internal/app/migrate"
	"github.com/jonkarrer/brize/internal/collect"
	"github.com/jonkarrer/brize/internal/docker"
	"github.com/jonkarrer/brize/internal/envfile"
	"github.com/jonkarrer/brize/internal/metrics"
	"github.com/jonkarrer/brize/internal/pipeline"
	"github.com/jonkarrer/brize/internal/provision"
	"github.com/jonkarrer/brize/internal/seed"
	"github.com/jonkarrer/brize/internal/stripecli"
	"github.com/jonkarrer/brize/internal/ui"
	"github.com/jonkarrer/brize/pkg/config"
)

func setupCmd(d *deps, o *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "setup",
		Short: "Run the full interactive setup (default command)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetup(cmd.Context(), d, o)
		},
	}
	c.Flags().BoolVar(&o.verifyKey, "verify-stripe-key", d.cfg.VerifyStripeKey, "check the Stripe secret key against the Stripe API")
	return c
}

func runSetup(ctx context.Context, d *deps, o *options) error {
	cfg := d.cfg
	log := o.logger(d)
	printer := ui.New(d.stdout)
	rec := metrics.New()
	defer o.flushMetrics(rec, log)

	stripe := stripecli.New(d.runner, cfg.StripeBinary)

	var inspector provision.ContainerInspector
	if client, err := docker.New(cfg.DockerHost); err != nil {
		log.Warn("docker api client unavailable", "error", err)
	} else {
		defer client.Close()
		inspector = client
	}
	local := provision.New(docker.NewCompose(d.runner, cfg.DockerBinary), inspector, provision.Options{
		ParamsPath:    cfg.ProvisionConfigPath,
		ManifestPath:  cfg.ComposeFilePath,
		Image:         cfg.PostgresImage,
		ContainerName: cfg.ContainerName,
	}, printer, log)

	var keys collect.KeyVerifier
	if o.verifyKey {
		keys = stripecli.NewKeyVerifier(nil)
	}
	collector := collect.New(d.asker, local, stripe, keys, printer, log, collect.Options{
		MaxURLAttempts: cfg.MaxURLAttempts,
		VerifyKey:      o.verifyKey,
	})

	migrator := pipeline.MigrateFunc(func(ctx context.Context, databaseURL string) error {
		runner, err := migrate.New(databaseURL, cfg.ConnectTimeout, log)
		if err != nil {
			return err
		}
		return runner.Apply(ctx)
	})

	p := pipeline.New(stripe, collector, envfile.NewWriter(o.envFile), migrator,
		seed.New(adminFrom(cfg), cfg.ConnectTimeout, log), rec, printer, log)
	_, err := p.Run(ctx)
	return err
}

func adminFrom(cfg config.SetupConfig) seed.Admin {
	return seed.Admin{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		TeamName: cfg.TeamName,
	}
}
