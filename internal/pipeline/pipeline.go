package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonkarrer/brize/internal/domain"
	"github.com/jonkarrer/brize/internal/ui"
)

// Stage names used in logs and metrics.
const (
	StagePreflight = "preflight"
	StageCollect   = "collect"
	StageEmit      = "emit"
	StageMigrate   = "migrate"
	StageSeed      = "seed"
)

// Preflight checks the Stripe CLI before anything is asked.
type Preflight interface {
	CheckInstalled(ctx context.Context) error
	CheckAuthenticated(ctx context.Context) error
}

// Collector gathers the configuration, provisioning a local database when the
// operator chooses one.
type Collector interface {
	Collect(ctx context.Context) (domain.SetupConfig, error)
}

// EnvWriter persists the collected configuration.
type EnvWriter interface {
	Path() string
	Write(cfg domain.SetupConfig) error
}

// Migrator applies the schema to databaseURL.
type Migrator interface {
	Migrate(ctx context.Context, databaseURL string) error
}

// MigrateFunc adapts a function to Migrator.
type MigrateFunc func(ctx context.Context, databaseURL string) error

// Migrate calls f.
func (f MigrateFunc) Migrate(ctx context.Context, databaseURL string) error {
	return f(ctx, databaseURL)
}

// Seeder inserts the bootstrap rows into databaseURL.
type Seeder interface {
	Run(ctx context.Context, databaseURL string) (domain.SeedResult, error)
}

// Observer is notified when a stage finishes.
type Observer interface {
	Observe(stage string, took time.Duration, err error)
}

// Result is what a completed run produced.
type Result struct {
	Config domain.SetupConfig
	Seed   domain.SeedResult
}

// Pipeline runs the setup stages in order and stops at the first failure.
type Pipeline struct {
	preflight Preflight
	collector Collector
	env       EnvWriter
	migrator  Migrator
	seeder    Seeder
	observer  Observer
	printer   *ui.Printer
	log       *slog.Logger
	now       func() time.Time
}

// New wires a Pipeline. observer may be nil.
func New(preflight Preflight, collector Collector, env EnvWriter, migrator Migrator, seeder Seeder, observer Observer, printer *ui.Printer, log *slog.Logger) *Pipeline {
	return &Pipeline{
		preflight: preflight,
		collector: collector,
		env:       env,
		migrator:  migrator,
		seeder:    seeder,
		observer:  observer,
		printer:   printer,
		log:       log,
		now:       time.Now,
	}
}

// Run executes every stage. The returned error is the failing stage's error,
// unchanged.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var res Result

	err := p.stage(ctx, StagePreflight, func(ctx context.Context) error {
		p.printer.Header("Stripe Setup")
		if err := p.preflight.CheckInstalled(ctx); err != nil {
			return err
		}
		p.printer.Success("Stripe CLI is installed")
		if err := p.preflight.CheckAuthenticated(ctx); err != nil {
			return err
		}
		p.printer.Success("Authenticated with Stripe CLI")
		return nil
	})
	if err != nil {
		return res, err
	}

	err = p.stage(ctx, StageCollect, func(ctx context.Context) error {
		cfg, err := p.collector.Collect(ctx)
		if err != nil {
			return err
		}
		res.Config = cfg
		return nil
	})
	if err != nil {
		return res, err
	}

	err = p.stage(ctx, StageEmit, func(context.Context) error {
		if err := p.env.Write(res.Config); err != nil {
			return err
		}
		p.printer.Success("Environment variables are set in %s", p.env.Path())
		return nil
	})
	if err != nil {
		return res, err
	}
	p.printer.Info("🎉 Setup Is Complete! Creating Users and Teams schema...\n")

	err = p.stage(ctx, StageMigrate, func(ctx context.Context) error {
		p.printer.Header("Running Migrations")
		if err := p.migrator.Migrate(ctx, res.Config.DatabaseURL); err != nil {
			return err
		}
		p.printer.Success("Migrations completed")
		return nil
	})
	if err != nil {
		return res, err
	}
	p.printer.Info("🎉 Users and Teams created! Seeding database...")

	err = p.stage(ctx, StageSeed, func(ctx context.Context) error {
		seeded, err := p.seeder.Run(ctx, res.Config.DatabaseURL)
		if err != nil {
			return err
		}
		res.Seed = seeded
		p.printer.Success("Database seeded")
		return nil
	})
	if err != nil {
		return res, err
	}

	return res, nil
}

func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Fail(domain.KindAborted, "Setup interrupted", err)
	}

	start := p.now()
	p.log.Debug("stage started", "stage", name)
	err := fn(ctx)
	took := p.now().Sub(start)

	if p.observer != nil {
		p.observer.Observe(name, took, err)
	}
	if err != nil {
		p.log.Error("stage failed", "stage", name, "kind", domain.KindOf(err), "error", err, "duration", took)
		return err
	}
	p.log.Info("stage completed", "stage", name, "duration", took)
	return nil
}
