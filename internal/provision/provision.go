package provision

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jonkarrer/brize/internal/docker"
	"github.com/jonkarrer/brize/internal/domain"
	"github.com/jonkarrer/brize/internal/ui"
)

// ComposeTool is the subset of docker.Compose the provisioner needs.
type ComposeTool interface {
	CheckInstalled(ctx context.Context) error
	CheckCompose(ctx context.Context) error
	Up(ctx context.Context, manifestPath string) error
}

// ContainerInspector reports container state through the Docker API.
type ContainerInspector interface {
	Ping(ctx context.Context) error
	ContainerStatus(ctx context.Context, name string) (string, error)
}

// Options configures a Provisioner.
type Options struct {
	ParamsPath    string
	ManifestPath  string
	Image         string
	ContainerName string
}

// Provisioner brings up a local Postgres container.
type Provisioner struct {
	compose   ComposeTool
	inspector ContainerInspector
	opts      Options
	printer   *ui.Printer
	log       *slog.Logger
}

// New constructs a Provisioner. inspector may be nil, in which case the
// container state is not confirmed after start.
func New(compose ComposeTool, inspector ContainerInspector, opts Options, printer *ui.Printer, log *slog.Logger) Provisioner {
	return Provisioner{compose: compose, inspector: inspector, opts: opts, printer: printer, log: log}
}

// Run loads the provisioning parameters and provisions the database.
func (p Provisioner) Run(ctx context.Context) (string, error) {
	db, err := LoadParams(p.opts.ParamsPath)
	if err != nil {
		return "", domain.Fail(domain.KindProvisionFailed, "Failed to get configs from "+p.opts.ParamsPath, err)
	}
	return p.Provision(ctx, db)
}

// Provision checks the container tooling, writes the compose manifest, starts
// the service and returns its connection URL. A manifest written before a
// failed start is left in place.
func (p Provisioner) Provision(ctx context.Context, db domain.LocalDatabase) (string, error) {
	if err := p.compose.CheckInstalled(ctx); err != nil {
		return "", err
	}
	p.printer.Success("Docker is installed")

	if err := p.compose.CheckCompose(ctx); err != nil {
		return "", err
	}
	p.printer.Success("Docker compose is installed")

	manifest := docker.NewPostgresManifest(db, p.opts.Image, p.opts.ContainerName)
	if err := manifest.WriteFile(p.opts.ManifestPath); err != nil {
		return "", domain.Fail(domain.KindPersistFailed, "Failed to write "+p.opts.ManifestPath, err)
	}
	p.printer.Success("Wrote %s", p.opts.ManifestPath)

	if err := p.compose.Up(ctx, p.opts.ManifestPath); err != nil {
		return "", err
	}
	if err := p.confirmRunning(ctx); err != nil {
		return "", err
	}
	p.printer.Success("Started local Postgres container")
	p.log.Info("local database provisioned", "port", db.Port, "container", p.opts.ContainerName)

	return db.ConnectionURL(), nil
}

func (p Provisioner) confirmRunning(ctx context.Context) error {
	if p.inspector == nil || p.opts.ContainerName == "" {
		return nil
	}
	if err := p.inspector.Ping(ctx); err != nil {
		p.log.Warn("docker api unavailable, skipping container check", "error", err)
		return nil
	}
	status, err := p.inspector.ContainerStatus(ctx, p.opts.ContainerName)
	if errors.Is(err, docker.ErrNotFound) {
		return domain.Fail(domain.KindProvisionFailed, "Local Postgres container was not created", err).
			WithHint("Check the compose output: docker compose -f " + p.opts.ManifestPath + " up")
	}
	if err != nil {
		return domain.Fail(domain.KindProvisionFailed, "Failed to inspect local Postgres container", err)
	}
	if status != "running" {
		return domain.Fail(domain.KindProvisionFailed, "Local Postgres container is "+status, nil).
			WithHint("Check the container logs: docker logs " + p.opts.ContainerName)
	}
	return nil
}
