package docker

import (
	"context"

	"github.com/jonkarrer/brize/internal/domain"
	"github.com/jonkarrer/brize/internal/toolrunner"
)

// Compose drives the docker CLI and its compose plugin.
type Compose struct {
	runner toolrunner.Runner
	bin    string
}

// NewCompose returns a Compose invoking bin through runner.
func NewCompose(runner toolrunner.Runner, bin string) Compose {
	if bin == "" {
		bin = "docker"
	}
	return Compose{runner: runner, bin: bin}
}

// CheckInstalled verifies the docker CLI can be invoked.
func (c Compose) CheckInstalled(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, c.bin, "--version"); err != nil {
		return domain.Fail(domain.KindToolMissing, "Docker is not installed", err).
			WithHint("Install Docker and try again: https://docs.docker.com/get-docker/")
	}
	return nil
}

// CheckCompose verifies the compose subcommand is available.
func (c Compose) CheckCompose(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, c.bin, "compose", "version"); err != nil {
		return domain.Fail(domain.KindToolMissing, "Docker compose is not installed", err).
			WithHint("Install Docker compose and try again: https://docs.docker.com/compose/install/")
	}
	return nil
}

// Up starts the services of manifestPath in detached mode.
func (c Compose) Up(ctx context.Context, manifestPath string) error {
	if _, err := c.runner.Run(ctx, c.bin, "compose", "-f", manifestPath, "up", "-d"); err != nil {
		return domain.Fail(domain.KindProvisionFailed, "Failed to start local Postgres instance", err)
	}
	return nil
}
