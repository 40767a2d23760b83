package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonkarrer/brize/internal/docker"
	"github.com/jonkarrer/brize/internal/domain"
	"github.com/jonkarrer/brize/internal/toolrunner"
	"github.com/jonkarrer/brize/internal/ui"
	"github.com/jonkarrer/brize/pkg/logger"
)

type stubInspector struct {
	pingErr error
	status  string
	err     error
}

func (s stubInspector) Ping(context.Context) error { return s.pingErr }
func (s stubInspector) ContainerStatus(context.Context, string) (string, error) {
	return s.status, s.err
}

func healthyRunner(manifest string) *toolrunner.Fake {
	return toolrunner.NewFake().
		On("docker --version", toolrunner.Response{}).
		On("docker compose version", toolrunner.Response{}).
		On("docker compose -f "+manifest+" up -d", toolrunner.Response{})
}

func newProvisioner(runner toolrunner.Runner, inspector ContainerInspector, dir string) Provisioner {
	opts := Options{
		ParamsPath:    filepath.Join(dir, "config.toml"),
		ManifestPath:  filepath.Join(dir, "docker-compose.yml"),
		Image:         "postgres:17.5-alpine3.22",
		ContainerName: "brize_postgres",
	}
	return New(docker.NewCompose(runner, "docker"), inspector, opts, ui.New(io.Discard), logger.Discard())
}

func TestProvisionReturnsConnectionURL(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "docker-compose.yml")
	runner := healthyRunner(manifest)
	p := newProvisioner(runner, stubInspector{status: "running"}, dir)

	url, err := p.Provision(context.Background(), domain.LocalDatabase{User: "u", Password: "p", Name: "d", Port: 5433, Schema: "s"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "postgres://u:p@localhost:5433/postgres?currentSchema=s" {
		t.Fatalf("unexpected url: %s", url)
	}
	if _, err := os.Stat(manifest); err != nil {
		t.Fatalf("expected manifest to be written: %v", err)
	}
	if !runner.Called("docker compose -f " + manifest + " up -d") {
		t.Fatalf("expected compose up, calls: %v", runner.Calls())
	}
}

func TestProvisionStopsWhenDockerMissing(t *testing.T) {
	dir := t.TempDir()
	p := newProvisioner(toolrunner.NewFake(), nil, dir)

	_, err := p.Provision(context.Background(), domain.LocalDatabase{User: "u", Password: "p", Name: "d", Port: 5432})
	if !domain.IsKind(err, domain.KindToolMissing) {
		t.Fatalf("expected tool_missing, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "docker-compose.yml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("manifest should not be written when docker is missing")
	}
}

func TestProvisionFailsWhenContainerNotRunning(t *testing.T) {
	dir := t.TempDir()
	p := newProvisioner(healthyRunner(filepath.Join(dir, "docker-compose.yml")), stubInspector{status: "exited"}, dir)

	_, err := p.Provision(context.Background(), domain.LocalDatabase{User: "u", Password: "p", Name: "d", Port: 5432})
	if !domain.IsKind(err, domain.KindProvisionFailed) {
		t.Fatalf("expected provision_failed, got %v", err)
	}
}

func TestProvisionReportsMissingContainer(t *testing.T) {
	dir := t.TempDir()
	missing := fmt.Errorf("container brize_postgres: %w", docker.ErrNotFound)
	p := newProvisioner(healthyRunner(filepath.Join(dir, "docker-compose.yml")), stubInspector{err: missing}, dir)

	_, err := p.Provision(context.Background(), domain.LocalDatabase{User: "u", Password: "p", Name: "d", Port: 5432})
	if !domain.IsKind(err, domain.KindProvisionFailed) || !errors.Is(err, docker.ErrNotFound) {
		t.Fatalf("expected provision_failed wrapping ErrNotFound, got %v", err)
	}
	var se *domain.Error
	if !errors.As(err, &se) || se.Op != "Local Postgres container was not created" || se.Hint == "" {
		t.Fatalf("expected not-created failure with hint, got %+v", se)
	}
}

func TestProvisionToleratesUnreachableDockerAPI(t *testing.T) {
	dir := t.TempDir()
	p := newProvisioner(healthyRunner(filepath.Join(dir, "docker-compose.yml")), stubInspector{pingErr: errors.New("permission denied")}, dir)

	if _, err := p.Provision(context.Background(), domain.LocalDatabase{User: "u", Password: "p", Name: "d", Port: 5432}); err != nil {
		t.Fatalf("expected ping failure to be tolerated, got %v", err)
	}
}

func TestRunReportsBadConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`POSTGRES_USER = "u"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	p := newProvisioner(healthyRunner(filepath.Join(dir, "docker-compose.yml")), nil, dir)
	if _, err := p.Run(context.Background()); !domain.IsKind(err, domain.KindProvisionFailed) {
		t.Fatalf("expected provision_failed, got %v", err)
	}
}
