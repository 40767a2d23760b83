package docker

import (
	"context"
	"testing"

	"github.com/jonkarrer/brize/internal/domain"
	"github.com/jonkarrer/brize/internal/toolrunner"
)

func TestComposeChecksReportDistinctTools(t *testing.T) {
	missing := NewCompose(toolrunner.NewFake(), "docker")
	if err := missing.CheckInstalled(context.Background()); !domain.IsKind(err, domain.KindToolMissing) {
		t.Fatalf("expected tool_missing for docker, got %v", err)
	}

	fake := toolrunner.NewFake().On("docker --version", toolrunner.Response{Stdout: []byte("Docker version 27.3.1")})
	noCompose := NewCompose(fake, "")
	if err := noCompose.CheckInstalled(context.Background()); err != nil {
		t.Fatalf("unexpected docker error: %v", err)
	}
	err := noCompose.CheckCompose(context.Background())
	if !domain.IsKind(err, domain.KindToolMissing) {
		t.Fatalf("expected tool_missing for compose, got %v", err)
	}
	if err.Error() == missing.CheckInstalled(context.Background()).Error() {
		t.Fatalf("expected distinct messages for docker and compose")
	}
}

func TestComposeUp(t *testing.T) {
	fake := toolrunner.NewFake().On("docker compose -f docker-compose.yml up -d", toolrunner.Response{})
	if err := NewCompose(fake, "docker").Up(context.Background(), "docker-compose.yml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	failing := NewCompose(toolrunner.NewFake(), "docker")
	if err := failing.Up(context.Background(), "docker-compose.yml"); !domain.IsKind(err, domain.KindProvisionFailed) {
		t.Fatalf("expected provision_failed, got %v", err)
	}
}
