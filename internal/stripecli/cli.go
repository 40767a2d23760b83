package stripecli

import (
	"context"
	"errors"
	"strings"

	"github.com/jonkarrer/brize/internal/domain"
	"github.com/jonkarrer/brize/internal/toolrunner"
)

const installHint = "Install the Stripe CLI: https://docs.stripe.com/stripe-cli"

var errEmptySecret = errors.New("stripe listen printed an empty secret")

// CLI drives the Stripe command line tool.
type CLI struct {
	runner toolrunner.Runner
	bin    string
}

// New returns a CLI invoking bin through runner.
func New(runner toolrunner.Runner, bin string) CLI {
	if bin == "" {
		bin = "stripe"
	}
	return CLI{runner: runner, bin: bin}
}

// CheckInstalled verifies the binary can be invoked.
func (c CLI) CheckInstalled(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, c.bin, "--version"); err != nil {
		return domain.Fail(domain.KindToolMissing, "Stripe CLI is not installed", err).WithHint(installHint)
	}
	return nil
}

// CheckAuthenticated verifies the CLI reports a logged-in session.
func (c CLI) CheckAuthenticated(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, c.bin, "config", "--list"); err != nil {
		return domain.Fail(domain.KindAuthRequired, "Not logged into Stripe CLI", err).
			WithHint(`Run "stripe login" and try again`)
	}
	return nil
}

// WebhookSecret asks the CLI for the signing secret of its local listener.
func (c CLI) WebhookSecret(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, c.bin, "listen", "--print-secret")
	if err != nil {
		return "", err
	}
	secret := strings.TrimSpace(string(out))
	if secret == "" {
		return "", errEmptySecret
	}
	return secret, nil
}
