package collect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jonkarrer/brize/internal/domain"
	"github.com/jonkarrer/brize/internal/prompt"
	"github.com/jonkarrer/brize/internal/ui"
)

const (
	sourceLabel    = "Do you want to use a local Postgres instance with Docker (L) or a remote Postgres instance (R)? (L/R)"
	remoteLabel    = "Please enter your remote Postgres instance url"
	secretKeyLabel = "Please enter your Stripe secret key"
	portLabel      = "Please enter the port you want the UI to run on, e.g. 3000"

	abortKeyword = "abort"
)

// LocalProvisioner starts a local database and returns its connection URL.
type LocalProvisioner interface {
	Run(ctx context.Context) (string, error)
}

// WebhookSource yields the Stripe webhook signing secret.
type WebhookSource interface {
	WebhookSecret(ctx context.Context) (string, error)
}

// KeyVerifier checks a Stripe secret key.
type KeyVerifier interface {
	Verify(ctx context.Context, key string) error
}

// Options tunes collector behaviour.
type Options struct {
	// MaxURLAttempts bounds rejected remote URLs; zero means no bound.
	MaxURLAttempts int
	// VerifyKey checks the secret key against the Stripe API.
	VerifyKey bool
}

// Collector gathers SetupConfig values from the operator.
type Collector struct {
	asker     prompt.Asker
	local     LocalProvisioner
	webhook   WebhookSource
	keys      KeyVerifier
	newSecret func() string
	printer   *ui.Printer
	log       *slog.Logger
	opts      Options
}

// New constructs a Collector. keys may be nil when verification is disabled.
func New(asker prompt.Asker, local LocalProvisioner, webhook WebhookSource, keys KeyVerifier, printer *ui.Printer, log *slog.Logger, opts Options) *Collector {
	return &Collector{
		asker:     asker,
		local:     local,
		webhook:   webhook,
		keys:      keys,
		newSecret: uuid.NewString,
		printer:   printer,
		log:       log,
		opts:      opts,
	}
}

// Collect runs every prompt in order and returns the filled configuration.
func (c *Collector) Collect(ctx context.Context) (domain.SetupConfig, error) {
	var cfg domain.SetupConfig

	c.printer.Header("Database Setup")
	dbURL, err := c.DatabaseURL(ctx)
	if err != nil {
		return cfg, err
	}
	cfg.DatabaseURL = dbURL

	c.printer.Header("Stripe Setup")
	if cfg.StripeSecretKey, err = c.SecretKey(ctx); err != nil {
		return cfg, err
	}
	cfg.StripeWebhookSecret = c.WebhookSecret(ctx)

	c.printer.Header("Application Setup")
	if cfg.UIPort, err = c.ask(ctx, portLabel); err != nil {
		return cfg, err
	}
	cfg.AuthSecret = c.newSecret()
	c.printer.Success("Generated auth secret")

	return cfg, nil
}

// DatabaseURL asks for the database source and returns a connection URL. A
// remote URL without the postgres:// prefix sends the operator back to the
// source question.
func (c *Collector) DatabaseURL(ctx context.Context) (string, error) {
	rejected := 0
	for {
		choice, err := c.ask(ctx, sourceLabel)
		if err != nil {
			return "", err
		}
		if strings.EqualFold(choice, "l") {
			return c.local.Run(ctx)
		}

		remote, err := c.ask(ctx, remoteLabel)
		if err != nil {
			return "", err
		}
		if (domain.RemoteDatabase{URL: remote}).Valid() {
			c.printer.Success("Using remote Postgres instance")
			return remote, nil
		}

		rejected++
		c.log.Debug("rejected remote database url", "attempt", rejected)
		c.printer.Warn("Missing %s, please try again", domain.PostgresScheme)
		if c.opts.MaxURLAttempts > 0 && rejected >= c.opts.MaxURLAttempts {
			return "", domain.Fail(domain.KindInputInvalid,
				fmt.Sprintf("No valid Postgres URL after %d attempts", rejected), nil)
		}
	}
}

// SecretKey prompts for the Stripe secret key, optionally verifying it.
// Verification failures are warnings only.
func (c *Collector) SecretKey(ctx context.Context) (string, error) {
	key, err := c.askSecret(ctx, secretKeyLabel)
	if err != nil {
		return "", err
	}
	if c.opts.VerifyKey && c.keys != nil {
		if err := c.keys.Verify(ctx, key); err != nil {
			c.log.Warn("stripe key verification failed", "error", err)
			c.printer.Warn("Stripe did not accept the secret key, double-check it in the .env file")
		} else {
			c.printer.Success("Verified Stripe secret key")
		}
	}
	return key, nil
}

// WebhookSecret returns the listener secret, or "" with a warning when the
// Stripe CLI cannot provide one.
func (c *Collector) WebhookSecret(ctx context.Context) string {
	secret, err := c.webhook.WebhookSecret(ctx)
	if err != nil {
		c.log.Warn("stripe webhook secret unavailable", "error", err)
		c.printer.Warn("Failed to get Stripe webhook secret, you can fill it in later in the .env file")
		return ""
	}
	c.printer.Success("Got Stripe webhook secret")
	return secret
}

func (c *Collector) ask(ctx context.Context, label string) (string, error) {
	answer, err := c.asker.Ask(ctx, label)
	return checkAnswer(answer, err)
}

func (c *Collector) askSecret(ctx context.Context, label string) (string, error) {
	answer, err := c.asker.AskSecret(ctx, label)
	return checkAnswer(answer, err)
}

func checkAnswer(answer string, err error) (string, error) {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", domain.Fail(domain.KindAborted, "Setup interrupted", err)
		}
		return "", domain.Fail(domain.KindPromptFailed, "Failed to read input", err)
	}
	if strings.EqualFold(answer, abortKeyword) {
		return "", domain.Fail(domain.KindAborted, "Setup aborted", domain.ErrAborted)
	}
	return answer, nil
}
