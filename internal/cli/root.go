package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonkarrer/brize/internal/metrics"
	"github.com/jonkarrer/brize/internal/prompt"
	"github.com/jonkarrer/brize/internal/toolrunner"
	"github.com/jonkarrer/brize/internal/ui"
	"github.com/jonkarrer/brize/pkg/config"
	"github.com/jonkarrer/brize/pkg/logger"
)

// deps are the process-level collaborators, swapped out in tests.
type deps struct {
	cfg    config.SetupConfig
	stdout io.Writer
	stderr io.Writer
	runner toolrunner.Runner
	asker  prompt.Asker
}

func defaultDeps() *deps {
	return &deps{
		cfg:    config.LoadSetupConfig(),
		stdout: os.Stdout,
		stderr: os.Stderr,
		runner: toolrunner.New(),
		asker:  prompt.NewTerminal(),
	}
}

// options holds flag values shared by every command.
type options struct {
	debug       bool
	envFile     string
	metricsFile string
	verifyKey   bool
	databaseURL string
}

func (o *options) logger(d *deps) *slog.Logger {
	level := slog.LevelWarn
	if o.debug {
		level = slog.LevelDebug
	}
	return logger.New("brize", level, d.stderr)
}

func (o *options) flushMetrics(rec *metrics.Recorder, log *slog.Logger) {
	if o.metricsFile == "" {
		return
	}
	if err := rec.WriteTextfile(o.metricsFile); err != nil {
		log.Warn("failed to write metrics", "path", o.metricsFile, "error", err)
	}
}

// Execute runs the brize command line and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := defaultDeps()
	if err := newRootCmd(d).ExecuteContext(ctx); err != nil {
		ui.New(d.stdout).Failure(err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(d *deps) *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:           "brize",
		Short:         "Bootstrap a brize checkout: Stripe, Postgres, .env, schema and seed data",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetup(cmd.Context(), d, o)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&o.debug, "debug", false, "enable verbose JSON logging on stderr")
	flags.StringVar(&o.envFile, "env-file", d.cfg.EnvFilePath, "path of the generated env file")
	flags.StringVar(&o.metricsFile, "metrics-file", "", "write stage metrics in Prometheus text format to this path")

	cmd.Flags().BoolVar(&o.verifyKey, "verify-stripe-key", d.cfg.VerifyStripeKey, "check the Stripe secret key against the Stripe API")

	cmd.AddCommand(setupCmd(d, o), migrateCmd(d, o), seedCmd(d, o))
	return cmd
}
