package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/config"
	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/engine"
	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/host"
	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/logging"
)

type serveOptions struct {
	configPath string
	seed       string
	logLevel   string
	workers    int
}

func newServeCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve document commands over stdin/stdout",
		Long: `Serve reads Content-Length framed JSON requests from stdin and writes
one framed response per request to stdout. Logs go to stderr.

Settings are read from defaults, then --config (TOML or YAML), then
HIDDERS_* environment variables, then flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadServeConfig(cmd, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to config file (.toml, .yaml, .yml)")
	flags.StringVar(&opts.seed, "seed", "", "initial document text")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.IntVar(&opts.workers, "workers", 0, "maximum requests handled at once")

	return cmd
}

// loadServeConfig loads the config file and environment, then applies the
// flags the user actually set.
func loadServeConfig(cmd *cobra.Command, opts serveOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Document.Seed = opts.seed
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("workers") {
		cfg.Host.Workers = opts.workers
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	logger := logging.NewWithOptions(logging.Options{
		Level:     cfg.Log.Level,
		Timestamp: cfg.Log.Timestamp,
		Output:    cmd.ErrOrStderr(),
	})
	logging.SetDefault(logger)

	eng := engine.New(
		engine.WithSeed(cfg.Document.Seed),
		engine.WithLogger(logger),
	)
	server := host.NewServer(eng,
		host.WithWorkers(cfg.Host.Workers),
		host.WithMaxMessageSize(cfg.Host.MaxMessageSize),
		host.WithLogger(logger),
	)

	err := server.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
