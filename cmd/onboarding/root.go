package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"corp-onboarding/internal/common/config"
	"corp-onboarding/internal/common/logger"
	"corp-onboarding/internal/common/observability"
	"corp-onboarding/internal/onboarding/api"
	profilesubmit "corp-onboarding/internal/onboarding/profile-submit"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// app is what every subcommand needs, built once the flags are parsed.
type app struct {
	cfg           *config.Config
	log           logger.Logger
	client        *api.Client
	obs           *observability.Observability
	metricsServer *http.Server
}

type rootOptions struct {
	cfgFile string
	baseURL string
	verbose bool
	app     *app
}

// newRootCmd builds the command tree. The returned teardown releases whatever the
// pre-run started and must be called whether or not the command failed.
func newRootCmd() (*cobra.Command, func()) {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Business profile onboarding with Canadian corporation number validation",
		Long: `Collects a business profile (first name, last name, phone and corporation
number), checks the corporation number against the registry service and creates
the profile. Incomplete or malformed input never reaches the network.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.setup()
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is configs/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "onboarding API base URL (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	cmd.AddCommand(
		newOnboardCmd(opts),
		newSubmitCmd(opts),
		newCheckCmd(opts),
		newVersionCmd(),
	)
	return cmd, opts.teardown
}

func (o *rootOptions) setup() (*app, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.cfgFile != "" {
		cfg, err = config.LoadFromFile(o.cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if o.baseURL != "" {
		cfg.API.BaseURL = strings.TrimRight(o.baseURL, "/")
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)

	a := &app{
		cfg: cfg,
		log: log,
		client: api.NewClient(api.ClientOptions{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.RequestTimeout(),
			Logger:  log,
		}),
	}

	if cfg.Metrics.Enabled {
		obs, err := observability.New(cfg.App.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to init observability: %w", err)
		}
		a.obs = obs
		a.metricsServer = startMetricsServer(cfg.Metrics.Addr, log)
	}

	log.Debug("Configuration loaded", map[string]interface{}{
		"baseURL":    cfg.API.BaseURL,
		"timeoutMs":  cfg.API.Timeout,
		"debounceMs": cfg.Validation.DebounceMs,
	})
	return a, nil
}

func (o *rootOptions) teardown() {
	if o.app == nil {
		return
	}
	if o.app.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = o.app.metricsServer.Shutdown(ctx)
	}
	if o.app.obs != nil {
		o.app.obs.Shutdown()
	}
	o.app = nil
}

// recorder returns nil when metrics are disabled so the orchestrator skips recording.
func (a *app) recorder() profilesubmit.Recorder {
	if a.obs == nil {
		return nil
	}
	return a.obs
}

func startMetricsServer(addr string, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("Metrics server stopped", map[string]interface{}{"error": err.Error()})
		}
	}()
	return srv
}
