// Package main provides the prediction server and a one-shot prediction command.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"carprice/internal/adapter"
	"carprice/internal/api"
	"carprice/internal/config"
	"carprice/internal/logger"
	"carprice/internal/model"
)

var (
	errBadArgument  = errors.New("expected field=value")
	errUnknownField = errors.New("unknown field")
)

type app struct {
	v          *viper.Viper
	configPath string
}

func main() {
	// A missing .env file is fine; the environment may be set another way.
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:          "server",
		Short:        "Serve used car price predictions",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to YAML config file (env CARPRICE_CONFIG)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
	flags.String("backend", "", "Model backend: linear or remote")
	flags.String("artifact", "", "Path to the linear model artifact")
	flags.String("remote-url", "", "URL of the remote model endpoint")

	bindFlags(a.v, flags, map[string]string{
		"logging.level":    "log-level",
		"logging.format":   "log-format",
		"model.backend":    "backend",
		"model.artifact":   "artifact",
		"model.remote_url": "remote-url",
	})

	cmd.AddCommand(newServeCmd(a), newPredictCmd(a))

	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		// Lookup cannot fail for flags declared above.
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}

// loadConfig reads the config file, overlays CARPRICE_* variables and
// explicitly set flags, then validates the result.
func (a *app) loadConfig() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		path = a.v.GetString("config")
	}

	cfg := config.Default()

	if path != "" {
		var err error

		cfg, err = config.ReadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	cfg.ApplyViper(a.v)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (a *app) openModel() (*config.Config, *logger.Logger, model.Backend, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.NewLoggerWithWriter(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	backend, err := model.Open(cfg.Model)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load model: %w", err)
	}

	log.Info("model loaded", "backend", cfg.Model.Backend, "name", backend.Name())

	return cfg, log, backend, nil
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP prediction server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, backend, err := a.openModel()
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			srv, err := api.New(cfg.Server, backend, registry, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("address", "", "Listen address, e.g. :8000")
	bindFlags(a.v, cmd.Flags(), map[string]string{"server.address": "address"})

	return cmd
}

func newPredictCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "predict [field=value ...]",
		Short: "Predict one price from field=value pairs and print it as JSON",
		Example: "  server predict brand=Honda model='Amaze 1.2 VX i-VTEC' year=2017 mileage=87150\n" +
			"  fields: " + strings.Join(adapter.FieldNames(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := parseArgs(args)
			if err != nil {
				return err
			}

			features, err := adapter.ParseForm(form)
			if err != nil {
				return err
			}

			cfg, _, backend, err := a.openModel()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Model.GetTimeout())
			defer cancel()

			price, err := adapter.New(backend).PredictFeatures(ctx, features)
			if err != nil {
				return err
			}

			return json.NewEncoder(cmd.OutOrStdout()).Encode(api.PredictionResponse{PredictedPrice: price})
		},
	}
}

func parseArgs(args []string) (url.Values, error) {
	fields := adapter.FieldNames()
	form := url.Values{}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("%w, got %q", errBadArgument, arg)
		}

		if !slices.Contains(fields, key) {
			return nil, fmt.Errorf("%w: %q", errUnknownField, key)
		}

		form.Set(key, value)
	}

	return form, nil
}
