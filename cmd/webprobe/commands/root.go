package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"webprobe/lib/httpclient"
	"webprobe/lib/platform"
	"webprobe/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configName string
	debug      bool

	config Config
	tel    telemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:           "webprobe",
	Short:         "webprobe submits the links, forms, cookies and headers of a web application.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = loadConfig(configName)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		telemetry.InitSlog(debug || config.Debug)

		tel, err = telemetry.SetupFromEnv(cmd.Context(), "webprobe")
		if errors.Is(err, os.ErrNotExist) {
			tel, err = telemetry.Setup(cmd.Context(), "webprobe", telemetry.Config{})
		}
		if err != nil {
			slog.Warn("failed to setup telemetry", "err", err)
			return nil
		}
		telemetry.InstrumentPerfStats(cmd.Context(), 15*time.Second)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configName, "config", "webprobe.json5", "The config file name, searched for upwards from the working directory.")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cliAuditor string

func (a cliAuditor) Name() string {
	return string(a)
}

func newClient() (*httpclient.Client, *platform.Registry, error) {
	registry, err := platform.NewRegistry(config.PlatformCacheSize)
	if err != nil {
		return nil, nil, err
	}
	cfg := config.Client
	cfg.Platforms = registry
	client, err := httpclient.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, registry, nil
}
