package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/config"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/provision"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/server"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the workloads api",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if cfg.Debug {
			setLogLevel(true)
		}

		s, err := store.Open(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to open store")
		}
		defer s.Close()

		engine := provision.NewEngine(s, provision.NewLogProvisioner(), provision.WithRetries(cfg.Retries))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info().Str("store", cfg.Store).Msg("starting workloads server")
		return server.New(engine, s).Start(ctx, cfg.ListenAddr)
	},
}

func loadConfig(cmd *cobra.Command) (config.Configuration, error) {
	envPath, err := cmd.Flags().GetString("env")
	if err != nil {
		return config.Configuration{}, errors.Wrapf(err, "invalid env path '%s'", envPath)
	}

	cfg := config.Default()
	if envPath != "" {
		cfg, err = config.ReadConfFile(envPath)
		if err != nil {
			return config.Configuration{}, err
		}
	}

	listen, err := cmd.Flags().GetString("listen")
	if err != nil {
		return config.Configuration{}, errors.Wrapf(err, "invalid listen address '%s'", listen)
	}
	if listen != "" {
		cfg.ListenAddr = listen
	}

	return cfg, nil
}
