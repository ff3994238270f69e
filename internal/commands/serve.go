package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/finance-toolkit/internal/buildinfo"
	"github.com/iwvelando/finance-toolkit/internal/calculator"
	"github.com/iwvelando/finance-toolkit/internal/server"
	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/exchange"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(a *app) *cobra.Command {
	var serverConfigPath, address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators as a web application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			serverCfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			serverCfg.SetAddress(address)

			logger := a.logger
			if serverCfg.Logging.Level != "" || serverCfg.Logging.Format != "" || serverCfg.Logging.OutputFile != "" {
				if logger, err = initializeLogger(serverCfg.Logging, a.logLevel); err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			cache := a.conf.RateCache()
			if memory, ok := cache.(*exchange.MemoryCache); ok {
				go memory.StartCleanup(ctx, a.conf.Exchange.CacheTTL)
			}

			formatter := a.conf.Formatter()
			handler := server.NewHandler(logger, serverCfg.BodySizeBytes(), buildinfo.Version, server.Dependencies{
				Registry:  calculator.NewRegistry(formatter, logger),
				Rates:     a.conf.ExchangeServiceWithCache(cache, logger),
				Formatter: formatter,
			})

			logger.Info("starting finance-toolkit server",
				zap.String("op", "commands.serve"),
				zap.String("address", serverCfg.Address),
				zap.String("version", buildinfo.Version),
			)
			return server.Run(ctx, serverCfg, handler, logger)
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override (e.g. :8080)")

	return cmd
}
