package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/roadsign/internal/config"
	"github.com/abhisek/roadsign/internal/logging"
	"github.com/abhisek/roadsign/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}

		logger := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)

		a, err := newApp(ctx, cmd, cfg, logger, true)
		if err != nil {
			return err
		}
		defer a.Close()
		logger.Info("sign catalog loaded", "signs", a.catalog.Len(), "version", a.catalog.Version())

		srv := server.New(server.Options{
			Addr:          cfg.HTTPAddr,
			CORSOrigins:   cfg.CORSOrigins,
			MaxImageBytes: cfg.MaxImageBytes,
		}, a.svc, a.store, logger)

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			return srv.Run(gctx)
		})

		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down http server")
			return srv.Shutdown(context.Background())
		})

		err = g.Wait()
		logger.Info("waiting for background writes")
		return err
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides ROADSIGN_HTTP_ADDR)")
}
