package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	httpAdapter "github.com/sievekit/sieve/internal/adapters/http"
	"github.com/sievekit/sieve/internal/adapters/middleware"
	"github.com/sievekit/sieve/internal/cli"
	"github.com/sievekit/sieve/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the validation HTTP server",
	Long: `Starts the stateless validation service, exposing document validation
and schema storage as a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		ttl, _ := cmd.Flags().GetDuration("schema-ttl")
		logger := newLogger(cmd)

		opts := storeOptions(cmd)
		opts.TTL = ttl
		store, closer := cli.NewStore(opts)
		defer closer() //nolint:errcheck

		promReg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(promReg)
		instrumented := middleware.Instrumented(logger, metrics)(store)

		handler := httpAdapter.NewHandler(httpAdapter.Config{
			Store:    instrumented,
			Logger:   logger,
			Metrics:  metrics,
			Registry: promReg,
		})

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting sieve server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			logger.Error("server error", "error", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "error", err)
				}
			}
		}
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "Port to listen on")
	serveCmd.Flags().Duration("schema-ttl", 0, "Expiration for stored schemas (0 = keep forever)")
	rootCmd.AddCommand(serveCmd)
}
