package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agencyos/order-desk/internal/api"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the JSON API on $PORT. The acting user of every /v1 request is
taken from the X-User-ID header; POST /auth/login returns that id.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			e := api.NewRouter(api.Deps{
				Auth:         a.auth,
				Orders:       a.orders,
				Slots:        a.backend.Slots,
				Backend:      a.backend.Name,
				PollInterval: a.cfg.PollInterval,
				Logger:       a.log,
			})

			errCh := make(chan error, 1)
			go func() {
				a.log.Info().Str("port", a.cfg.Port).Str("backend", a.backend.Name).Msg("http server listening")
				if err := e.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		})
	},
}
