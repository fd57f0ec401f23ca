package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/polaris/internal/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog, notes and assistant over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" && app.Config != nil {
				addr = app.Config.Addr
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			return serve(cmd.Context(), app, ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from POLARIS_ADDR)")
	return cmd
}

// serve runs the HTTP API on ln until ctx is cancelled. Notes hydrate in
// the background; note routes answer 503 until they are ready.
func serve(ctx context.Context, app *App, ln net.Listener) error {
	log := app.logger()
	var origins []string
	if app.Config != nil {
		origins = app.Config.AllowedOrigins
	}

	handler := api.NewHandler(app.Notes, app.Assistant, log)
	srv := &http.Server{
		Handler:      api.NewRouter(handler, origins),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		app.hydrate(ctx)
		log.Info("notes hydrated", "remote", app.Notes.RemoteEnabled())
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
