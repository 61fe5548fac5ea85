package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/hd-derive/derive"
	"github.com/AlexZinkM/hd-derive/internal/api"
	"github.com/AlexZinkM/hd-derive/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only derivation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()

			secret, err := cfg.ResolveSecret()
			if err != nil {
				return err
			}

			adapter := derive.NewAdapter(cfg.ToolPath, cfg.Timeout)
			router, err := api.SetupRouter(adapter, secret, cfg.NumDerive)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              net.JoinHostPort("", cfg.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
				// derivations may take up to the tool timeout
				WriteTimeout: cfg.Timeout + 10*time.Second,
			}
			return serve(ctx, srv)
		},
	}
}

// serve runs srv until ctx is done, then shuts it down gracefully
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
