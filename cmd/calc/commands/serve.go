package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XJIeI5/calcengine/internal/logging"
	"github.com/XJIeI5/calcengine/internal/server"
	"github.com/XJIeI5/calcengine/internal/session"
	"github.com/XJIeI5/calcengine/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the session HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.StandardLogger()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := storage.New(ctx, a.cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			m := session.NewManager(store, a.cfg.Session, session.WithLogger(log))
			m.Start(ctx)
			defer m.Close()

			srv := server.GetServer(a.cfg, m, log)
			errCh := make(chan error, 1)
			go func() {
				log.WithField("addr", srv.Addr).WithField("storage", a.cfg.Storage.Driver).Info("run calc server")
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("stop calc server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
