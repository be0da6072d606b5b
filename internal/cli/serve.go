package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/kbreader/internal/server"
	"github.com/mithrel/kbreader/pkg/api"
)

func newServeCmd() *cobra.Command {
	var fixture string
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a fixture article list the way the content API does",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			articles := []api.Article{}
			if fixture != "" {
				var err error
				if articles, err = server.LoadFixture(fixture); err != nil {
					return err
				}
			}
			srv := server.New(app.Cfg, app.Log, articles)
			httpSrv := &http.Server{Addr: listen, Handler: srv.Router(), ReadHeaderTimeout: 5 * time.Second}

			ctx := cmd.Context()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpSrv.Shutdown(shutdownCtx)
			}()

			app.Log.WithField("addr", listen).WithField("articles", len(articles)).Info("serve: listening")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fixture, "fixture", "", "JSON file with articles ({\"data\": [...]} or a bare array)")
	cmd.Flags().StringVar(&listen, "listen", ":1337", "listen address")
	return cmd
}
