package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/reindent/internal/httpapi"
)

// HTTPRunner serves srv on addr until ctx is done.
type HTTPRunner func(ctx context.Context, srv *httpapi.Server, addr string) error

func newHTTPCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the format and check HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadSettings(cmd, opts.WorkDir)
			if err != nil {
				return err
			}
			cfg, err := st.formatConfig()
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(opts.Stderr, nil))
			srv := httpapi.New(httpapi.Options{
				Logger:   logger,
				Defaults: cfg,
				MaxBytes: st.maxBytes(),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return opts.HTTPRunner(ctx, srv, st.v.GetString("addr"))
		},
	}
	addFormatFlags(cmd)
	cmd.Flags().String("addr", ":8080", "listen address")
	return cmd
}

func defaultHTTPRunner(ctx context.Context, srv *httpapi.Server, addr string) error {
	return srv.Run(ctx, addr)
}
