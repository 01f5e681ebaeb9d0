package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kkpan11/heavydb/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		maxBytes int64
		timeout  time.Duration
		cc       cacheOpts
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the explain endpoint over HTTP",
		Long: `Serve starts an HTTP server exposing POST /v1/explain, which takes a TOML
plan as the request body and returns the rendered document. The format,
compact and detailed query parameters mirror the explain flags.`,
		Example: `  relexplain serve --addr :8080
  curl --data-binary @plan.toml 'localhost:8080/v1/explain?format=text'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cc)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, loggerFromContext(ctx),
				server.WithMaxPlanBytes(maxBytes),
				server.WithTimeout(timeout),
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().Int64Var(&maxBytes, "max-plan-bytes", server.DefaultMaxPlanBytes, "largest accepted plan body")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout")
	cc.register(cmd)

	return cmd
}
