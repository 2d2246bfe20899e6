package cli

import (
	"github.com/spf13/cobra"

	"github.com/outlooklabs/termrain/internal/api"
)

// newServeCmd creates the serve command: run the HTTP API until
// interrupted.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the termrain HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(configFlag)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := buildRunner(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Serving on %s", StyleHighlight.Render(addr))
			return api.New(runner, logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
