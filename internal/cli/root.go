package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/outlooklabs/termrain/pkg/buildinfo"
)

// configFlag holds the --config persistent flag value.
var configFlag string

// Execute runs the termrain CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (cloud, rain,
// serve, warm, cache), configures logging based on the --verbose flag, and
// executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "termrain",
		Short:        "Termrain turns financial outlooks into word rains",
		Long:         `Termrain analyzes a corpus of annual financial outlook documents and renders the important terms as a word rain: semantically positioned, sentiment-colored, importance-sized.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("termrain %s\ncommit: %s\nbuilt: %s\n",
		buildinfo.Version, buildinfo.Commit, buildinfo.Date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")

	root.AddCommand(newCloudCmd())
	root.AddCommand(newRainCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newWarmCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
