package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/outlooklabs/termrain/pkg/errors"
	"github.com/outlooklabs/termrain/pkg/pipeline"
)

// cloudOpts holds the command-line flags for the cloud command.
type cloudOpts struct {
	year    int    // scope year, 0 means the whole corpus
	mode    string // extraction mode: words or phrases
	scoring string // scoring method: frequency or importance
	limit   int    // wordlist size: 50, 100, or 150
	refresh bool   // bypass the result cache
	pick    bool   // choose the year interactively
	asJSON  bool   // print the raw JSON response
	top     int    // how many ranked terms to display
}

// newCloudCmd creates the cloud command: compute and display the scored
// wordlist for a scope. Mode, scoring, and limit are coerced, not rejected,
// matching the API contract; a year outside any plausible publication
// window is rejected before the corpus is queried.
func newCloudCmd() *cobra.Command {
	opts := cloudOpts{top: 20}

	cmd := &cobra.Command{
		Use:   "cloud",
		Short: "Compute the scored wordlist for a scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCloud(cmd, &opts)
		},
	}

	cmd.Flags().IntVar(&opts.year, "year", 0, "scope to one year (default: whole corpus)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "extraction mode: words (default), phrases")
	cmd.Flags().StringVar(&opts.scoring, "scoring", "", "scoring method: frequency (default), importance")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "wordlist size: 50, 100 (default), 150")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the result cache")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose the year interactively")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the raw JSON response")
	cmd.Flags().IntVar(&opts.top, "top", opts.top, "number of ranked terms to display")

	return cmd
}

func runCloud(cmd *cobra.Command, opts *cloudOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if opts.year != 0 {
		if err := errors.ValidateYear(opts.year); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(configFlag)
	if err != nil {
		return err
	}
	runner, err := buildRunner(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	if opts.pick {
		years, err := runner.Source.Years(ctx)
		if err != nil {
			return fmt.Errorf("list years: %w", err)
		}
		year, ok, err := pickYear(years)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("No scope selected")
			return nil
		}
		opts.year = year
	}

	spin := newSpinner(ctx, "Scoring corpus...")
	spin.Start()

	result, err := runner.WordCloud(ctx, pipeline.Options{
		Year:      opts.year,
		Mode:      opts.mode,
		Scoring:   opts.scoring,
		Limit:     opts.limit,
		SkipCache: opts.refresh,
		Logger:    logger,
	})
	if err != nil {
		spin.StopWithError("Scoring failed")
		return err
	}
	spin.Stop()

	if opts.asJSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	printSuccess("Word cloud for %s (%s, %s)",
		StyleHighlight.Render(result.Year), result.Mode, result.Scoring)
	printStats(result.WordCount, result.TotalDocuments, result.Cached)

	shown := min(opts.top, len(result.Words))
	if shown > 0 {
		maxValue := result.Words[0].Value
		for i := 0; i < shown; i++ {
			printTermBar(i+1, result.Words[i].Term, result.Words[i].Value, maxValue)
		}
		if shown < len(result.Words) {
			printDetail("... and %d more", len(result.Words)-shown)
		}
	}

	return nil
}
