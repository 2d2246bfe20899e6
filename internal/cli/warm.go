package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/outlooklabs/termrain/pkg/pipeline"
	"github.com/outlooklabs/termrain/pkg/score"
	"github.com/outlooklabs/termrain/pkg/sentiment"
)

// newWarmCmd creates the warm command: recompute and cache every wordlist
// combination, seed the persistent sentiment store, then prewarm sentiment
// for every term the combinations produced. This is the batch job run after
// corpus updates so interactive requests hit a warm cache.
func newWarmCmd() *cobra.Command {
	var skipSentiment bool

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Prewarm the result and sentiment caches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWarm(cmd, skipSentiment)
		},
	}

	cmd.Flags().BoolVar(&skipSentiment, "skip-sentiment", false, "skip the sentiment prewarm pass")
	return cmd
}

func runWarm(cmd *cobra.Command, skipSentiment bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configFlag)
	if err != nil {
		return err
	}
	runner, err := buildRunner(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	years, err := runner.Source.Years(ctx)
	if err != nil {
		return fmt.Errorf("list years: %w", err)
	}

	// Scope zero is the whole corpus.
	scopes := append([]int{0}, years...)
	modes := []string{string(score.ModeWords), string(score.ModePhrases)}
	scorings := []string{string(score.ScoringFrequency), string(score.ScoringImportance)}
	limits := score.AllowedLimits

	track := newProgress(logger)
	terms := make(map[string]bool)
	combos := 0

	for _, year := range scopes {
		for _, mode := range modes {
			for _, scoring := range scorings {
				for _, limit := range limits {
					result, err := runner.WordCloud(ctx, pipeline.Options{
						Year:      year,
						Mode:      mode,
						Scoring:   scoring,
						Limit:     limit,
						SkipCache: true, // recompute and overwrite
						Logger:    logger,
					})
					if err != nil {
						return fmt.Errorf("warm scope=%d mode=%s scoring=%s limit=%d: %w",
							year, mode, scoring, limit, err)
					}
					combos++
					for _, w := range result.Words {
						terms[w.Term] = true
					}
					logger.Debug("warmed wordlist",
						"scope", result.Year, "mode", mode, "scoring", scoring,
						"limit", limit, "terms", result.WordCount)
				}
			}
		}
	}

	// The rain aggregation has a single cache entry per default window.
	if _, err := runner.WordRain(ctx, pipeline.Options{SkipCache: true, Logger: logger}); err != nil {
		return fmt.Errorf("warm word rain: %w", err)
	}

	track.done(fmt.Sprintf("Warmed %d wordlist combinations", combos+1))
	printSuccess("Result cache warm: %d combinations, %d distinct terms", combos+1, len(terms))

	if skipSentiment {
		return nil
	}

	all := make([]string, 0, len(terms))
	for t := range terms {
		all = append(all, t)
	}
	sort.Strings(all)

	// Seed the store before resolving: curated rows get the dictionary
	// source tag, and unknown terms get neutral placeholders the classifier
	// can backfill later.
	dictRows, placeholders, err := runner.Resolver.Seed(ctx, all)
	if err != nil {
		return fmt.Errorf("seed sentiment store: %w", err)
	}
	if dictRows > 0 || placeholders > 0 {
		printSuccess("Sentiment store seeded: %d dictionary rows, %d placeholders", dictRows, placeholders)
	}

	track = newProgress(logger)
	resolved := 0
	for start := 0; start < len(all); start += sentiment.MaxBatchTerms {
		end := min(start+sentiment.MaxBatchTerms, len(all))
		results := runner.Resolver.ResolveBatch(ctx, all[start:end])
		resolved += len(results)
		logger.Debug("warmed sentiment batch", "from", start, "to", end)
	}
	track.done(fmt.Sprintf("Resolved sentiment for %d terms", resolved))
	printSuccess("Sentiment cache warm: %d terms", resolved)

	return nil
}
