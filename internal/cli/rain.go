package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/outlooklabs/termrain/pkg/errors"
	"github.com/outlooklabs/termrain/pkg/pipeline"
)

// rainOpts holds the command-line flags for the rain command.
type rainOpts struct {
	output    string   // output file path (or base path for multiple formats)
	formats   []string // output formats: svg, json
	limit     int      // word budget, clamped to [20, 300]
	startYear int
	endYear   int
	width     float64
	height    float64
	seed      int64
	title     string
	refresh   bool // bypass the result cache
}

// newRainCmd creates the rain command: aggregate the corpus across years,
// lay the top terms out on the canvas, and write the rendered artifacts.
func newRainCmd() *cobra.Command {
	var formatsStr string
	opts := rainOpts{title: "Financial Outlooks"}

	cmd := &cobra.Command{
		Use:   "rain",
		Short: "Render the cross-year word rain",
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(formatsStr)
			if err != nil {
				return err
			}
			opts.formats = formats
			return runRain(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "wordrain", "output file base path (extension per format)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "word budget (20-300, default 300)")
	cmd.Flags().IntVar(&opts.startYear, "start-year", 0, "first year of the window (default 2019)")
	cmd.Flags().IntVar(&opts.endYear, "end-year", 0, "last year of the window (default 2026)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "layout seed (default 42)")
	cmd.Flags().StringVar(&opts.title, "title", opts.title, "rendered title")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the result cache")

	return cmd
}

// parseFormats parses the --format flag. Empty defaults to svg; unknown
// formats are rejected before any corpus work starts.
func parseFormats(s string) ([]string, error) {
	if s == "" {
		return []string{pipeline.FormatSVG}, nil
	}
	formats := strings.Split(s, ",")
	for i, f := range formats {
		formats[i] = strings.TrimSpace(f)
		if err := errors.ValidateFormat(formats[i]); err != nil {
			return nil, err
		}
	}
	return formats, nil
}

func runRain(cmd *cobra.Command, opts *rainOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configFlag)
	if err != nil {
		return err
	}
	if opts.width == 0 {
		opts.width = cfg.Canvas.Width
	}
	if opts.height == 0 {
		opts.height = cfg.Canvas.Height
	}
	if opts.seed == 0 {
		opts.seed = cfg.Canvas.Seed
	}

	runner, err := buildRunner(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		RainLimit: opts.limit,
		StartYear: opts.startYear,
		EndYear:   opts.endYear,
		Width:     opts.width,
		Height:    opts.height,
		Seed:      opts.seed,
		Formats:   opts.formats,
		SkipCache: opts.refresh,
		Logger:    logger,
	}

	track := newProgress(logger)
	spin := newSpinner(ctx, "Aggregating corpus...")
	spin.Start()

	rain, err := runner.WordRain(ctx, pipeOpts)
	if err != nil {
		spin.StopWithError("Aggregation failed")
		return err
	}

	placed, err := runner.Layout(ctx, rain, pipeOpts)
	if err != nil {
		spin.StopWithError("Layout failed")
		return err
	}

	artifacts, err := runner.Render(ctx, placed, opts.title, pipeOpts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()
	track.done(fmt.Sprintf("Rendered %d terms across %d years", len(placed), len(rain.Years)))

	if rain.ServiceStatus == "fallback" {
		printWarning("projection service unavailable, positions are deterministic fallbacks")
	}

	printSuccess("Word rain ready")
	printStats(len(placed), 0, false)

	for _, format := range pipeOpts.Formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := opts.output + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(filepath.Clean(path))
	}

	return nil
}
