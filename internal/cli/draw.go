package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordgrove/wordgrove/pkg/pipeline"
)

// drawCommand creates the draw command, the full build → layout → render run.
func (c *CLI) drawCommand() *cobra.Command {
	var (
		output      string
		formatsStr  string
		wordsStr    string
		interactive bool
		noCache     bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "draw [words.txt]",
		Short: "Draw a word list as a prefix tree",
		Long: `Draw a word list as a prefix tree.

The draw command reads a word list (one word per line, '#' starts a comment),
builds a prefix tree from it, computes node positions, and renders the result.
Use "-" to read the list from stdin, or pass words inline with --words.

Layouts and rendered artifacts are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			opts.Formats = parseFormats(formatsStr)
			return c.runDraw(cmd.Context(), input, wordsStr, opts, output, interactive, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input name without extension)")
	cmd.Flags().StringVar(&wordsStr, "words", "", "comma-separated word list instead of a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Direction, "direction", "d", opts.Direction, "projection direction: TB (default), BT, LR, RL, RADIAL")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the direction interactively")
	cmd.Flags().Float64Var(&opts.SiblingDistance, "sibling-distance", opts.SiblingDistance, "gap between sibling nodes")
	cmd.Flags().Float64Var(&opts.SubtreeDistance, "subtree-distance", opts.SubtreeDistance, "gap between neighboring subtrees")
	cmd.Flags().Float64Var(&opts.LevelDistance, "level-distance", opts.LevelDistance, "gap between tree levels")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "truncate words longer than this (0 = unlimited)")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include depth and coordinates in DOT labels")

	return cmd
}

// runDraw resolves the word list, executes the pipeline, and writes artifacts.
func (c *CLI) runDraw(ctx context.Context, input, wordsStr string, opts pipeline.Options, output string, interactive, noCache bool) error {
	words, err := resolveWords(input, wordsStr)
	if err != nil {
		return err
	}
	opts.Words = words
	opts.Logger = c.Logger

	if interactive {
		direction, err := pickDirection(opts.Direction)
		if err != nil {
			return err
		}
		opts.Direction = direction
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Drawing %s tree...", opts.Direction))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Draw failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := outputBase(output, input)
	paths, err := writeArtifacts(base, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Draw complete")
	for _, path := range paths {
		printFile(path)
	}
	cached := result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	printStats(result.Stats.WordCount, result.Stats.NodeCount, cached)

	return nil
}

// resolveWords picks the word source: an inline --words list wins over a file.
func resolveWords(input, wordsStr string) ([]string, error) {
	if wordsStr != "" {
		return strings.Split(wordsStr, ","), nil
	}
	if input == "" {
		return nil, fmt.Errorf("no word list: pass a file argument or --words")
	}
	return readWordList(input)
}

// outputBase derives the artifact base path. Known format extensions on the
// output flag are stripped so "grove.svg" and "grove" behave the same.
func outputBase(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input == "" || input == "-" {
		return appName
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// writeArtifacts writes each rendered format to base.<format> and returns the
// written paths in stable order.
func writeArtifacts(base string, artifacts map[string][]byte) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for format := range artifacts {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
