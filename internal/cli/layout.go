package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordgrove/wordgrove/pkg/graph"
	"github.com/wordgrove/wordgrove/pkg/pipeline"
)

// layoutCommand creates the layout command for computing positions without rendering.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		wordsStr string
		noCache  bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "layout [words.txt]",
		Short: "Compute a layout document from a word list",
		Long: `Compute a layout document from a word list.

The layout command builds the prefix tree and computes node positions, but
skips rendering. The output is a layout.json document that 'draw' and the
HTTP API produce as their json format, useful for downstream tooling.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runLayout(cmd.Context(), input, wordsStr, opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&wordsStr, "words", "", "comma-separated word list instead of a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Direction, "direction", "d", opts.Direction, "projection direction: TB (default), BT, LR, RL, RADIAL")
	cmd.Flags().Float64Var(&opts.SiblingDistance, "sibling-distance", opts.SiblingDistance, "gap between sibling nodes")
	cmd.Flags().Float64Var(&opts.SubtreeDistance, "subtree-distance", opts.SubtreeDistance, "gap between neighboring subtrees")
	cmd.Flags().Float64Var(&opts.LevelDistance, "level-distance", opts.LevelDistance, "gap between tree levels")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "truncate words longer than this (0 = unlimited)")

	return cmd
}

// runLayout builds the trie, computes the layout, and writes the document.
func (c *CLI) runLayout(ctx context.Context, input, wordsStr string, opts pipeline.Options, output string, noCache bool) error {
	words, err := resolveWords(input, wordsStr)
	if err != nil {
		return err
	}
	opts.Words = words
	opts.Logger = c.Logger

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	trie, err := runner.Build(ctx, opts)
	if err != nil {
		return fmt.Errorf("build trie: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Direction))
	spinner.Start()

	doc, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, trie, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := appName
		if input != "" && input != "-" {
			base = strings.TrimSuffix(input, filepath.Ext(input))
		}
		outputPath = base + ".layout.json"
	}

	if err := graph.WriteFile(doc, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(trie.Terminals), trie.Tree.Len(), cacheHit)
	printNewline()
	printNextStep("Render", "wordgrove render "+outputPath)

	return nil
}
