// Package pipeline provides the core word-to-picture pipeline for wordgrove.
//
// This package implements the complete build → layout → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Normalize the word list and construct the prefix trie
//  2. Layout: Compute node positions for the requested direction
//  3. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Layout documents and rendered artifacts are cached; trie construction is
// cheap enough to redo every run.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Words:     []string{"cat", "car", "dog"},
//	    Direction: "TB",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Build only
//	trie, err := runner.Build(ctx, opts)
//
//	// Layout with existing trie
//	doc, err := runner.ComputeLayout(ctx, trie, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wordgrove/wordgrove/pkg/cache"
	errs "github.com/wordgrove/wordgrove/pkg/errors"
	"github.com/wordgrove/wordgrove/pkg/graph"
	"github.com/wordgrove/wordgrove/pkg/layout"
	"github.com/wordgrove/wordgrove/pkg/words"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultDirection is the default projection direction.
	DefaultDirection = string(layout.DirectionTB)

	// DefaultDistance is the default node spacing on all three axes.
	DefaultDistance = 1.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Words    []string `json:"words,omitempty"`
	MaxDepth int      `json:"max_depth,omitempty"`

	// Layout options
	Direction       string  `json:"direction,omitempty"`
	SiblingDistance float64 `json:"sibling_distance,omitempty"`
	SubtreeDistance float64 `json:"subtree_distance,omitempty"`
	LevelDistance   float64 `json:"level_distance,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`    // PNG scale factor
	Detailed bool     `json:"detailed,omitempty"` // Verbose DOT labels
	Refresh  bool     `json:"refresh,omitempty"`  // Bypass the cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Trie is the constructed prefix tree.
	Trie *words.Trie

	// Document is the positioned tree with the echoed configuration.
	Document graph.Document

	// DocumentHash is the content hash of the serialized document.
	DocumentHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WordCount  int
	NodeCount  int
	EdgeCount  int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout document came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for trie construction.
func (o *Options) ValidateForBuild() error {
	if len(words.Normalize(o.Words)) == 0 {
		return errs.New(errs.ErrCodeInvalidWordList, "word list is empty")
	}
	if o.MaxDepth < 0 {
		return errs.New(errs.ErrCodeInvalidWordList, "max depth must not be negative")
	}
	o.setLoggerDefault()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if o.SiblingDistance == 0 {
		o.SiblingDistance = DefaultDistance
	}
	if o.SubtreeDistance == 0 {
		o.SubtreeDistance = DefaultDistance
	}
	if o.LevelDistance == 0 {
		o.LevelDistance = DefaultDistance
	}
	o.setLoggerDefault()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	_, err := o.LayoutConfig()
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLoggerDefault()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutConfig converts the options into an engine configuration.
func (o *Options) LayoutConfig() (layout.Config, error) {
	dir, err := layout.ParseDirection(o.Direction)
	if err != nil {
		return layout.Config{}, err
	}
	cfg := layout.Config{
		SiblingDistance: o.SiblingDistance,
		SubtreeDistance: o.SubtreeDistance,
		LevelDistance:   o.LevelDistance,
		Direction:       dir,
	}
	if err := cfg.Validate(); err != nil {
		return layout.Config{}, err
	}
	return cfg, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Direction:       o.Direction,
		SiblingDistance: o.SiblingDistance,
		SubtreeDistance: o.SubtreeDistance,
		LevelDistance:   o.LevelDistance,
		MaxDepth:        o.MaxDepth,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Detailed: o.Detailed}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
