// Package pipeline provides the core render pipeline for kolam.
//
// This package implements the complete lattice → synthesize → layer → render
// pipeline used by the CLI, the HTTP server and the studio. Centralizing it
// keeps defaults, caching and logging identical across entry points.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Scene: build the dot lattice, synthesize the stroke pattern for the
//     symmetry class and expand it into iteration layers ([BuildScene])
//  2. Render: draw the scene in every requested format (SVG, PNG, PDF, JSON)
//
// When [Options.Markup] is set, both stages are skipped: the markup is the
// SVG artifact, byte for byte, and other vector formats are converted from it.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Params:  kolam.DefaultParams(),
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/kolam/pkg/cache"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/kolam"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, server and studio
// =============================================================================

const (
	// DefaultWidth is the default surface width in pixels.
	DefaultWidth = 400

	// DefaultHeight is the default surface height in pixels.
	DefaultHeight = 400

	// DefaultScale is the PNG pixel density.
	DefaultScale = 2.0

	// MaxScale bounds the PNG pixel density. The scaled surface must also
	// fit errors.MaxCanvasSize.
	MaxScale = 8.0

	// DefaultTransform is the default layer strategy.
	DefaultTransform = "fade"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// ContentType returns the MIME type of an artifact format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Scene options
	Params    kolam.Params `json:"params"`
	Width     int          `json:"width,omitempty"`
	Height    int          `json:"height,omitempty"`
	Transform string       `json:"transform,omitempty"` // fade (default) or spiral

	// Markup, when non-empty, replaces the scene entirely.
	Markup string `json:"markup,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`    // PNG pixel density
	MaxSize int      `json:"max_size,omitempty"` // PNG thumbnail bound, 0 = none
	Title   string   `json:"title,omitempty"`    // SVG <title>
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and API responses.
	ID uuid.UUID

	// Scene is the computed geometry. Nil when the run used injected markup.
	Scene *kolam.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether artifacts came from the cache.
	CacheInfo CacheInfo
}

// FromMarkup reports whether the artifacts were produced from injected
// markup rather than computed geometry.
func (r *Result) FromMarkup() bool { return r.Scene == nil }

// Fallback reports whether the symmetry class was drawn with the fallback
// shape.
func (r *Result) Fallback() bool {
	return r.Scene != nil && r.Scene.Synthesis.Fallback
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Points     int
	Paths      int
	Layers     int
	SceneTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
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

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
//
// Pattern parameters are not validated when Markup is set, since they are
// not used. JSON export is rejected in that case: markup has no geometry
// to export.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.validateScale(); err != nil {
		return err
	}
	if o.HasMarkup() {
		for _, f := range o.Formats {
			if f == FormatJSON {
				return errors.New(errors.ErrCodeInvalidFormat, "json export is not available for supplied markup")
			}
		}
	} else {
		if err := o.Params.Validate(); err != nil {
			return err
		}
		if _, err := kolam.ParseTransform(o.Transform); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// validateScale bounds the PNG pixel density. The scaled canvas is only
// checked when PNG output is requested.
func (o *Options) validateScale() error {
	if math.IsNaN(o.Scale) || o.Scale <= 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}
	if !slices.Contains(o.Formats, FormatPNG) {
		return nil
	}
	w := int(math.Ceil(float64(o.Width) * o.Scale))
	h := int(math.Ceil(float64(o.Height) * o.Scale))
	if err := errors.ValidateCanvas(w, h); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "png at scale %g", o.Scale)
	}
	return nil
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	o.Params = o.Params.WithDefaults()
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Transform == "" {
		o.Transform = DefaultTransform
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// HasMarkup reports whether the run should emit supplied markup.
func (o *Options) HasMarkup() bool {
	return o.Markup != ""
}

// LayerTransform returns the strategy named by Transform.
func (o *Options) LayerTransform() kolam.LayerTransform {
	t, err := kolam.ParseTransform(o.Transform)
	if err != nil {
		return kolam.FadeStack{}
	}
	return t
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:    format,
		Width:     o.Width,
		Height:    o.Height,
		Transform: o.Transform,
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
		k.MaxSize = o.MaxSize
	case FormatSVG, FormatPDF:
		k.Title = o.Title
	}
	return k
}
