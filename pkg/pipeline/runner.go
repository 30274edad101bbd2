package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/kolam/pkg/cache"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the server and the studio all use it so caching behaves the same
// everywhere.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the scene → render pipeline with caching.
//
// With [Options.Markup] set no scene is computed: the result carries the
// markup as its SVG artifact and a nil Scene.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{ID: uuid.New()}
	logger := opts.Logger.With("run", result.ID.String()[:8])
	opts.Logger = logger

	var (
		contentHash string
		render      func(context.Context) (map[string][]byte, error)
	)
	if opts.HasMarkup() {
		contentHash = cache.Hash([]byte(opts.Markup))
		render = func(ctx context.Context) (map[string][]byte, error) {
			return RenderMarkup(ctx, opts.Markup, opts)
		}
		logger.Debug("using supplied markup", "bytes", len(opts.Markup))
	} else {
		sceneStart := time.Now()
		scene, err := BuildScene(ctx, opts)
		if err != nil {
			return nil, err
		}
		result.Scene = &scene
		result.Stats.SceneTime = time.Since(sceneStart)
		result.Stats.Points = len(scene.Lattice)
		result.Stats.Paths = len(scene.Synthesis.Paths)
		result.Stats.Layers = len(scene.Layers)

		contentHash, err = ParamsHash(opts.Params)
		if err != nil {
			return nil, err
		}
		render = func(ctx context.Context) (map[string][]byte, error) {
			return Render(ctx, scene, opts)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, hit, err := r.renderCached(ctx, contentHash, opts, render)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit

	logger.Info("rendered kolam",
		"formats", opts.Formats,
		"points", result.Stats.Points,
		"paths", result.Stats.Paths,
		"layers", result.Stats.Layers,
		"cached", hit,
		"duration", result.Stats.SceneTime+result.Stats.RenderTime)

	return result, nil
}

// renderCached returns every requested artifact from the cache, or renders
// them all and stores each one. Partial hits are re-rendered together since
// rendering is cheap next to a round trip per format.
func (r *Runner) renderCached(ctx context.Context, hash string, opts Options, render func(context.Context) (map[string][]byte, error)) (map[string][]byte, bool, error) {
	hooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		hooks.OnCacheMiss(ctx, "artifact")
	}

	artifacts, err := render(ctx)
	if err != nil {
		return nil, false, err
	}

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, false, nil
}

// ParamsHash returns the content hash of p used in artifact cache keys.
func ParamsHash(p kolam.Params) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize params")
	}
	return cache.Hash(data), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
