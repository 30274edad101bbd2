package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/observability"
)

// =============================================================================
// Scene Generation
// =============================================================================

// BuildScene computes the lattice, stroke pattern and layers for opts.
//
// A symmetry class without a dedicated rule is drawn with the fallback
// shape. That is not an error: it is logged at warn level, reported to
// [observability.PipelineHooks.OnFallback] and flagged on the scene.
func BuildScene(ctx context.Context, opts Options) (kolam.Scene, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return kolam.Scene{}, err
	}
	hooks := observability.Pipeline()
	hooks.OnSceneStart(ctx, string(opts.Params.Symmetry), opts.Params.Iterations)
	start := time.Now()

	scene := kolam.NewScene(opts.Params, float64(opts.Width), float64(opts.Height), opts.LayerTransform())

	if scene.Synthesis.Fallback {
		opts.Logger.Warn("no dedicated pattern for symmetry, drawing fallback shape",
			"symmetry", opts.Params.Symmetry)
		hooks.OnFallback(ctx, string(opts.Params.Symmetry))
	}

	stats := sceneStats(scene)
	duration := time.Since(start)
	hooks.OnSceneComplete(ctx, stats, duration)
	opts.Logger.Debug("built scene",
		"points", stats.Points,
		"paths", stats.Paths,
		"layers", stats.Layers,
		"duration", duration)

	return scene, nil
}

func sceneStats(s kolam.Scene) observability.SceneStats {
	return observability.SceneStats{
		Points: len(s.Lattice),
		Paths:  len(s.Synthesis.Paths),
		Layers: len(s.Layers),
	}
}
