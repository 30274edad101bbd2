// Package cache stores rendered artifacts and remote design service results.
//
// Two backends implement [Cache]: [FileCache] for the CLI (one JSON file per
// entry under the XDG cache directory) and [RedisCache] for deployments that
// share results between processes. [NullCache] disables caching.
//
// Keys come from a [Keyer] so callers never build key strings by hand:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash(paramsJSON), cache.ArtifactKeyOpts{Format: "svg"})
//	data, hit, err := c.Get(ctx, key)
//
// Only successful results are ever stored. A failed remote call leaves the
// cache untouched.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	// TTLArtifact applies to locally rendered artifacts. Rendering is
	// deterministic, so the limit only bounds disk usage.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLGeneration applies to markup returned by the remote generator.
	TTLGeneration = 24 * time.Hour

	// TTLAnalysis applies to remote image analysis reports.
	TTLAnalysis = 24 * time.Hour
)

// Keyer derives cache keys. Implementations must be deterministic.
type Keyer interface {
	// ArtifactKey identifies one rendered output of a parameter set.
	ArtifactKey(paramsHash string, opts ArtifactKeyOpts) string
	// GenerationKey identifies a remote generation request body.
	GenerationKey(requestHash string) string
	// AnalysisKey identifies a remote analysis of an image.
	AnalysisKey(imageHash string) string
}

// ArtifactKeyOpts are the render settings that change artifact bytes.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Scale     float64 `json:"scale,omitempty"`
	MaxSize   int     `json:"max_size,omitempty"`
	Transform string  `json:"transform,omitempty"`
	Title     string  `json:"title,omitempty"`
}

// DefaultKeyer builds keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ArtifactKey(paramsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", paramsHash, opts)
}

func (DefaultKeyer) GenerationKey(requestHash string) string {
	return "generate:" + requestHash
}

func (DefaultKeyer) AnalysisKey(imageHash string) string {
	return "analyze:" + imageHash
}
