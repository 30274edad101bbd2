package kolamkar

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/matzehuels/kolam/pkg/buildinfo"
	"github.com/matzehuels/kolam/pkg/cache"
	"github.com/matzehuels/kolam/pkg/design"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/integrations"
	"github.com/matzehuels/kolam/pkg/kolam"
)

// Service endpoints, relative to the base URL.
const (
	PathGenerate          = "/generate-kolam-svg"
	PathGenerateFromImage = "/generate-from-image"
	PathAnalyze           = "/analyze-kolam-image"
)

// Client talks to the kolam design service.
//
// Successful responses are cached under keys from the client's [cache.Keyer];
// failures never are. All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
	keyer   cache.Keyer
}

// NewClient creates a client for the service at baseURL (empty selects
// [integrations.DefaultBaseURL]). A nil backend disables caching.
func NewClient(backend cache.Cache, baseURL string) (*Client, error) {
	base, err := integrations.NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		Client:  integrations.NewClient(backend, map[string]string{"User-Agent": buildinfo.UserAgent()}),
		baseURL: base,
		keyer:   cache.NewDefaultKeyer(),
	}, nil
}

// WithKeyer replaces the cache keyer, e.g. with a [cache.ScopedKeyer] when
// several deployments share one Redis.
func (c *Client) WithKeyer(k cache.Keyer) *Client {
	if k != nil {
		c.keyer = k
	}
	return c
}

// BaseURL returns the normalized service base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Generate asks the service to draw a design of family d for parameters p
// and returns the SVG markup exactly as received. A nil d selects the
// default L-system.
//
// The request is sent once. A non-2xx answer returns an
// [*errors.RemoteError] whose message is the service's response text.
func (c *Client) Generate(ctx context.Context, p kolam.Params, d design.Config, refresh bool) (string, error) {
	body, err := design.Request(p, d)
	if err != nil {
		return "", err
	}
	key := c.keyer.GenerationKey(cache.Hash(body))
	data, err := c.Cached(ctx, "generate", key, cache.TTLGeneration, refresh, func() ([]byte, error) {
		return c.postMarkup(ctx, PathGenerate, body)
	})
	return string(data), err
}

// GenerateFromImage asks the service for a design derived from a photo.
// dataURL is typically produced by [PrepareImage].
func (c *Client) GenerateFromImage(ctx context.Context, dataURL string, refresh bool) (string, error) {
	body, err := imageRequest(dataURL)
	if err != nil {
		return "", err
	}
	key := c.keyer.GenerationKey(cache.Hash(body))
	data, err := c.Cached(ctx, "generate", key, cache.TTLGeneration, refresh, func() ([]byte, error) {
		return c.postMarkup(ctx, PathGenerateFromImage, body)
	})
	return string(data), err
}

// Analyze asks the service to describe the kolam in a photo.
func (c *Client) Analyze(ctx context.Context, dataURL string, refresh bool) (*Report, error) {
	body, err := imageRequest(dataURL)
	if err != nil {
		return nil, err
	}
	key := c.keyer.AnalysisKey(cache.Hash(body))
	data, err := c.Cached(ctx, "analyze", key, cache.TTLAnalysis, refresh, func() ([]byte, error) {
		data, err := c.PostJSON(ctx, c.baseURL+PathAnalyze, body)
		if err != nil {
			return nil, err
		}
		if !json.Valid(data) {
			return nil, errors.New(errors.ErrCodeRemote, "analysis response is not JSON")
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRemote, err, "decode analysis report")
	}
	return &r, nil
}

func (c *Client) postMarkup(ctx context.Context, path string, body []byte) ([]byte, error) {
	data, err := c.PostJSON(ctx, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New(errors.ErrCodeRemote, "service returned an empty design")
	}
	return data, nil
}

func imageRequest(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image must be a data:image/... URL")
	}
	return json.Marshal(struct {
		Image string `json:"image"`
	}{dataURL})
}
