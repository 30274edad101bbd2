// Package config loads kolam settings from a TOML file and the environment.
//
// The file lives at $XDG_CONFIG_HOME/kolam/config.toml unless another path
// is given. Every key is optional:
//
//	[remote]
//	url = "http://localhost:8000"
//	timeout = "60s"
//
//	[canvas]
//	width = 400
//	height = 400
//	transform = "fade"
//
//	[params]
//	symmetry_type = "radial"
//	iterations = 3
//
//	[cache]
//	backend = "redis"   # file (default), redis or none
//
//	[redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
// KOLAM_REMOTE_URL, KOLAM_REDIS_ADDR and KOLAM_CACHE_BACKEND override the
// file.
package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kolam/pkg/cache"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/integrations"
	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/pipeline"
)

const appName = "kolam"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Environment overrides.
const (
	EnvRemoteURL    = "KOLAM_REMOTE_URL"
	EnvRedisAddr    = "KOLAM_REDIS_ADDR"
	EnvCacheBackend = "KOLAM_CACHE_BACKEND"
)

// Config is the complete set of user settings.
type Config struct {
	Remote Remote       `toml:"remote"`
	Canvas Canvas       `toml:"canvas"`
	Params kolam.Params `toml:"params"`
	Cache  Cache        `toml:"cache"`
	Redis  Redis        `toml:"redis"`
	Server Server       `toml:"server"`
}

// Remote configures the design service client.
type Remote struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
}

// Canvas sets the default render surface.
type Canvas struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Scale     float64 `toml:"scale"`
	Transform string  `toml:"transform"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Prefix  string `toml:"prefix"`
}

// Redis configures the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Server configures `kolam serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("90s", "2m") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Remote: Remote{
			URL:     integrations.DefaultBaseURL,
			Timeout: Duration{60 * time.Second},
		},
		Canvas: Canvas{
			Width:     pipeline.DefaultWidth,
			Height:    pipeline.DefaultHeight,
			Scale:     pipeline.DefaultScale,
			Transform: pipeline.DefaultTransform,
		},
		Params: kolam.DefaultParams(),
		Cache:  Cache{Backend: BackendFile},
		Redis:  Redis{Addr: "localhost:6379"},
		Server: Server{Addr: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/kolam/config.toml, falling back to
// ~/.config/kolam/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "locate home dir")
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns $XDG_CACHE_HOME/kolam, falling back to ~/.cache/kolam.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "locate home dir")
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads settings from path on top of [Default] and applies the
// environment overrides. With an empty path the default location is used
// and a missing file is not an error; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(data); err != nil {
			return Config{}, errors.Wrap(errors.GetCode(err), err, "%s", path)
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
	default:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML settings on top of [Default] without consulting the
// environment.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidFormat, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv applies environment overrides read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvRemoteURL); v != "" {
		c.Remote.URL = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Redis.Addr = v
	}
	if v := getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = strings.ToLower(v)
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	c.Params = c.Params.WithDefaults()
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if _, err := integrations.NormalizeBaseURL(c.Remote.URL); err != nil {
		return err
	}
	if c.Remote.Timeout.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "remote timeout must be positive")
	}
	if err := errors.ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return err
	}
	if _, err := kolam.ParseTransform(c.Canvas.Transform); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "redis cache backend needs an address")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	return nil
}

// PipelineOptions returns render options carrying the configured canvas
// and default parameters.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Params:    c.Params,
		Width:     c.Canvas.Width,
		Height:    c.Canvas.Height,
		Scale:     c.Canvas.Scale,
		Transform: c.Canvas.Transform,
	}
}

// OpenCache opens the configured cache backend. noCache forces a
// [cache.NullCache]. A file cache without a configured directory uses
// [CacheDir].
func (c Config) OpenCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", c.Redis.Addr)
		}
		return rc, nil
	}

	dir := c.Cache.Dir
	if dir == "" {
		d, err := CacheDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open cache %s", dir)
	}
	return fc, nil
}

// Keyer returns the cache keyer, scoped by [Cache.Prefix] when set.
func (c Config) Keyer() cache.Keyer {
	k := cache.NewDefaultKeyer()
	if c.Cache.Prefix != "" {
		k = cache.NewScopedKeyer(k, c.Cache.Prefix)
	}
	return k
}
