package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/kolam/pkg/cache"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/kolam"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Canvas.Width != 400 || cfg.Canvas.Height != 400 {
		t.Errorf("canvas = %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if diff := cmp.Diff(kolam.DefaultParams(), cfg.Params); diff != "" {
		t.Errorf("params (-want +got):\n%s", diff)
	}
	if cfg.Remote.Timeout.Duration != time.Minute {
		t.Errorf("timeout = %v", cfg.Remote.Timeout)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
[remote]
url = "https://kolam.example.com/api/"
timeout = "90s"

[canvas]
width = 800

[params]
symmetry_type = "radial"
iterations = 3

[cache]
backend = "none"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Remote.URL != "https://kolam.example.com/api/" || cfg.Remote.Timeout.Duration != 90*time.Second {
		t.Errorf("remote = %+v", cfg.Remote)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 400 {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Params.Symmetry != kolam.SymmetryRadial || cfg.Params.Rows != kolam.DefaultRows {
		t.Errorf("params = %+v", cfg.Params)
	}

	opts := cfg.PipelineOptions()
	if opts.Width != 800 || opts.Params.Iterations != 3 {
		t.Errorf("pipeline options = %+v", opts)
	}

	c, err := cfg.OpenCache(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("backend none opened %T", c)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"unknown key", "[remote]\nendpoint = \"x\"\n", errors.ErrCodeInvalidFormat},
		{"malformed", "[remote\n", errors.ErrCodeInvalidFormat},
		{"bad duration", "[remote]\ntimeout = \"soon\"\n", errors.ErrCodeInvalidFormat},
		{"bad url", "[remote]\nurl = \"ftp://x\"\n", errors.ErrCodeInvalidInput},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidInput},
		{"bad symmetry", "[params]\nsymmetry_type = \"3-fold\"\n", errors.ErrCodeInvalidSymmetry},
		{"zero canvas", "[canvas]\nwidth = -1\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvRemoteURL, "")
	t.Setenv(EnvRedisAddr, "")
	t.Setenv(EnvCacheBackend, "")

	// Missing default file falls back to defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}

	path := filepath.Join(dir, appName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("explicit missing file = %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvRemoteURL, "http://generator:8000")
	t.Setenv(EnvRedisAddr, "cache:6379")
	t.Setenv(EnvCacheBackend, "NONE")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Remote.URL != "http://generator:8000" || cfg.Redis.Addr != "cache:6379" || cfg.Cache.Backend != BackendNone {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	p, _ := DefaultPath()
	if p != filepath.Join("/tmp/xdg-config", "kolam", "config.toml") {
		t.Errorf("DefaultPath() = %q", p)
	}
	d, _ := CacheDir()
	if d != filepath.Join("/tmp/xdg-cache", "kolam") {
		t.Errorf("CacheDir() = %q", d)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	d, err := CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(d, filepath.Join(".cache", "kolam")) {
		t.Errorf("CacheDir() without XDG = %q", d)
	}
}

func TestOpenCache_File(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = t.TempDir()
	c, err := cfg.OpenCache(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := c.(*cache.FileCache); !ok || fc.Dir() != cfg.Cache.Dir {
		t.Errorf("OpenCache() = %T", c)
	}

	c, _ = cfg.OpenCache(context.Background(), true)
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("noCache opened %T", c)
	}
}

func TestKeyer(t *testing.T) {
	cfg := Default()
	plain := cfg.Keyer().GenerationKey("abc")
	cfg.Cache.Prefix = "staging"
	scoped := cfg.Keyer().GenerationKey("abc")
	if plain == scoped || !strings.Contains(scoped, "staging") {
		t.Errorf("keys = %q, %q", plain, scoped)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("2m30s")); err != nil {
		t.Fatal(err)
	}
	out, _ := d.MarshalText()
	if string(out) != "2m30s" {
		t.Errorf("MarshalText() = %q", out)
	}
}
