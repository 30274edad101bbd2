package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/kolam/pkg/errors"
)

// isolate points the config, cache and studio directories at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("KOLAM_REMOTE_URL", "")
	t.Setenv("KOLAM_REDIS_ADDR", "")
	t.Setenv("KOLAM_CACHE_BACKEND", "")
	return dir
}

func TestExecuteRender(t *testing.T) {
	dir := isolate(t)
	base := filepath.Join(dir, "out", "pattern")

	var stderr bytes.Buffer
	args := []string{"render", "--rows", "3", "--cols", "3", "--symmetry", "radial", "-f", "svg,json", "-o", base}
	if err := Execute(context.Background(), args, &stderr); err != nil {
		t.Fatalf("Execute: %v\n%s", err, stderr.String())
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("svg output does not look like SVG: %.80s", svg)
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json output missing: %v", err)
	}
	if !strings.Contains(stderr.String(), "Rendered kolam") {
		t.Errorf("stderr missing progress line:\n%s", stderr.String())
	}
}

func TestExecuteRenderExport(t *testing.T) {
	dir := isolate(t)
	exported := filepath.Join(dir, "params.toml")

	args := []string{"render", "--no-cache", "--grid", "circular", "--export", exported, "-o", filepath.Join(dir, "k")}
	if err := Execute(context.Background(), args, &bytes.Buffer{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	data, err := os.ReadFile(exported)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), `grid_type = "circular"`) {
		t.Errorf("export missing grid type:\n%s", data)
	}

	// The exported file renders the same parameters.
	args = []string{"render", "--no-cache", exported}
	if err := Execute(context.Background(), args, &bytes.Buffer{}); err != nil {
		t.Fatalf("Execute from export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "params.svg")); err != nil {
		t.Errorf("render from params file: %v", err)
	}
}

func TestExecuteErrors(t *testing.T) {
	dir := isolate(t)
	badConfig := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(badConfig, []byte("colour = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want errors.Code
	}{
		{"invalid symmetry", []string{"render", "--symmetry", "3-fold"}, errors.ErrCodeInvalidSymmetry},
		{"invalid format", []string{"render", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"missing params file", []string{"render", filepath.Join(dir, "none.json")}, errors.ErrCodeNotFound},
		{"missing config", []string{"render", "--config", filepath.Join(dir, "none.toml")}, errors.ErrCodeNotFound},
		{"unknown config key", []string{"render", "--config", badConfig}, errors.ErrCodeInvalidFormat},
		{"missing photo", []string{"analyze", filepath.Join(dir, "none.jpg")}, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Execute(context.Background(), tt.args, &bytes.Buffer{})
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("code = %q, want %q (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	isolate(t)
	if err := Execute(context.Background(), []string{"paint"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestVerboseEnablesDebug(t *testing.T) {
	dir := isolate(t)
	var stderr bytes.Buffer
	args := []string{"-v", "render", "-o", filepath.Join(dir, "k")}
	if err := Execute(context.Background(), args, &stderr); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	out := stderr.String()
	if !strings.Contains(out, "DEBU") {
		t.Errorf("expected debug output with -v:\n%s", out)
	}
	if !strings.Contains(out, "cache miss") {
		t.Errorf("expected cache trace with -v:\n%s", out)
	}
}
