package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kolam/pkg/config"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/io"
	"github.com/matzehuels/kolam/pkg/kolam"
)

func TestOutputBase(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		formats []string
		want    string
	}{
		{"default", "", "", []string{"svg"}, "kolam"},
		{"from input", "", "designs/festival.toml", []string{"svg"}, "designs/festival"},
		{"explicit with extension", "out.png", "", []string{"png"}, "out"},
		{"explicit base", "out/design", "", []string{"svg", "png"}, "out/design"},
		{"unknown extension kept", "out.v2", "", []string{"svg"}, "out.v2"},
		{"stdout", "-", "x.toml", []string{"svg"}, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputBase(tt.output, tt.input, tt.formats); got != tt.want {
				t.Errorf("outputBase(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "kolam")
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	paths, err := writeArtifacts(context.Background(), artifacts, []string{"svg", "json"}, base)
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if diff := cmp.Diff([]string{base + ".svg", base + ".json"}, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("svg = %q", data)
	}
}

func TestWriteArtifactsStdoutNeedsOneFormat(t *testing.T) {
	_, err := writeArtifacts(context.Background(), map[string][]byte{}, []string{"svg", "png"}, "-")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func newRenderTestCommand(t *testing.T, args ...string) (*cobra.Command, *renderOpts) {
	t.Helper()
	var opts renderOpts
	cmd := &cobra.Command{Use: "render"}
	opts.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	cmd.SetContext(context.Background())
	return cmd, &opts
}

func TestBuildRenderOptionsLayering(t *testing.T) {
	cfg := config.Default()
	cfg.Canvas.Width = 300

	doc := &io.Document{
		Params:    kolam.DefaultParams(),
		Height:    500,
		Transform: "spiral",
	}
	doc.Params.Rows = 7

	cmd, opts := newRenderTestCommand(t, "--cols", "3", "--symmetry", "radial", "--width", "640", "-f", "svg,png")
	got, err := buildRenderOptions(cmd, cfg, doc, opts)
	if err != nil {
		t.Fatalf("buildRenderOptions: %v", err)
	}

	if got.Width != 640 || got.Height != 500 {
		t.Errorf("canvas = %dx%d, want 640x500", got.Width, got.Height)
	}
	if got.Transform != "spiral" {
		t.Errorf("transform = %q, want spiral", got.Transform)
	}
	if got.Params.Rows != 7 || got.Params.Columns != 3 {
		t.Errorf("lattice = %dx%d, want 7x3", got.Params.Rows, got.Params.Columns)
	}
	if got.Params.Symmetry != kolam.SymmetryRadial {
		t.Errorf("symmetry = %q, want radial", got.Params.Symmetry)
	}
	if diff := cmp.Diff([]string{"svg", "png"}, got.Formats); diff != "" {
		t.Errorf("formats mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRenderOptionsMarkup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.svg")
	if err := os.WriteFile(path, []byte(`<svg id="remote"/>`), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd, opts := newRenderTestCommand(t, "--markup", path)
	got, err := buildRenderOptions(cmd, config.Default(), nil, opts)
	if err != nil {
		t.Fatalf("buildRenderOptions: %v", err)
	}
	if got.Markup != `<svg id="remote"/>` {
		t.Errorf("markup = %q", got.Markup)
	}
}

func TestParamFlagsApply(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode errors.Code
		check    func(t *testing.T, p kolam.Params)
	}{
		{
			name: "unset flags keep base",
			args: nil,
			check: func(t *testing.T, p kolam.Params) {
				if diff := cmp.Diff(kolam.DefaultParams(), p); diff != "" {
					t.Errorf("params mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "all flags",
			args: []string{"--grid", "hexagonal", "--rows", "4", "--cols", "6", "--spacing", "25", "--stroke", "dashed", "--iterations", "2"},
			check: func(t *testing.T, p kolam.Params) {
				want := kolam.Params{
					GridType:   kolam.GridHexagonal,
					Rows:       4,
					Columns:    6,
					DotSpacing: 25,
					StrokeType: kolam.StrokeDashed,
					Symmetry:   kolam.DefaultParams().Symmetry,
					Iterations: 2,
				}
				if diff := cmp.Diff(want, p); diff != "" {
					t.Errorf("params mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{name: "bad grid", args: []string{"--grid", "octagon"}, wantCode: errors.ErrCodeInvalidGrid},
		{name: "bad symmetry", args: []string{"--symmetry", "5-fold"}, wantCode: errors.ErrCodeInvalidSymmetry},
		{name: "too many iterations", args: []string{"--iterations", "9"}, wantCode: errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f paramFlags
			cmd := &cobra.Command{Use: "x"}
			f.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags: %v", err)
			}
			p, err := f.apply(cmd, kolam.DefaultParams())
			if tt.wantCode != "" {
				if got := errors.GetCode(err); got != tt.wantCode {
					t.Fatalf("code = %q, want %q (err %v)", got, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			tt.check(t, p)
		})
	}
}

func TestDesignConfigFlagWins(t *testing.T) {
	f := paramFlags{design: "kambi"}
	doc, err := io.Parse([]byte("[params]\n[design]\ntype = \"suzhi\"\n"), io.FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg, err := f.designConfig(&doc)
	if err != nil {
		t.Fatalf("designConfig: %v", err)
	}
	if cfg.Family() != "kambi" {
		t.Errorf("family = %q, want kambi", cfg.Family())
	}

	cfg, err = (&paramFlags{}).designConfig(&doc)
	if err != nil {
		t.Fatalf("designConfig: %v", err)
	}
	if cfg.Family() != "suzhi" {
		t.Errorf("family = %q, want suzhi", cfg.Family())
	}
}
