package sink

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/render"
)

func testScene(mutate func(*kolam.Params)) kolam.Scene {
	p := kolam.DefaultParams()
	if mutate != nil {
		mutate(&p)
	}
	return kolam.NewScene(p, 400, 400, nil)
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testScene(nil), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 400 {
		t.Fatalf("size = %dx%d, want 400x400", b.Dx(), b.Dy())
	}

	if !isWhite(img.At(2, 2)) {
		t.Errorf("corner pixel = %v, want white background", img.At(2, 2))
	}
	// Lattice point at (120, 120) is drawn as a dot.
	if isWhite(img.At(120, 120)) {
		t.Error("lattice dot at (120,120) not drawn")
	}
	// 4-fold rays run from the centre along +x.
	if isWhite(img.At(230, 200)) {
		t.Error("ray pixel at (230,200) not drawn")
	}
}

func TestRenderPNG_ScaleAndMaxSize(t *testing.T) {
	data, err := RenderPNG(testScene(nil), WithScale(2))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 800 || cfg.Height != 800 {
		t.Errorf("scaled size = %dx%d, want 800x800", cfg.Width, cfg.Height)
	}

	data, err = RenderPNG(testScene(nil), WithScale(2), WithMaxSize(100))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	cfg, err = png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 100 || cfg.Height != 100 {
		t.Errorf("thumbnail size = %dx%d, want 100x100", cfg.Width, cfg.Height)
	}
}

func TestThumbnail_NoUpscale(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 50, 20))
	if got := Thumbnail(img, 100); got != image.Image(img) {
		t.Error("Thumbnail should return small images unchanged")
	}
	got := Thumbnail(image.NewNRGBA(image.Rect(0, 0, 400, 200)), 100)
	if b := got.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("Thumbnail size = %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestPNGCanvas_LayerOpacity(t *testing.T) {
	c := NewPNGCanvas(20, 20, 1)
	c.Clear(color.White)
	c.SetStroke(render.Stroke{Color: color.Black, Width: 4})
	c.BeginLayer(4, 0.2)
	c.StrokePath(kolam.Polyline(kolam.Point{X: 0, Y: 10}, kolam.Point{X: 20, Y: 10}))
	c.EndLayer()

	r, _, _, _ := c.Image().At(10, 10).RGBA()
	// 20% black over white leaves the pixel light grey, not black.
	if r>>8 < 180 || r>>8 > 225 {
		t.Errorf("red channel = %d, want about 204", r>>8)
	}
}

func TestPNGCanvas_OverlapInLayerDoesNotCompound(t *testing.T) {
	c := NewPNGCanvas(20, 20, 1)
	c.Clear(color.White)
	c.SetStroke(render.Stroke{Color: color.Black, Width: 4})
	c.BeginLayer(1, 0.5)
	c.StrokePath(kolam.Polyline(kolam.Point{X: 0, Y: 10}, kolam.Point{X: 20, Y: 10}))
	c.StrokePath(kolam.Polyline(kolam.Point{X: 10, Y: 0}, kolam.Point{X: 10, Y: 20}))
	c.EndLayer()

	cross, _, _, _ := c.Image().At(10, 10).RGBA()
	arm, _, _, _ := c.Image().At(3, 10).RGBA()
	if d := int(cross>>8) - int(arm>>8); d < -3 || d > 3 {
		t.Errorf("crossing red = %d, arm red = %d; overlap should not darken", cross>>8, arm>>8)
	}
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(testScene(func(p *kolam.Params) { p.Iterations = 3 })))

	for _, want := range []string{
		`<svg width="400" height="400"`,
		`<title>Kolam</title>`,
		`fill:#ffffff`,
		`id="layer-0" opacity="1"`,
		`id="layer-1" opacity="0.8"`,
		`id="layer-2" opacity="0.6"`,
		`stroke:#164e63`,
		`stroke-width:2`,
		`M200 200 L253.33 200 L200 253.33`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if got := strings.Count(out, "<g "); got != 3 {
		t.Errorf("layer groups = %d, want 3", got)
	}
	if strings.Contains(out, "stroke-dasharray") {
		t.Error("continuous stroke should not be dashed")
	}
}

func TestRenderSVG_StrokeTypes(t *testing.T) {
	tests := []struct {
		st   kolam.StrokeType
		want string
	}{
		{kolam.StrokeDashed, "stroke-dasharray:5,5"},
		{kolam.StrokeDotted, "stroke-dasharray:2,3"},
		{kolam.StrokeThick, "stroke-width:3"},
	}
	for _, tt := range tests {
		t.Run(string(tt.st), func(t *testing.T) {
			out := string(RenderSVG(testScene(func(p *kolam.Params) { p.StrokeType = tt.st })))
			if !strings.Contains(out, tt.want) {
				t.Errorf("SVG missing %q", tt.want)
			}
		})
	}
}

func TestRenderSVG_RadialRings(t *testing.T) {
	out := string(RenderSVG(testScene(func(p *kolam.Params) { p.Symmetry = kolam.SymmetryRadial })))
	// Rings at 20 and 40 around (200, 200).
	for _, want := range []string{"M180 200 A20 20 0 1 0 220 200", "M160 200 A40 40 0 1 0 240 200"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing ring %q", want)
		}
	}
}

func TestPathData(t *testing.T) {
	tests := []struct {
		name string
		p    kolam.Path
		want string
	}{
		{"open", kolam.Polyline(kolam.Point{X: 0, Y: 0}, kolam.Point{X: 1.5, Y: 2}), "M0 0 L1.5 2"},
		{"closed", kolam.Polygon(kolam.Point{X: 0, Y: 0}, kolam.Point{X: 1, Y: 0}, kolam.Point{X: 1, Y: 1}), "M0 0 L1 0 L1 1 Z"},
		{"single point", kolam.Polyline(kolam.Point{X: 3, Y: 3}), ""},
		{"rounded", kolam.Polyline(kolam.Point{X: 1.23456, Y: -0.0001}, kolam.Point{X: 2, Y: 2}), "M1.23 0 L2 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pathData(tt.p); got != tt.want {
				t.Errorf("pathData() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	scene := testScene(func(p *kolam.Params) {
		p.Symmetry = kolam.SymmetryRadial
		p.Iterations = 2
	})
	data, err := RenderJSON(scene)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 400 || out.Height != 400 {
		t.Errorf("size = %vx%v, want 400x400", out.Width, out.Height)
	}
	if out.DotCount != 81 || len(out.Lattice) != 81 {
		t.Errorf("dots = %d/%d, want 81", out.DotCount, len(out.Lattice))
	}
	if out.Params.Symmetry != kolam.SymmetryRadial {
		t.Errorf("params symmetry = %q", out.Params.Symmetry)
	}
	if len(out.Layers) != 2 {
		t.Fatalf("layers = %d, want 2", len(out.Layers))
	}
	if out.Layers[1].Opacity != 0.8 {
		t.Errorf("layer 1 opacity = %v, want 0.8", out.Layers[1].Opacity)
	}
	circles := 0
	for _, p := range out.Layers[0].Paths {
		if p.Kind == "circle" {
			circles++
			if p.Center == nil {
				t.Error("circle without center")
			}
		}
	}
	if circles != 2 {
		t.Errorf("circles = %d, want 2", circles)
	}
}

func TestRenderJSON_WithoutLattice(t *testing.T) {
	data, err := RenderJSON(testScene(nil), WithoutLattice())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"lattice"`) {
		t.Error("lattice present despite WithoutLattice")
	}
	if !strings.Contains(string(data), `"dotCount": 81`) {
		t.Error("dotCount missing")
	}
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 250 && g>>8 > 250 && b>>8 > 250
}
