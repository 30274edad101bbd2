package sink

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/render"
)

// PNGCanvas is a raster [render.Canvas] backed by a gg context.
type PNGCanvas struct {
	dc      *gg.Context
	stroke  render.Stroke
	alpha   float64
	inLayer bool
}

// NewPNGCanvas returns a canvas of width x height logical pixels drawn at
// scale device pixels per logical pixel.
func NewPNGCanvas(width, height int, scale float64) *PNGCanvas {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(scaled(width, scale), scaled(height, scale))
	dc.Scale(scale, scale)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return &PNGCanvas{dc: dc, alpha: 1}
}

func (c *PNGCanvas) Clear(bg color.Color) {
	c.dc.SetColor(bg)
	c.dc.Clear()
}

func (c *PNGCanvas) FillDisc(p kolam.Point, r float64, fill color.Color) {
	c.dc.DrawCircle(p.X, p.Y, r)
	c.dc.SetColor(fill)
	c.dc.Fill()
}

func (c *PNGCanvas) SetStroke(s render.Stroke) {
	c.stroke = s
	c.dc.SetLineWidth(s.Width)
	c.dc.SetDash(s.Dash...)
}

// BeginLayer starts collecting strokes. The layer is stroked as one path in
// EndLayer so overlapping strokes do not compound its opacity.
func (c *PNGCanvas) BeginLayer(_ int, opacity float64) {
	c.alpha = opacity
	c.inLayer = true
	c.dc.ClearPath()
}

func (c *PNGCanvas) StrokePath(p kolam.Path) {
	switch p.Kind {
	case kolam.PathCircle:
		c.dc.NewSubPath()
		c.dc.DrawCircle(p.Center.X, p.Center.Y, p.Radius)
	case kolam.PathPolyline:
		if len(p.Points) < 2 {
			return
		}
		c.dc.NewSubPath()
		c.dc.MoveTo(p.Points[0].X, p.Points[0].Y)
		for _, pt := range p.Points[1:] {
			c.dc.LineTo(pt.X, pt.Y)
		}
		if p.Closed {
			c.dc.ClosePath()
		}
	}
	if !c.inLayer {
		c.strokePending()
	}
}

func (c *PNGCanvas) EndLayer() {
	c.strokePending()
	c.inLayer = false
	c.alpha = 1
}

func (c *PNGCanvas) strokePending() {
	c.dc.SetColor(withAlpha(c.stroke.Color, c.alpha))
	c.dc.Stroke()
}

// Image returns the drawn surface.
func (c *PNGCanvas) Image() image.Image { return c.dc.Image() }

func withAlpha(c color.Color, opacity float64) color.Color {
	if c == nil {
		c = color.Black
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * math.Max(0, math.Min(1, opacity))))
	return n
}

func scaled(n int, s float64) int {
	return max(1, int(math.Round(float64(n)*s)))
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale   float64
	maxSize int
	theme   render.Theme
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithMaxSize downsamples the final image so neither side exceeds px.
// Zero disables the limit.
func WithMaxSize(px int) PNGOption {
	return func(r *pngRenderer) { r.maxSize = px }
}

// WithPNGTheme overrides the default colours.
func WithPNGTheme(t render.Theme) PNGOption {
	return func(r *pngRenderer) { r.theme = t }
}

// RenderPNG composes scene onto a raster surface and encodes it as PNG.
func RenderPNG(scene kolam.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, theme: render.DefaultTheme()}
	for _, opt := range opts {
		opt(&r)
	}

	c := NewPNGCanvas(int(math.Ceil(scene.Width)), int(math.Ceil(scene.Height)), r.scale)
	render.Compose(c, scene, r.theme)

	return encodePNG(Thumbnail(c.Image(), r.maxSize))
}

// Thumbnail shrinks img to fit within maxSize x maxSize using Catmull-Rom
// resampling. Images already small enough, and maxSize <= 0, are returned
// unchanged.
func Thumbnail(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return img
	}
	ratio := math.Min(float64(maxSize)/float64(b.Dx()), float64(maxSize)/float64(b.Dy()))
	dst := image.NewNRGBA(image.Rect(0, 0, scaled(b.Dx(), ratio), scaled(b.Dy(), ratio)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
