package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/render"
)

// SVGCanvas is a vector [render.Canvas] that writes SVG elements as they are
// drawn. Each pattern layer becomes a <g> carrying its opacity and the pen
// style; dots and paths keep full float precision.
type SVGCanvas struct {
	buf           bytes.Buffer
	doc           *svg.SVG
	width, height int
	style         string
}

// NewSVGCanvas starts an SVG document of width x height.
func NewSVGCanvas(width, height int, title string) *SVGCanvas {
	c := &SVGCanvas{width: width, height: height}
	c.doc = svg.New(&c.buf)
	c.doc.Start(width, height)
	if title != "" {
		c.doc.Title(title)
	}
	return c
}

func (c *SVGCanvas) Clear(bg color.Color) {
	c.doc.Rect(0, 0, c.width, c.height, "fill:"+render.Hex(bg))
}

func (c *SVGCanvas) FillDisc(p kolam.Point, r float64, fill color.Color) {
	c.doc.Path(circleData(p, r), "fill:"+render.Hex(fill))
}

func (c *SVGCanvas) SetStroke(s render.Stroke) {
	parts := []string{
		"fill:none",
		"stroke:" + render.Hex(s.Color),
		"stroke-width:" + num(s.Width),
		"stroke-linecap:round",
		"stroke-linejoin:round",
	}
	if len(s.Dash) > 0 {
		dash := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			dash[i] = num(d)
		}
		parts = append(parts, "stroke-dasharray:"+strings.Join(dash, ","))
	}
	c.style = strings.Join(parts, ";")
}

func (c *SVGCanvas) BeginLayer(index int, opacity float64) {
	c.doc.Group(
		fmt.Sprintf(`id="layer-%d"`, index),
		fmt.Sprintf(`opacity="%s"`, num(opacity)),
		c.style,
	)
}

func (c *SVGCanvas) StrokePath(p kolam.Path) {
	if d := pathData(p); d != "" {
		c.doc.Path(d)
	}
}

func (c *SVGCanvas) EndLayer() { c.doc.Gend() }

// Bytes closes the document and returns it.
func (c *SVGCanvas) Bytes() []byte {
	c.doc.End()
	return c.buf.Bytes()
}

// pathData returns the SVG path "d" attribute for p. Circles are two
// half-circle arcs so they stay a single path element.
func pathData(p kolam.Path) string {
	if p.Kind == kolam.PathCircle {
		return circleData(p.Center, p.Radius)
	}
	if len(p.Points) < 2 {
		return ""
	}
	var b strings.Builder
	for i, pt := range p.Points {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(num(pt.X) + " " + num(pt.Y))
	}
	if p.Closed {
		b.WriteString(" Z")
	}
	return b.String()
}

func circleData(c kolam.Point, r float64) string {
	r = math.Abs(r)
	x0, x1, y := num(c.X-r), num(c.X+r), num(c.Y)
	rr := num(r)
	return fmt.Sprintf("M%s %s A%s %s 0 1 0 %s %s A%s %s 0 1 0 %s %s Z",
		x0, y, rr, rr, x1, y, rr, rr, x0, y)
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	if s == "-0" {
		return "0"
	}
	return s
}

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme render.Theme
	title string
}

// WithSVGTheme overrides the default colours.
func WithSVGTheme(t render.Theme) SVGOption {
	return func(r *svgRenderer) { r.theme = t }
}

// WithTitle sets the document <title>.
func WithTitle(s string) SVGOption {
	return func(r *svgRenderer) { r.title = s }
}

// RenderSVG composes scene into a standalone SVG document.
func RenderSVG(scene kolam.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{theme: render.DefaultTheme(), title: "Kolam"}
	for _, opt := range opts {
		opt(&r)
	}

	c := NewSVGCanvas(int(math.Ceil(scene.Width)), int(math.Ceil(scene.Height)), r.title)
	render.Compose(c, scene, r.theme)
	return c.Bytes()
}
