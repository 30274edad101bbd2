package pipeline

import (
	"bytes"
	"context"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/render"
	"github.com/matzehuels/kolam/pkg/render/sink"
)

// Render generates output artifacts for scene in every format of opts.
// Formats are rendered concurrently; the scene is only read.
func Render(ctx context.Context, scene kolam.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return renderEach(ctx, opts.Formats, func(format string) ([]byte, error) {
		return RenderFormat(scene, format, opts)
	})
}

// RenderFormat renders scene in a single format.
func RenderFormat(scene kolam.Scene, format string, opts Options) ([]byte, error) {
	svgOpts := []sink.SVGOption{}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(scene, svgOpts...), nil
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
		if opts.MaxSize > 0 {
			pngOpts = append(pngOpts, sink.WithMaxSize(opts.MaxSize))
		}
		return sink.RenderPNG(scene, pngOpts...)
	case FormatPDF:
		return sink.RenderPDF(scene, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(scene)
	default:
		return nil, ValidateFormat(format)
	}
}

// RenderMarkup produces artifacts from finished SVG markup without computing
// any geometry. The SVG artifact is the markup unchanged; PNG and PDF are
// converted from it with rsvg-convert.
func RenderMarkup(ctx context.Context, markup string, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	svg := []byte(markup)
	return renderEach(ctx, opts.Formats, func(format string) ([]byte, error) {
		switch format {
		case FormatSVG:
			return svg, nil
		case FormatPNG:
			data, err := render.ToPNG(svg, opts.Scale)
			if err != nil || opts.MaxSize <= 0 {
				return data, err
			}
			return shrinkPNG(data, opts.MaxSize)
		case FormatPDF:
			return render.ToPDF(svg)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "%s export is not available for supplied markup", format)
		}
	})
}

func renderEach(ctx context.Context, formats []string, fn func(format string) ([]byte, error)) (map[string][]byte, error) {
	results := make([][]byte, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.New(errors.ErrCodeInternal, "render %s: %v", format, r)
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fn(format)
			if err != nil {
				code := errors.GetCode(err)
				if code == "" {
					code = errors.ErrCodeInternal
				}
				return errors.Wrap(code, err, "render %s", format)
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))
	for i, format := range formats {
		artifacts[format] = results[i]
	}
	return artifacts, nil
}

func shrinkPNG(data []byte, maxSize int) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode converted png")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, sink.Thumbnail(img, maxSize), imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
