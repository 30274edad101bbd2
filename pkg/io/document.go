package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/kolam/pkg/design"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/pipeline"
)

// Format is a parameter file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Document is the content of a parameter file.
type Document struct {
	Params    kolam.Params `json:"params" toml:"params"`
	Width     int          `json:"width,omitempty" toml:"width,omitempty"`
	Height    int          `json:"height,omitempty" toml:"height,omitempty"`
	Transform string       `json:"transform,omitempty" toml:"transform,omitempty"`
	Design    *design.Spec `json:"design,omitempty" toml:"design,omitempty"`
}

// NewDocument captures p, and d when non-nil, in a document.
func NewDocument(p kolam.Params, d design.Config) Document {
	doc := Document{Params: p}
	if d != nil {
		s := design.SpecOf(d)
		doc.Design = &s
	}
	return doc
}

// Validate applies parameter defaults and checks every section.
func (d *Document) Validate() error {
	d.Params = d.Params.WithDefaults()
	if err := d.Params.Validate(); err != nil {
		return err
	}
	if d.Width != 0 || d.Height != 0 {
		w, h := d.Width, d.Height
		if w == 0 {
			w = pipeline.DefaultWidth
		}
		if h == 0 {
			h = pipeline.DefaultHeight
		}
		if err := errors.ValidateCanvas(w, h); err != nil {
			return err
		}
	}
	if _, err := kolam.ParseTransform(d.Transform); err != nil {
		return err
	}
	if d.Design != nil {
		if _, err := d.Design.Config(); err != nil {
			return err
		}
	}
	return nil
}

// DesignConfig resolves the design section. A document without one yields
// nil, which selects the generator's default family.
func (d Document) DesignConfig() (design.Config, error) {
	if d.Design == nil {
		return nil, nil
	}
	return d.Design.Config()
}

// PipelineOptions returns render options for the document. Formats and
// runtime fields are left for the caller.
func (d Document) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Params:    d.Params,
		Width:     d.Width,
		Height:    d.Height,
		Transform: d.Transform,
	}
}

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported parameter file %q (use .json or .toml)", filepath.Base(path))
}
