package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kolam/pkg/errors"
)

// Write encodes doc in the given format and writes it to w.
// The output can be read back with [Read].
func Write(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported document format: %q", format)
	}
	return nil
}

// WriteJSON encodes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error { return Write(w, doc, FormatJSON) }

// WriteTOML encodes doc as TOML.
func WriteTOML(w io.Writer, doc Document) error { return Write(w, doc, FormatTOML) }

// Export writes doc to path in the format named by its extension.
// An existing file is replaced.
func Export(path string, doc Document) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := Write(f, doc, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "close %s", path)
	}
	return nil
}
