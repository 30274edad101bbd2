package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/kolam"
)

// Read decodes a parameter document in the given format from r and
// validates it. Parameter fields missing from the input keep the values of
// [kolam.DefaultParams].
//
// Read rejects unknown keys, malformed input and invalid parameter values.
// Decoding failures carry INVALID_FORMAT; validation failures keep the code
// of the offending field (INVALID_GRID, INVALID_SYMMETRY, ...).
// Read does not close r.
func Read(r io.Reader, format Format) (Document, error) {
	doc := Document{Params: kolam.DefaultParams()}

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
		}
	default:
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format: %q", format)
	}

	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// ReadJSON decodes a JSON parameter document from r.
func ReadJSON(r io.Reader) (Document, error) { return Read(r, FormatJSON) }

// ReadTOML decodes a TOML parameter document from r.
func ReadTOML(r io.Reader) (Document, error) { return Read(r, FormatTOML) }

// Parse decodes a parameter document held in memory.
func Parse(data []byte, format Format) (Document, error) {
	return Read(bytes.NewReader(data), format)
}

// Import reads the parameter file at path. The format follows the file
// extension (.json or .toml).
func Import(path string) (Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Document{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeNotFound, err, "params file %s", path)
		}
		return Document{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	doc, err := Read(f, format)
	if err != nil {
		return Document{}, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return doc, nil
}
