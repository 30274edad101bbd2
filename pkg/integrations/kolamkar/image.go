package kolamkar

import (
	"bytes"
	"encoding/base64"
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/kolam/pkg/errors"
)

// DefaultMaxImageSize bounds the longer edge of an uploaded photo.
const DefaultMaxImageSize = 1024

var mimeTypes = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
	imaging.TIFF: "image/tiff",
	imaging.BMP:  "image/bmp",
}

// PrepareImage turns raw image bytes into the data URL the service expects.
//
// The image is decoded with EXIF orientation applied, shrunk to fit within
// maxSize x maxSize when larger (maxSize <= 0 disables shrinking) and
// re-encoded in its original format. Formats imaging cannot write are sent
// as PNG.
func PrepareImage(data []byte, maxSize int) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "unrecognized image format")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s image", format)
	}

	if b := img.Bounds(); maxSize > 0 && (b.Dx() > maxSize || b.Dy() > maxSize) {
		img = imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
	}

	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		f = imaging.PNG
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode image")
	}
	return DataURL(mimeTypes[f], buf.Bytes()), nil
}

// DataURL formats data as a base64 data URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
