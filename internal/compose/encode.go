package compose

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"
)

// Format selects the output container.
type Format string

const (
	FormatTIFF Format = "tiff" // lossless, deflate-compressed
	FormatPNG  Format = "png"  // lossless
	FormatJPEG Format = "jpg"  // lossy, flattened onto white
)

const jpegQuality = 95

// ParseFormat maps a user-supplied format name onto a Format. It accepts
// the common aliases "tif" and "jpeg".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tiff", "tif":
		return FormatTIFF, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return "", &EncodeError{Format: Format(name), Err: errUnsupportedFormat}
}

// Extension returns the output file extension without the leading dot.
func (f Format) Extension() string { return string(f) }

var errUnsupportedFormat = errors.New("unsupported output format")

// EncodeError reports an unsupported output kind or a failure while
// encoding or writing the output.
type EncodeError struct {
	Format Format
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Encode serializes the image into w in the given format.
//
// The lossless kinds keep all four channels. The lossy kind flattens onto
// an opaque white background first, since JPEG carries no transparency.
func Encode(w io.Writer, img *image.NRGBA, format Format) error {
	var err error
	switch format {
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, flattenOnWhite(img), &jpeg.Options{Quality: jpegQuality})
	default:
		err = errUnsupportedFormat
	}
	if err != nil {
		return &EncodeError{Format: format, Err: err}
	}
	return nil
}

// flattenOnWhite composites the canvas over opaque white, using the alpha
// channel as the blend mask, and discards transparency.
func flattenOnWhite(img *image.NRGBA) *image.RGBA {
	b := img.Bounds()
	white := imaging.New(b.Dx(), b.Dy(), color.White)
	return blend.Normal(white, img)
}

// Save encodes the image fully in memory and writes the file only after
// encoding has succeeded, so a failed run never leaves a partial output
// file on disk.
func Save(path string, img *image.NRGBA, format Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &EncodeError{Format: format, Err: err}
	}
	return nil
}
