package output

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-raycaster/pkg/renderer"
)

var ErrUnsupportedFormat = errors.New("output: unsupported image format")

// Format is an image file encoding
type Format int

const (
	PNG Format = iota
	BMP
	TIFF
)

// String returns the canonical file extension of the format, without the dot
func (f Format) String() string {
	switch f {
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	default:
		return "png"
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// ParseFormat parses a format name; an empty name selects PNG
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return PNG, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// toByte maps a channel value to 8 bits, clamping to [0,1] first
func toByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(255 * v)
}

// ToNRGBA converts a framebuffer to a non-premultiplied 8 bit image. Row j of the
// framebuffer becomes image row j, so the top of the image plane is at the top.
func ToNRGBA(fb *renderer.Framebuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))

	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			r, g, b, a := fb.At(i, j)
			img.SetNRGBA(i, j, color.NRGBA{
				R: toByte(r),
				G: toByte(g),
				B: toByte(b),
				A: toByte(a),
			})
		}
	}

	return img
}

// Encode writes the framebuffer in the given format
func Encode(w io.Writer, fb *renderer.Framebuffer, format Format) error {
	img := ToNRGBA(fb)

	var err error
	switch format {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// WriteFile encodes the framebuffer to path, choosing the format from its extension
// and creating the parent directory when needed.
func WriteFile(path string, fb *renderer.Framebuffer) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, fb, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
