// Package imgio decodes arbitrary input image streams into zero-based
// NRGBA rasters and encodes finished rasters as PNG.
package imgio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/dblezek/tga"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyInput reports a zero-byte input stream, usually a forgotten
// pipe.
var ErrEmptyInput = errors.New("no input data")

// Decode reads the whole stream, auto-detects the image format, and
// returns the pixels as a zero-based NRGBA raster along with the format
// name. PNG, JPEG and GIF come from the standard library; BMP, TIFF and
// WebP register through golang.org/x/image. TGA has no magic bytes to
// sniff, so it is tried last as an explicit fallback.
func Decode(r io.Reader) (*image.NRGBA, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyInput
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		tgaImg, tgaErr := tga.Decode(bytes.NewReader(data))
		if tgaErr != nil {
			return nil, "", fmt.Errorf("decode image: %w", err)
		}
		img, format = tgaImg, "tga"
	}
	return ToNRGBA(img), format, nil
}

// ToNRGBA copies img into a fresh NRGBA raster with bounds rooted at the
// origin. An image that is already a zero-based *image.NRGBA is still
// copied, so callers may mutate the result freely.
func ToNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Copy(out, image.Point{}, img, bounds, draw.Src, nil)
	return out
}

// EncodePNG writes img to w as an 8-bit RGBA PNG.
func EncodePNG(w io.Writer, img *image.NRGBA) error {
	if img == nil || img.Bounds().Empty() {
		return errors.New("nothing to encode")
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
