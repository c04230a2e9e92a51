// Package shade rounds the corners of a raster image and synthesizes a
// soft drop shadow behind it.
//
// All functions work on *image.NRGBA rasters (8-bit RGBA, straight alpha)
// with bounds rooted at the origin, and return new rasters. Inputs are
// never modified.
package shade

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrInvalidDimensions reports a zero-sized source raster or a
	// computed canvas size that under- or overflowed.
	ErrInvalidDimensions = errors.New("invalid raster dimensions")
	// ErrBlurRange reports a negative or absurdly large blur radius.
	ErrBlurRange = errors.New("blur radius out of range")
)

const (
	// DefaultBlurRadius is the blur applied when the caller does not pick
	// one. It is not exposed as a CLI flag.
	DefaultBlurRadius = 5

	// maxBlurRadius caps the kernel size; anything above it is a caller
	// bug, not a cosmetic choice.
	maxBlurRadius = 1024

	// maxCanvasDim caps either dimension of a synthesized or composed
	// canvas. A computed size beyond it means the parameters overflowed,
	// not that the caller wants a terapixel image.
	maxCanvasDim = 1 << 20

	// cleanupExponent shapes the post-blur alpha rolloff. See
	// AlphaCurveProcessor.
	cleanupExponent = 0.5

	// fadeExponent shapes the border attenuation curve. See
	// EdgeFadeProcessor.
	fadeExponent = 2.0
)

// Params configures one end-to-end run of the pipeline.
type Params struct {
	// Radius is the corner rounding radius in pixels. Clamped to
	// min(width,height)/2.
	Radius int
	// OffsetX and OffsetY displace the shadow relative to the source.
	// Negative values push the shadow up and to the left.
	OffsetX int
	OffsetY int
	// Alpha caps the shadow opacity.
	Alpha uint8
	// Spread grows the shadow's footprint before blurring. It folds into
	// the synthesis padding and the effective blur radius; the silhouette
	// itself is never resized.
	Spread int
	// BlurRadius is the Gaussian sigma for the shadow blur.
	BlurRadius int
	// EdgeFade attenuates shadow alpha toward the shadow's own bounding
	// box instead of letting it end in a hard clip.
	EdgeFade bool
	// Workers bounds the parallelism of the blur passes.
	Workers int
}

// DefaultParams returns the stock look: slightly rounded corners and a
// wide, soft shadow up and to the left.
func DefaultParams() Params {
	return Params{
		Radius:     8,
		OffsetX:    -20,
		OffsetY:    -20,
		Alpha:      150,
		Spread:     26,
		BlurRadius: DefaultBlurRadius,
		Workers:    4,
	}
}

// Padding reports the symmetric margin Synthesize adds around the source
// for the given spread and blur radius.
func Padding(spread, blurRadius int) int {
	return spread + 2*blurRadius
}

// newCanvas allocates a zero-based transparent raster after checking that
// the computed dimensions neither wrapped around nor exceed maxCanvasDim,
// so oversized parameters surface as ErrInvalidDimensions instead of a
// panic inside the image package.
func newCanvas(width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 || width > maxCanvasDim || height > maxCanvasDim {
		return nil, fmt.Errorf("%w: canvas is %dx%d", ErrInvalidDimensions, width, height)
	}
	return image.NewNRGBA(image.Rect(0, 0, width, height)), nil
}
