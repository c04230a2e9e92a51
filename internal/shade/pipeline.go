package shade

import (
	"fmt"
	"image"
)

// Apply runs the full pipeline: round the corners of src, synthesize a
// drop shadow from the rounded silhouette, and compose both onto a canvas
// large enough for the offset.
//
// Cosmetic parameters (radius, spread, alpha) are clamped rather than
// rejected; structurally invalid input fails fast with ErrInvalidDimensions
// or ErrBlurRange before any raster is produced.
func Apply(src *image.NRGBA, p Params) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source raster", ErrInvalidDimensions)
	}
	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: source is %dx%d", ErrInvalidDimensions, bounds.Dx(), bounds.Dy())
	}
	if p.BlurRadius < 0 || p.BlurRadius > maxBlurRadius {
		return nil, fmt.Errorf("%w: %d", ErrBlurRange, p.BlurRadius)
	}
	if p.Radius < 0 {
		p.Radius = 0
	}
	if p.Spread < 0 {
		p.Spread = 0
	}
	if p.Workers < 1 {
		p.Workers = 1
	}

	padding := Padding(p.Spread, p.BlurRadius)
	if padding < 0 || padding > maxCanvasDim {
		return nil, fmt.Errorf("%w: shadow padding %d", ErrInvalidDimensions, padding)
	}
	canvasW := bounds.Dx() + abs(p.OffsetX) + 2*padding
	canvasH := bounds.Dy() + abs(p.OffsetY) + 2*padding
	if canvasW <= 0 || canvasH <= 0 || canvasW > maxCanvasDim || canvasH > maxCanvasDim {
		return nil, fmt.Errorf("%w: canvas is %dx%d", ErrInvalidDimensions, canvasW, canvasH)
	}

	rounded := Round(src, p.Radius)

	shadow, err := Synthesize(rounded, ShadowParams{
		BlurRadius: p.BlurRadius,
		Spread:     p.Spread,
		Alpha:      p.Alpha,
		EdgeFade:   p.EdgeFade,
		Workers:    p.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize shadow: %w", err)
	}

	canvas, err := Compose(rounded, shadow, p.OffsetX, p.OffsetY, padding)
	if err != nil {
		return nil, fmt.Errorf("compose layers: %w", err)
	}
	return canvas, nil
}
