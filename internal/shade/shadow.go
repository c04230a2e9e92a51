package shade

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ShadowParams configures Synthesize.
type ShadowParams struct {
	BlurRadius int
	Spread     int
	Alpha      uint8
	EdgeFade   bool
	Workers    int
}

// Synthesize derives a shadow layer from the alpha silhouette of src. The
// result is a new raster padded by Padding(spread, blurRadius) on every
// side, holding only the shadow: black pixels whose alpha is the source
// alpha scaled by p.Alpha, Gaussian-blurred with an effective sigma of
// blurRadius + spread/2. Spread never resizes the silhouette; it only
// widens the padding and the blur.
//
// After an actual blur a cleanup curve rescales non-transparent pixels by
// (alpha/255)^0.5 so the blur fringe rolls off smoothly. With blur and
// spread both zero the output is the silhouette at the same size, alpha
// exactly sourceAlpha*p.Alpha/255.
func Synthesize(src *image.NRGBA, p ShadowParams) (*image.NRGBA, error) {
	bounds := src.Bounds()
	padding := Padding(p.Spread, p.BlurRadius)
	if padding < 0 || padding > maxCanvasDim {
		return nil, fmt.Errorf("%w: shadow padding %d", ErrInvalidDimensions, padding)
	}
	width := bounds.Dx() + 2*padding
	height := bounds.Dy() + 2*padding

	shadow, err := newCanvas(width, height)
	if err != nil {
		return nil, err
	}
	draw.Copy(shadow, image.Pt(padding, padding), src, bounds, draw.Src, nil)

	for y := 0; y < height; y++ {
		i := shadow.PixOffset(0, y)
		for x := 0; x < width; x++ {
			a := shadow.Pix[i+3]
			shadow.Pix[i] = 0
			shadow.Pix[i+1] = 0
			shadow.Pix[i+2] = 0
			shadow.Pix[i+3] = uint8(int(a) * int(p.Alpha) / 255)
			i += 4
		}
	}

	if sigma := p.BlurRadius + p.Spread/2; sigma > 0 {
		if err := blurAlpha(shadow, float64(sigma), p.Workers); err != nil {
			return nil, err
		}
	}

	// The fade runs on the blurred result: before the blur nothing has
	// reached the fade band, since the silhouette sits a full padding in
	// from the border.
	if p.EdgeFade {
		fade := &EdgeFadeProcessor{Distance: padding}
		if _, err := fade.Process(shadow); err != nil {
			return nil, err
		}
	}

	if p.BlurRadius+p.Spread/2 > 0 {
		cleanup := &AlphaCurveProcessor{}
		if _, err := cleanup.Process(shadow); err != nil {
			return nil, err
		}
	}
	return shadow, nil
}
