package shade

import (
	"image"
	"math"
)

// PostProcessor adjusts a raster in place after the main synthesis steps.
type PostProcessor interface {
	Process(src *image.NRGBA) (*image.NRGBA, error)
}

// EdgeFadeProcessor attenuates alpha in a band along the raster border so
// a shadow fades out before it reaches its own bounding box. A pixel at
// minimum edge distance d gets its alpha multiplied by
// 1 - (1 - d/Distance)^Exponent: zero on the outermost row and column,
// rising smoothly to one at Distance pixels in.
type EdgeFadeProcessor struct {
	// Distance is the band width in pixels. Clamped to half the shorter
	// dimension.
	Distance int
	// Exponent defaults to fadeExponent when zero or negative.
	Exponent float64
}

func (p *EdgeFadeProcessor) Process(src *image.NRGBA) (*image.NRGBA, error) {
	bounds := src.Bounds()
	dist := math.Min(float64(p.Distance),
		math.Min(float64(bounds.Dx())/2, float64(bounds.Dy())/2))
	if dist < 1 {
		return src, nil
	}
	exp := p.Exponent
	if exp <= 0 {
		exp = fadeExponent
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			distX := math.Min(float64(x-bounds.Min.X), float64(bounds.Max.X-1-x))
			distY := math.Min(float64(y-bounds.Min.Y), float64(bounds.Max.Y-1-y))
			minDist := math.Min(distX, distY)
			if minDist >= dist {
				continue
			}
			px := src.NRGBAAt(x, y)
			if px.A == 0 {
				continue
			}
			factor := 1 - math.Pow(1-minDist/dist, exp)
			px.A = uint8(float64(px.A)*factor + 0.5)
			src.SetNRGBA(x, y, px)
		}
	}
	return src, nil
}

// AlphaCurveProcessor rescales every non-transparent pixel by
// (alpha/255)^Exponent across all four channels, softening the hard fringe
// a blur leaves behind. Fully transparent pixels are skipped so noise is
// never reintroduced in clear regions.
type AlphaCurveProcessor struct {
	// Exponent defaults to cleanupExponent when zero or negative.
	Exponent float64
}

func (p *AlphaCurveProcessor) Process(src *image.NRGBA) (*image.NRGBA, error) {
	exp := p.Exponent
	if exp <= 0 {
		exp = cleanupExponent
	}
	bounds := src.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := src.NRGBAAt(x, y)
			if px.A == 0 {
				continue
			}
			factor := math.Pow(float64(px.A)/255, exp)
			px.R = uint8(float64(px.R) * factor)
			px.G = uint8(float64(px.G) * factor)
			px.B = uint8(float64(px.B) * factor)
			px.A = uint8(float64(px.A) * factor)
			src.SetNRGBA(x, y, px)
		}
	}
	return src, nil
}
