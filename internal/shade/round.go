package shade

import (
	"image"
	"math"
)

// Round copies src into a new raster of the same size with the alpha
// channel zeroed outside a quarter-circle in each corner. A one pixel
// feather band softens the rounding boundary; alpha is only ever lowered,
// and RGB channels are never touched. A radius of zero or less is the
// identity copy. Radii larger than half the shorter dimension are clamped
// to min(width,height)/2, which degenerates to a lens shape.
func Round(src *image.NRGBA, radius int) *image.NRGBA {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, width, height))

	if radius > min(width, height)/2 {
		radius = min(width, height) / 2
	}
	r := float64(radius)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := src.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)

			// Distance components from this corner's inner circle
			// center, radius pixels in from both edges.
			var dx, dy float64
			switch {
			case x < radius && y < radius:
				dx, dy = r-float64(x), r-float64(y)
			case x >= width-radius && y < radius:
				dx, dy = float64(x)-(float64(width)-r-1), r-float64(y)
			case x < radius && y >= height-radius:
				dx, dy = r-float64(x), float64(y)-(float64(height)-r-1)
			case x >= width-radius && y >= height-radius:
				dx, dy = float64(x)-(float64(width)-r-1), float64(y)-(float64(height)-r-1)
			default:
				out.SetNRGBA(x, y, px)
				continue
			}

			if d := math.Hypot(dx, dy); d > r {
				f := (r + 1 - d) * 255
				if f < 0 {
					f = 0
				}
				if a := uint8(f); a < px.A {
					px.A = a
				}
			}
			out.SetNRGBA(x, y, px)
		}
	}
	return out
}
