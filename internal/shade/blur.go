package shade

import (
	"image"
	"math"

	"golang.org/x/sync/errgroup"
)

// gaussianKernel returns a normalized 1D Gaussian of length 2r+1 with
// r = ceil(3*sigma).
func gaussianKernel(sigma float64) []float64 {
	r := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*r+1)
	var sum float64
	for i := range kernel {
		d := float64(i - r)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// blurAlpha convolves the alpha plane of img with a separable Gaussian.
// Samples outside the raster count as fully transparent. RGB channels are
// untouched, so on an all-black shadow layer this blurs the shadow shape
// itself.
//
// The horizontal pass has no dependency between rows and the vertical
// pass none between columns, so both run in bands under an errgroup
// bounded by workers.
func blurAlpha(img *image.NRGBA, sigma float64, workers int) error {
	if sigma <= 0 {
		return nil
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	src := make([]float64, w*h)
	for y := 0; y < h; y++ {
		i := img.PixOffset(bounds.Min.X, bounds.Min.Y+y) + 3
		for x := 0; x < w; x++ {
			src[y*w+x] = float64(img.Pix[i])
			i += 4
		}
	}
	tmp := make([]float64, w*h)

	g := new(errgroup.Group)
	g.SetLimit(workers)
	rowBand := (h + workers - 1) / workers
	for start := 0; start < h; start += rowBand {
		start := start
		end := min(start+rowBand, h)
		g.Go(func() error {
			for y := start; y < end; y++ {
				row := src[y*w : (y+1)*w]
				out := tmp[y*w : (y+1)*w]
				for x := 0; x < w; x++ {
					var sum float64
					for k, kv := range kernel {
						if sx := x + k - radius; sx >= 0 && sx < w {
							sum += kv * row[sx]
						}
					}
					out[x] = sum
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	g = new(errgroup.Group)
	g.SetLimit(workers)
	colBand := (w + workers - 1) / workers
	for start := 0; start < w; start += colBand {
		start := start
		end := min(start+colBand, w)
		g.Go(func() error {
			for x := start; x < end; x++ {
				for y := 0; y < h; y++ {
					var sum float64
					for k, kv := range kernel {
						if sy := y + k - radius; sy >= 0 && sy < h {
							sum += kv * tmp[sy*w+x]
						}
					}
					img.Pix[img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)+3] = uint8(sum + 0.5)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
