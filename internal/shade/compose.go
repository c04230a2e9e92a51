package shade

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Compose lays the shadow and the rounded source onto a fresh canvas
// sized so neither layer clips at any signed offset:
//
//	width  = rounded.width  + |offsetX| + 2*padding
//	height = rounded.height + |offsetY| + 2*padding
//
// The shadow silhouette lands at the source position plus the offset; the
// layer pushed "away from" the offset stays put while the other absorbs
// the displacement, so both origins stay non-negative. The shadow is drawn
// first, the source alpha-over on top of it.
func Compose(rounded, shadow *image.NRGBA, offsetX, offsetY, padding int) (*image.NRGBA, error) {
	rb := rounded.Bounds()
	w, h := rb.Dx(), rb.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: source is %dx%d", ErrInvalidDimensions, w, h)
	}
	if padding < 0 {
		padding = 0
	}

	canvas, err := newCanvas(w+abs(offsetX)+2*padding, h+abs(offsetY)+2*padding)
	if err != nil {
		return nil, err
	}

	srcOrigin := image.Pt(padding+max(0, -offsetX), padding+max(0, -offsetY))
	if shadow != nil {
		sb := shadow.Bounds()
		shadowOrigin := image.Pt(max(0, offsetX), max(0, offsetY))
		draw.Draw(canvas, sb.Sub(sb.Min).Add(shadowOrigin), shadow, sb.Min, draw.Over)
	}
	draw.Draw(canvas, rb.Sub(rb.Min).Add(srcOrigin), rounded, rb.Min, draw.Over)

	return canvas, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
