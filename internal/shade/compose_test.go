package shade

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComposeCanvasFitsAnyOffset(t *testing.T) {
	const w, h, pad = 30, 20, 9
	rounded := opaqueImage(w, h, color.NRGBA{R: 255, A: 255})
	shadow, err := Synthesize(rounded, ShadowParams{Spread: pad, Alpha: 255})
	require.NoError(t, err)

	offsets := []struct{ x, y int }{
		{0, 0}, {-50, -50}, {50, -50}, {-50, 50}, {50, 50}, {3, -7},
	}
	for _, off := range offsets {
		canvas, err := Compose(rounded, shadow, off.x, off.y, pad)
		require.NoError(t, err, "offset %v", off)

		require.Equal(t, w+abs(off.x)+2*pad, canvas.Bounds().Dx(), "offset %v", off)
		require.Equal(t, h+abs(off.y)+2*pad, canvas.Bounds().Dy(), "offset %v", off)

		// The opaque source must appear in full: count its pixels.
		var redCount int
		b := canvas.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				px := canvas.NRGBAAt(x, y)
				if px == (color.NRGBA{R: 255, A: 255}) {
					redCount++
				}
			}
		}
		if redCount != w*h {
			t.Fatalf("offset %v: source clipped, %d of %d pixels visible", off, redCount, w*h)
		}

		// The full shadow silhouette must be in bounds too: its raster
		// origin plus its size never exceeds the canvas.
		shadowX, shadowY := max(0, off.x), max(0, off.y)
		require.LessOrEqual(t, shadowX+shadow.Bounds().Dx(), canvas.Bounds().Dx())
		require.LessOrEqual(t, shadowY+shadow.Bounds().Dy(), canvas.Bounds().Dy())
	}
}

func TestComposeShadowSitsAtOffsetFromSource(t *testing.T) {
	const pad = 6
	rounded := opaqueImage(10, 10, color.NRGBA{B: 255, A: 255})
	shadow, err := Synthesize(rounded, ShadowParams{Spread: pad, Alpha: 255})
	require.NoError(t, err)

	canvas, err := Compose(rounded, shadow, -4, -4, pad)
	require.NoError(t, err)

	// Negative offset: the shadow raster stays at the origin and the
	// source absorbs the displacement.
	srcX, srcY := pad+4, pad+4
	require.Equal(t, color.NRGBA{B: 255, A: 255}, canvas.NRGBAAt(srcX, srcY))
	require.Equal(t, color.NRGBA{B: 255, A: 255}, canvas.NRGBAAt(srcX+9, srcY+9))

	// Up-left of the source the silhouette shows through: black with
	// some alpha, no blue.
	peek := canvas.NRGBAAt(srcX-2, srcY+4)
	require.NotZero(t, peek.A)
	require.Zero(t, peek.B)

	// Down-right of the source, past the shadow raster, nothing.
	require.Zero(t, canvas.NRGBAAt(srcX+13, srcY+5).A)
	require.Zero(t, canvas.NRGBAAt(srcX+5, srcY+13).A)
}

func TestComposeWithoutShadowOrPadding(t *testing.T) {
	// Opaque source: the copy must be byte-exact.
	rounded := image.NewNRGBA(image.Rect(0, 0, 12, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			rounded.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 30), B: 7, A: 255})
		}
	}

	canvas, err := Compose(rounded, nil, 0, 0, 0)
	require.NoError(t, err)

	require.Equal(t, rounded.Bounds(), canvas.Bounds())
	require.Equal(t, rounded.Pix, canvas.Pix)
}

func TestComposeRejectsOversizedCanvas(t *testing.T) {
	rounded := opaqueImage(10, 10, color.NRGBA{R: 255, A: 255})
	require.NotPanics(t, func() {
		_, err := Compose(rounded, nil, math.MaxInt32, 0, 0)
		require.ErrorIs(t, err, ErrInvalidDimensions)
	})
}

func TestComposeRejectsEmptySource(t *testing.T) {
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	_, err := Compose(empty, nil, 0, 0, 4)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidDimensions))
}
