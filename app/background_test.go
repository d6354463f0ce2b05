package app

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleToFillDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3840, 2160))

	dst := scaleToFill(src, 1920, 1080)

	require.Equal(t, 1920, dst.Bounds().Dx())
	require.Equal(t, 1080, dst.Bounds().Dy())
}

func TestScaleToFillCropsCentered(t *testing.T) {
	// A very wide source: left third red, middle third green, right third
	// blue. Filling a 16:9 target must sample from the middle.
	src := image.NewRGBA(image.Rect(0, 0, 9000, 1000))
	for x := 0; x < 9000; x++ {
		var c color.RGBA
		switch {
		case x < 3000:
			c = color.RGBA{R: 255, A: 255}
		case x < 6000:
			c = color.RGBA{G: 255, A: 255}
		default:
			c = color.RGBA{B: 255, A: 255}
		}
		for y := 0; y < 1000; y++ {
			src.SetRGBA(x, y, c)
		}
	}

	dst := scaleToFill(src, 1920, 1080)

	_, g, _, _ := dst.At(960, 540).RGBA()
	assert.NotZero(t, g, "center of the fill should come from the middle of the source")
}

func TestScaleToFillPreservesExactFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	for y := 0; y < 1080; y++ {
		for x := 0; x < 1920; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	dst := scaleToFill(src, 1920, 1080)

	r, g, b, _ := dst.At(100, 100).RGBA()
	assert.Equal(t, uint32(10<<8|10), r)
	assert.Equal(t, uint32(20<<8|20), g)
	assert.Equal(t, uint32(30<<8|30), b)
}
