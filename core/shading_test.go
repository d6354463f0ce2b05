package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFalloffAlphaEndpoints(t *testing.T) {
	const intensity = 0.8

	assert.Equal(t, float32(intensity), FalloffAlpha(0, intensity), "center is full intensity")
	assert.Equal(t, float32(intensity), FalloffAlpha(0.5, intensity), "inside the falloff radius is full intensity")
	assert.Equal(t, float32(intensity), FalloffAlpha(FalloffRadius, intensity))
	assert.InDelta(t, 0, FalloffAlpha(1, intensity), 1e-6, "circle boundary is fully transparent")
	assert.Equal(t, float32(0), FalloffAlpha(1.2, intensity), "outside the circle is discarded")
}

func TestFalloffAlphaMonotone(t *testing.T) {
	const intensity = 1.0
	prev := FalloffAlpha(FalloffRadius, intensity)
	for r := float32(FalloffRadius); r <= 1.0; r += 0.01 {
		a := FalloffAlpha(r, intensity)
		if a > prev {
			t.Fatalf("opacity increased from %f to %f at r=%f", prev, a, r)
		}
		prev = a
	}
}

func TestFalloffAlphaScalesWithIntensity(t *testing.T) {
	assert.Equal(t, float32(0), FalloffAlpha(0.2, 0))
	// At r=0.9 the decay factor is 0.4, scaled by the peak opacity.
	assert.InDelta(t, 0.1, FalloffAlpha(0.9, 0.25), 1e-6)
	assert.InDelta(t, 0.2, FalloffAlpha(0.9, 0.5), 1e-6)
}

func TestToNDC(t *testing.T) {
	extent := Extent{Width: 800, Height: 600}

	// Top-left of the window maps to the top-left of NDC (y up).
	assert.Equal(t, mgl32.Vec2{-1, 1}, ToNDC(mgl32.Vec2{0, 0}, extent))
	// Bottom-right.
	assert.Equal(t, mgl32.Vec2{1, -1}, ToNDC(mgl32.Vec2{800, 600}, extent))
	// Center.
	assert.Equal(t, mgl32.Vec2{0, 0}, ToNDC(mgl32.Vec2{400, 300}, extent))
}

func TestBackgroundUVFullCoverage(t *testing.T) {
	// Window exactly the image size with no pan: the sampled rectangle
	// covers [0,1]x[0,1] with v flipped.
	extent := Extent{Width: BackgroundImageWidth, Height: BackgroundImageHeight}
	pan := mgl32.Vec2{0, 0}

	assert.Equal(t, mgl32.Vec2{0, 1}, BackgroundUV(mgl32.Vec2{0, 0}, extent, pan))
	assert.Equal(t, mgl32.Vec2{1, 1}, BackgroundUV(mgl32.Vec2{1, 0}, extent, pan))
	assert.Equal(t, mgl32.Vec2{0, 0}, BackgroundUV(mgl32.Vec2{0, 1}, extent, pan))
	assert.Equal(t, mgl32.Vec2{1, 0}, BackgroundUV(mgl32.Vec2{1, 1}, extent, pan))
}

func TestBackgroundUVPan(t *testing.T) {
	// A 960x540 window panned to the image center samples the quarter
	// rectangle starting there.
	extent := Extent{Width: 960, Height: 540}
	pan := mgl32.Vec2{960, 540}

	uv := BackgroundUV(mgl32.Vec2{0, 0}, extent, pan)
	assert.InDelta(t, 0.5, uv.X(), 1e-6)
	assert.InDelta(t, 0.5, uv.Y(), 1e-6)

	uv = BackgroundUV(mgl32.Vec2{1, 1}, extent, pan)
	assert.InDelta(t, 1.0, uv.X(), 1e-6)
	assert.InDelta(t, 0.0, uv.Y(), 1e-6)
}
