package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Background image dimensions in pixels. Baked into the background
// shader as a constant; the asset loader scales whatever image it is
// given to exactly these dimensions so the two always agree.
const (
	BackgroundImageWidth  = 1920
	BackgroundImageHeight = 1080
)

// FalloffRadius is the local radius at which billboard opacity starts
// decaying toward zero at the circle edge.
const FalloffRadius = 0.75

// FalloffAlpha is the CPU mirror of the billboard fragment shading.
// r is the distance from the billboard center in local unit-quad space:
// beyond 1 the fragment is outside the circle and fully transparent,
// below FalloffRadius opacity is the full intensity, and in between it
// decays linearly from intensity at FalloffRadius to zero at 1.
func FalloffAlpha(r, intensity float32) float32 {
	if r > 1 {
		return 0
	}
	return math32.Min(intensity, (1-r)*4*intensity)
}

// ToNDC maps a window-space position (origin top-left, y down, pixels)
// to normalized device coordinates (y up, [-1,1]). The y flip is part of
// the rendering contract; without it all vertical motion renders
// inverted.
func ToNDC(world mgl32.Vec2, extent Extent) mgl32.Vec2 {
	return mgl32.Vec2{
		world.X()/extent.Width*2 - 1,
		1 - world.Y()/extent.Height*2,
	}
}

// BackgroundUV is the CPU mirror of the background vertex shading. unit
// is a corner of the unit window quad (origin top-left, v down); the
// result is the texture coordinate sampled there: the unit quad scaled
// by the extent, offset by the pan position, normalized by the fixed
// image dimensions, and flipped on v to match the texture row order.
func BackgroundUV(unit mgl32.Vec2, extent Extent, windowPos mgl32.Vec2) mgl32.Vec2 {
	u := (unit.X()*extent.Width + windowPos.X()) / BackgroundImageWidth
	v := (unit.Y()*extent.Height + windowPos.Y()) / BackgroundImageHeight
	return mgl32.Vec2{u, 1 - v}
}
