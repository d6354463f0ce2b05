// Package core holds the simulation data model and the CPU reference
// of the per-frame point update. The GPU shaders in the shaders package
// implement the same math; core is the testable source of truth for it.
package core

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Defaults matching the stock visualizer setup.
const (
	DefaultPointCount = 1000
	DefaultPointSize  = 5.0
	DefaultIntensity  = 0.8
)

// Point is one particle: position in window pixels, velocity in pixels
// per second. Layout mirrors the GPU storage buffer record (two vec2<f32>,
// 16 bytes).
type Point struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
}

// Extent is the current drawable size in pixels. Both components must be
// positive; the position-to-NDC transform divides by them.
type Extent struct {
	Width  float32
	Height float32
}

// NewExtent clamps both components to at least 1 pixel. A zero extent
// makes the NDC transform undefined, so the clamp happens here rather
// than in every consumer.
func NewExtent(width, height float32) Extent {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return Extent{Width: width, Height: height}
}

// Style controls the billboard rendering: diameter in pixels and peak
// opacity in [0,1]. Both are documented input contracts, not enforced.
type Style struct {
	PointSize float32
	Intensity float32
}

// SeedPoints places count points uniformly inside the extent with speeds
// in [1,3) pixels/second and a random sign per axis.
func SeedPoints(count int, extent Extent) []Point {
	points := make([]Point, count)
	for i := range points {
		x := rand.Float32() * extent.Width
		y := rand.Float32() * extent.Height

		vx := 1.0 + rand.Float32()*2.0
		vy := 1.0 + rand.Float32()*2.0
		if rand.Intn(2) == 0 {
			vx = -vx
		}
		if rand.Intn(2) == 0 {
			vy = -vy
		}

		points[i] = Point{
			Position: mgl32.Vec2{x, y},
			Velocity: mgl32.Vec2{vx, vy},
		}
	}
	return points
}
