package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointdrift/pointdrift/core"
)

func TestPointsToBytesLayout(t *testing.T) {
	points := []core.Point{
		{Position: mgl32.Vec2{1, 2}, Velocity: mgl32.Vec2{3, 4}},
		{Position: mgl32.Vec2{-5, 6.5}, Velocity: mgl32.Vec2{0, -0.25}},
	}

	buf := pointsToBytes(points)
	require.Len(t, buf, 2*PointStride)

	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}

	// Record 0: position.x, position.y, velocity.x, velocity.y.
	assert.Equal(t, float32(1), readF32(0))
	assert.Equal(t, float32(2), readF32(4))
	assert.Equal(t, float32(3), readF32(8))
	assert.Equal(t, float32(4), readF32(12))

	// Record 1 starts at one stride.
	assert.Equal(t, float32(-5), readF32(16))
	assert.Equal(t, float32(6.5), readF32(20))
	assert.Equal(t, float32(0), readF32(24))
	assert.Equal(t, float32(-0.25), readF32(28))
}

func TestVec2ToBytes(t *testing.T) {
	buf := vec2ToBytes(mgl32.Vec2{800, 600})
	require.Len(t, buf, 8)

	assert.Equal(t, math.Float32bits(800), binary.LittleEndian.Uint32(buf[0:4]))
	assert.Equal(t, math.Float32bits(600), binary.LittleEndian.Uint32(buf[4:8]))
}

func TestFloat32ToBytes(t *testing.T) {
	buf := float32ToBytes(0.016)
	require.Len(t, buf, 4)
	assert.Equal(t, math.Float32bits(0.016), binary.LittleEndian.Uint32(buf))
}

func TestPointsToBytesEmpty(t *testing.T) {
	assert.Empty(t, pointsToBytes(nil))
}
