package core

import (
	"github.com/chewxy/math32"
)

// WorkgroupSize is the fixed partition width of the compute dispatch.
// The shader guards invocations at or beyond the point count, so the
// dispatch may safely round up.
const WorkgroupSize = 64

// WorkgroupCount returns the number of workgroups needed to cover count
// points at WorkgroupSize invocations each, rounded up.
func WorkgroupCount(count int) uint32 {
	return uint32((count + WorkgroupSize - 1) / WorkgroupSize)
}

// StepPoint advances one point by dt seconds inside the extent. This is
// the CPU mirror of the compute shader: integrate, reflect each axis
// independently, then clamp the position into bounds. The clamp runs
// unconditionally after the velocity flip so a point whose single-step
// displacement exceeds the remaining distance to a wall cannot escape.
func StepPoint(p Point, extent Extent, dt float32) Point {
	p.Position = p.Position.Add(p.Velocity.Mul(dt))

	if p.Position.X() < 0 || p.Position.X() > extent.Width {
		p.Velocity[0] = -p.Velocity[0]
	}
	if p.Position.Y() < 0 || p.Position.Y() > extent.Height {
		p.Velocity[1] = -p.Velocity[1]
	}

	p.Position[0] = math32.Min(math32.Max(p.Position[0], 0), extent.Width)
	p.Position[1] = math32.Min(math32.Max(p.Position[1], 0), extent.Height)
	return p
}

// StepBuffer advances every point in place, emulating the dispatch shape
// of the GPU stage: WorkgroupCount(len) groups of WorkgroupSize
// invocations, with invocations at index >= len(points) as no-ops.
func StepBuffer(points []Point, extent Extent, dt float32) {
	groups := int(WorkgroupCount(len(points)))
	for g := 0; g < groups; g++ {
		for l := 0; l < WorkgroupSize; l++ {
			stepInvocation(points, g*WorkgroupSize+l, extent, dt)
		}
	}
}

func stepInvocation(points []Point, index int, extent Extent, dt float32) {
	if index >= len(points) {
		return
	}
	points[index] = StepPoint(points[index], extent, dt)
}
