// Package gpu owns the GPU-resident buffers and the pipelines that bind
// them. The points buffer is the single source of truth for particle
// state: written by the compute stage, read by the render stage, every
// frame, on one in-order queue.
package gpu

import (
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pointdrift/pointdrift/core"
)

// PointStride is the size of one point record in the storage buffer:
// vec2<f32> position followed by vec2<f32> velocity.
const PointStride = 16

// BufferManager holds the points storage buffer and the per-frame
// uniforms shared by the compute and render stages.
type BufferManager struct {
	Device *wgpu.Device

	PointsBuf    *wgpu.Buffer
	ExtentBuf    *wgpu.Buffer
	DeltaTimeBuf *wgpu.Buffer
	PointSizeBuf *wgpu.Buffer
	IntensityBuf *wgpu.Buffer
	WindowPosBuf *wgpu.Buffer

	PointCount int
}

// NewBufferManager allocates every buffer and uploads the initial state.
// The points buffer size is fixed here for the lifetime of the manager;
// the population never grows or shrinks.
func NewBufferManager(device *wgpu.Device, points []core.Point, extent core.Extent, style core.Style) (*BufferManager, error) {
	m := &BufferManager{
		Device:     device,
		PointCount: len(points),
	}

	var err error
	m.PointsBuf, err = m.createBuffer("Points Buffer", pointsToBytes(points), wgpu.BufferUsageStorage)
	if err != nil {
		return nil, err
	}
	m.ExtentBuf, err = m.createBuffer("Window Size Buffer", vec2ToBytes(mgl32.Vec2{extent.Width, extent.Height}), wgpu.BufferUsageUniform)
	if err != nil {
		return nil, err
	}
	m.DeltaTimeBuf, err = m.createBuffer("Delta Time Buffer", float32ToBytes(0), wgpu.BufferUsageUniform)
	if err != nil {
		return nil, err
	}
	m.PointSizeBuf, err = m.createBuffer("Point Size Buffer", float32ToBytes(style.PointSize), wgpu.BufferUsageUniform)
	if err != nil {
		return nil, err
	}
	m.IntensityBuf, err = m.createBuffer("Intensity Buffer", float32ToBytes(style.Intensity), wgpu.BufferUsageUniform)
	if err != nil {
		return nil, err
	}
	m.WindowPosBuf, err = m.createBuffer("Window Position Buffer", vec2ToBytes(mgl32.Vec2{0, 0}), wgpu.BufferUsageUniform)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *BufferManager) createBuffer(label string, data []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	buf, err := m.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		m.Device.GetQueue().WriteBuffer(buf, 0, data)
	}
	return buf, nil
}

// WritePoints replaces the whole population, e.g. on a resize reseed.
// The slice length must equal the fixed point count.
func (m *BufferManager) WritePoints(points []core.Point) {
	m.Device.GetQueue().WriteBuffer(m.PointsBuf, 0, pointsToBytes(points))
}

func (m *BufferManager) WriteExtent(extent core.Extent) {
	m.Device.GetQueue().WriteBuffer(m.ExtentBuf, 0, vec2ToBytes(mgl32.Vec2{extent.Width, extent.Height}))
}

func (m *BufferManager) WriteDeltaTime(dt float32) {
	m.Device.GetQueue().WriteBuffer(m.DeltaTimeBuf, 0, float32ToBytes(dt))
}

func (m *BufferManager) WritePointSize(size float32) {
	m.Device.GetQueue().WriteBuffer(m.PointSizeBuf, 0, float32ToBytes(size))
}

func (m *BufferManager) WriteIntensity(intensity float32) {
	m.Device.GetQueue().WriteBuffer(m.IntensityBuf, 0, float32ToBytes(intensity))
}

func (m *BufferManager) WriteWindowPos(pos mgl32.Vec2) {
	m.Device.GetQueue().WriteBuffer(m.WindowPosBuf, 0, vec2ToBytes(pos))
}

// ComputeBindGroup binds the physics step resources: (0) points
// read-write, (1) window size, (2) delta time.
func (m *BufferManager) ComputeBindGroup(pipeline *wgpu.ComputePipeline) (*wgpu.BindGroup, error) {
	return m.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Step Points Bind Group",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: m.PointsBuf, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: m.ExtentBuf, Size: wgpu.WholeSize},
			{Binding: 2, Buffer: m.DeltaTimeBuf, Size: wgpu.WholeSize},
		},
	})
}

// ParticleBindGroup binds the billboard renderer resources: (0) points
// read-only, (1) window size, (2) point size, (3) intensity.
func (m *BufferManager) ParticleBindGroup(pipeline *wgpu.RenderPipeline) (*wgpu.BindGroup, error) {
	return m.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Particle Bind Group",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: m.PointsBuf, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: m.ExtentBuf, Size: wgpu.WholeSize},
			{Binding: 2, Buffer: m.PointSizeBuf, Size: wgpu.WholeSize},
			{Binding: 3, Buffer: m.IntensityBuf, Size: wgpu.WholeSize},
		},
	})
}

// BackgroundBindGroup binds the background compositor resources: (0)
// texture, (1) sampler, (2) window size, (3) pan position.
func (m *BufferManager) BackgroundBindGroup(pipeline *wgpu.RenderPipeline, view *wgpu.TextureView, sampler *wgpu.Sampler) (*wgpu.BindGroup, error) {
	return m.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Background Bind Group",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: sampler},
			{Binding: 2, Buffer: m.ExtentBuf, Size: wgpu.WholeSize},
			{Binding: 3, Buffer: m.WindowPosBuf, Size: wgpu.WholeSize},
		},
	})
}

// BasicBindGroup binds the fallback point-list renderer: (0) points
// read-only, (1) window size.
func (m *BufferManager) BasicBindGroup(pipeline *wgpu.RenderPipeline) (*wgpu.BindGroup, error) {
	return m.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Basic Points Bind Group",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: m.PointsBuf, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: m.ExtentBuf, Size: wgpu.WholeSize},
		},
	})
}

// Serialization helpers. Everything crossing the host/GPU boundary is
// little-endian f32.

func pointsToBytes(points []core.Point) []byte {
	buf := make([]byte, len(points)*PointStride)
	for i, p := range points {
		off := i * PointStride
		binary.LittleEndian.PutUint32(buf[off+0:], math.Float32bits(p.Position.X()))
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(p.Position.Y()))
		binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(p.Velocity.X()))
		binary.LittleEndian.PutUint32(buf[off+12:], math.Float32bits(p.Velocity.Y()))
	}
	return buf
}

func vec2ToBytes(v mgl32.Vec2) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.X()))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Y()))
	return buf
}

func float32ToBytes(f float32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
	return buf
}
