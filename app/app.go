// Package app owns the per-frame orchestration: uniform refresh, the
// physics compute dispatch, and the background + particle render passes,
// all submitted in order on one queue so the compute writes to the
// points buffer are visible to the render reads.
package app

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pointdrift/pointdrift/config"
	"github.com/pointdrift/pointdrift/core"
	"github.com/pointdrift/pointdrift/gpu"
	"github.com/pointdrift/pointdrift/logging"
	"github.com/pointdrift/pointdrift/volume"
)

type App struct {
	Window *glfw.Window
	Log    logging.Logger

	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	StepPipeline       *wgpu.ComputePipeline
	ParticlePipeline   *wgpu.RenderPipeline
	BackgroundPipeline *wgpu.RenderPipeline
	BasicPipeline      *wgpu.RenderPipeline

	Buffers      *gpu.BufferManager
	StepBG       *wgpu.BindGroup
	ParticleBG   *wgpu.BindGroup
	BackgroundBG *wgpu.BindGroup
	BasicBG      *wgpu.BindGroup

	MSAAView       *wgpu.TextureView
	BackgroundView *wgpu.TextureView
	Sampler        *wgpu.Sampler

	Volume   volume.Provider
	envelope *volume.Envelope

	extent     core.Extent
	style      core.Style
	pointCount int
	basicMode  bool

	frameCount int
	fpsTime    float64
	lastFPS    float64
}

func New(window *glfw.Window, log logging.Logger) *App {
	return &App{
		Window: window,
		Log:    log,
		// Full level by default; swap in a real signal source to drive
		// the intensity externally.
		Volume: volume.Constant{Level: 1},
	}
}

// Init brings up the device, loads the background asset, builds every
// pipeline and buffer, and leaves the app ready for the frame loop. Any
// error here is fatal; the loop is never entered.
func (a *App) Init(cfg config.Config) error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(a.Window))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()

	width, height := a.Window.GetFramebufferSize()
	caps := a.Surface.GetCapabilities(adapter)
	format := caps.Formats[0]

	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	a.Surface.Configure(adapter, a.Device, a.Config)

	a.extent = core.NewExtent(float32(width), float32(height))
	a.style = core.Style{PointSize: cfg.PointSize, Intensity: cfg.Intensity}
	a.pointCount = cfg.PointCount
	a.basicMode = cfg.BasicRenderer
	// The envelope tracks a normalized level that scales the configured
	// intensity; start at full level so a silent provider fades out from
	// the configured look rather than popping in.
	a.envelope = volume.NewEnvelope(1)

	// The background asset is required; a missing or undecodable file
	// stops startup here.
	a.BackgroundView, err = loadBackgroundTexture(a.Device, a.Queue, cfg.Background)
	if err != nil {
		return fmt.Errorf("load background: %w", err)
	}

	a.Sampler, err = a.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Background Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}

	if a.StepPipeline, err = gpu.NewStepPipeline(a.Device); err != nil {
		return fmt.Errorf("step pipeline: %w", err)
	}
	if a.ParticlePipeline, err = gpu.NewParticlePipeline(a.Device, format); err != nil {
		return fmt.Errorf("particle pipeline: %w", err)
	}
	if a.BackgroundPipeline, err = gpu.NewBackgroundPipeline(a.Device, format); err != nil {
		return fmt.Errorf("background pipeline: %w", err)
	}
	if a.BasicPipeline, err = gpu.NewBasicPipeline(a.Device, format); err != nil {
		return fmt.Errorf("basic pipeline: %w", err)
	}

	points := core.SeedPoints(a.pointCount, a.extent)
	a.Buffers, err = gpu.NewBufferManager(a.Device, points, a.extent, a.style)
	if err != nil {
		return fmt.Errorf("create buffers: %w", err)
	}
	a.Buffers.WriteWindowPos(a.windowPos())

	if a.StepBG, err = a.Buffers.ComputeBindGroup(a.StepPipeline); err != nil {
		return fmt.Errorf("step bind group: %w", err)
	}
	if a.ParticleBG, err = a.Buffers.ParticleBindGroup(a.ParticlePipeline); err != nil {
		return fmt.Errorf("particle bind group: %w", err)
	}
	if a.BackgroundBG, err = a.Buffers.BackgroundBindGroup(a.BackgroundPipeline, a.BackgroundView, a.Sampler); err != nil {
		return fmt.Errorf("background bind group: %w", err)
	}
	if a.BasicBG, err = a.Buffers.BasicBindGroup(a.BasicPipeline); err != nil {
		return fmt.Errorf("basic bind group: %w", err)
	}

	a.setupMSAATarget()

	a.Log.Infof("initialized: %d points, %dx%d, format %v", a.pointCount, width, height, format)
	return nil
}

func (a *App) setupMSAATarget() {
	if a.MSAAView != nil {
		a.MSAAView.Release()
	}

	texture, err := a.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "MSAA Color Texture",
		Size: wgpu.Extent3D{
			Width:              a.Config.Width,
			Height:             a.Config.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   gpu.SampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        a.Config.Format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	a.MSAAView, err = texture.CreateView(nil)
	if err != nil {
		panic(err)
	}
}

// Resize reconfigures the surface and rewrites the extent uniform so the
// compute and render stages agree on the new bounds, then reseeds the
// population into them. GLFW delivers this between frames, never between
// the dispatch and the render pass of one frame.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	a.Config.Width = uint32(width)
	a.Config.Height = uint32(height)
	a.Surface.Configure(a.Adapter, a.Device, a.Config)
	a.setupMSAATarget()

	a.extent = core.NewExtent(float32(width), float32(height))
	a.Buffers.WriteExtent(a.extent)
	a.Buffers.WriteWindowPos(a.windowPos())
	a.Buffers.WritePoints(core.SeedPoints(a.pointCount, a.extent))

	a.Log.Debugf("resized to %dx%d", width, height)
}

// SetStyle updates the billboard style uniforms for subsequent frames.
func (a *App) SetStyle(style core.Style) {
	a.style = style
	a.Buffers.WritePointSize(style.PointSize)
	a.Buffers.WriteIntensity(style.Intensity)
}

// Update refreshes the per-frame uniforms: elapsed time, intensity from
// the volume envelope, and the current pan offset.
func (a *App) Update(dt float32) {
	a.Buffers.WriteDeltaTime(dt)

	sample, ok, err := a.Volume.Poll()
	if err != nil {
		a.Log.Warnf("volume poll: %v", err)
		ok = false
	}
	intensity := a.envelope.Next(sample, ok, dt) * a.style.Intensity
	a.Buffers.WriteIntensity(intensity)

	a.Buffers.WriteWindowPos(a.windowPos())
}

// Render encodes and submits one frame: the physics dispatch followed by
// the background and particle draws, in one command buffer. The
// in-order submission is the memory-visibility boundary between the
// compute write and the render read of the points buffer.
func (a *App) Render() error {
	surfaceTexture, err := a.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create encoder: %w", err)
	}

	stepPass := encoder.BeginComputePass(nil)
	stepPass.SetPipeline(a.StepPipeline)
	stepPass.SetBindGroup(0, a.StepBG, nil)
	stepPass.DispatchWorkgroups(core.WorkgroupCount(a.pointCount), 1, 1)
	if err := stepPass.End(); err != nil {
		return fmt.Errorf("step pass: %w", err)
	}

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:          a.MSAAView,
			ResolveTarget: view,
			LoadOp:        wgpu.LoadOpClear,
			StoreOp:       wgpu.StoreOpDiscard,
			ClearValue:    wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})

	// Background first so the particles composite on top.
	renderPass.SetPipeline(a.BackgroundPipeline)
	renderPass.SetBindGroup(0, a.BackgroundBG, nil)
	renderPass.Draw(4, 1, 0, 0)

	if a.basicMode {
		renderPass.SetPipeline(a.BasicPipeline)
		renderPass.SetBindGroup(0, a.BasicBG, nil)
		renderPass.Draw(uint32(a.pointCount), 1, 0, 0)
	} else {
		renderPass.SetPipeline(a.ParticlePipeline)
		renderPass.SetBindGroup(0, a.ParticleBG, nil)
		renderPass.Draw(4, uint32(a.pointCount), 0, 0)
	}

	if err := renderPass.End(); err != nil {
		return fmt.Errorf("render pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	a.Queue.Submit(cmd)
	a.Surface.Present()

	a.trackFPS()
	return nil
}

func (a *App) windowPos() mgl32.Vec2 {
	x, y := a.Window.GetPos()
	return mgl32.Vec2{float32(x), float32(y)}
}

func (a *App) trackFPS() {
	now := glfw.GetTime()
	if a.fpsTime == 0 {
		a.fpsTime = now
		return
	}
	a.frameCount++
	if now-a.fpsTime >= 1.0 {
		a.lastFPS = float64(a.frameCount) / (now - a.fpsTime)
		a.frameCount = 0
		a.fpsTime = now
		a.Log.Debugf("%.1f fps", a.lastFPS)
	}
}
