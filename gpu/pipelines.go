package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/pointdrift/pointdrift/shaders"
)

// SampleCount is the MSAA sample count of the offscreen color target.
const SampleCount = 4

// NewStepPipeline builds the physics compute pipeline. Bind group layout
// is derived from the shader.
func NewStepPipeline(device *wgpu.Device) (*wgpu.ComputePipeline, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Step Points Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.StepPointsWGSL},
	})
	if err != nil {
		return nil, err
	}
	return device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: "Step Points Pipeline",
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     module,
			EntryPoint: "main",
		},
	})
}

// NewParticlePipeline builds the instanced billboard pipeline: 4-vertex
// triangle-strip quads, alpha-composited over whatever is already in the
// target.
func NewParticlePipeline(device *wgpu.Device, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Particle Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.PointsWGSL},
	})
	if err != nil {
		return nil, err
	}
	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Particle Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleStrip,
		},
		Multisample: wgpu.MultisampleState{
			Count: SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
}

// NewBackgroundPipeline builds the background compositor pipeline: a
// fullscreen triangle-strip quad, no blending, drawn before the
// particles.
func NewBackgroundPipeline(device *wgpu.Device, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Background Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.BackgroundWGSL},
	})
	if err != nil {
		return nil, err
	}
	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Background Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleStrip,
		},
		Multisample: wgpu.MultisampleState{
			Count: SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
}

// NewBasicPipeline builds the fallback renderer: one point-list vertex
// per particle, hard edged, no blending.
func NewBasicPipeline(device *wgpu.Device, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Basic Points Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.PointsBasicWGSL},
	})
	if err != nil {
		return nil, err
	}
	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Basic Points Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyPointList,
		},
		Multisample: wgpu.MultisampleState{
			Count: SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
}
