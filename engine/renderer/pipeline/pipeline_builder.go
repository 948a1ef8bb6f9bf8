package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithVertexShader sets the WGSL source and entry point for the vertex stage.
//
// Parameters:
//   - source: the WGSL shader source
//   - entryPoint: the vertex entry point function name
//
// Returns:
//   - PipelineBuilderOption: a function that sets the vertex stage
func WithVertexShader(source, entryPoint string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexSource = source
		p.vertexEntryPoint = entryPoint
	}
}

// WithFragmentShader sets the WGSL source and entry point for the fragment stage.
//
// Parameters:
//   - source: the WGSL shader source
//   - entryPoint: the fragment entry point function name
//
// Returns:
//   - PipelineBuilderOption: a function that sets the fragment stage
func WithFragmentShader(source, entryPoint string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fragmentSource = source
		p.fragmentEntryPoint = entryPoint
	}
}

// WithDepthTestEnabled sets whether depth testing is enabled for this pipeline.
//
// Parameters:
//   - enabled: a boolean indicating whether depth testing should be enabled
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth test enabled state
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
	}
}

// WithDepthWriteEnabled sets whether depth writing is enabled for this pipeline.
//
// Parameters:
//   - enabled: a boolean indicating whether depth writing should be enabled
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth write enabled state
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithDepthCompare sets the depth comparison function for this pipeline.
// The default is greater-than for reversed-z; skybox pipelines typically use
// greater-or-equal so the background passes at the cleared far value.
//
// Parameters:
//   - compare: the depth compare function
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth compare function
func WithDepthCompare(compare wgpu.CompareFunction) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthCompare = compare
	}
}

// WithBlendState enables blending with the given blend state.
//
// Parameters:
//   - state: the blend state to use
//
// Returns:
//   - PipelineBuilderOption: a function that enables blending
func WithBlendState(state *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = true
		p.blendState = state
	}
}

// WithCullMode sets the cull mode for this pipeline.
//
// Parameters:
//   - mode: the cull mode (e.g., wgpu.CullModeNone, wgpu.CullModeBack)
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology for this pipeline.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - PipelineBuilderOption: a function that sets the topology
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the front face winding order for this pipeline.
//
// Parameters:
//   - frontFace: the winding order
//
// Returns:
//   - PipelineBuilderOption: a function that sets the front face winding
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithVertexLayouts sets the vertex buffer layouts for the vertex stage.
//
// Parameters:
//   - layouts: the vertex buffer layouts
//
// Returns:
//   - PipelineBuilderOption: a function that sets the vertex layouts
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexLayouts = layouts
	}
}

// WithBindGroupLayouts sets explicit bind group layouts instead of deriving
// them from the shaders. Required for bindings with dynamic offsets.
//
// Parameters:
//   - layouts: the bind group layouts, in group order
//
// Returns:
//   - PipelineBuilderOption: a function that sets the bind group layouts
func WithBindGroupLayouts(layouts ...*wgpu.BindGroupLayout) PipelineBuilderOption {
	return func(p *pipeline) {
		p.bindGroupLayouts = layouts
	}
}

// WithWriteMask sets the color write mask for this pipeline.
//
// Parameters:
//   - mask: the color write mask
//
// Returns:
//   - PipelineBuilderOption: a function that sets the write mask
func WithWriteMask(mask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = mask
	}
}
