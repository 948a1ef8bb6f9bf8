package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the WGSL sources and fixed-function configuration needed to build
// a render pipeline, plus the compiled GPU object once compilation finishes.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	vertexSource, fragmentSource         string
	vertexEntryPoint, fragmentEntryPoint string

	// renderPipeline is the compiled GPU pipeline, nil until compilation completes
	renderPipeline *wgpu.RenderPipeline

	// The following properties configure the pipeline during creation and can
	// be toggled/set with the builder options.

	depthTestEnabled  bool
	depthWriteEnabled bool
	depthCompare      wgpu.CompareFunction
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
	vertexLayouts     []wgpu.VertexBufferLayout
	bindGroupLayouts  []*wgpu.BindGroupLayout
}

// Pipeline describes a render pipeline: WGSL shader sources, entry points,
// and fixed-function state. It also stores the compiled GPU pipeline object
// once a Cache has built it.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// VertexSource returns the WGSL source for the vertex stage.
	//
	// Returns:
	//   - string: the vertex shader source
	VertexSource() string

	// FragmentSource returns the WGSL source for the fragment stage.
	//
	// Returns:
	//   - string: the fragment shader source
	FragmentSource() string

	// VertexEntryPoint returns the vertex stage entry point function name.
	//
	// Returns:
	//   - string: the vertex entry point
	VertexEntryPoint() string

	// FragmentEntryPoint returns the fragment stage entry point function name.
	//
	// Returns:
	//   - string: the fragment entry point
	FragmentEntryPoint() string

	// RenderPipeline returns the compiled GPU pipeline, or nil if it has not
	// been compiled yet.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the compiled pipeline, or nil
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the compiled GPU pipeline on this Pipeline.
	//
	// Parameters:
	//   - p: the compiled render pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// DepthCompare returns the depth comparison function for this pipeline.
	// Reversed-z pipelines use greater-than compares.
	//
	// Returns:
	//   - wgpu.CompareFunction: the depth compare function
	DepthCompare() wgpu.CompareFunction

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// BlendState returns the blend state used when blending is enabled.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state, or nil
	BlendState() *wgpu.BlendState

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask
	WriteMask() wgpu.ColorWriteMask

	// VertexLayouts returns the vertex buffer layouts for the vertex stage.
	// A fullscreen-triangle pipeline has none.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts, may be empty
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayouts returns the explicit bind group layouts for this
	// pipeline, or nil to derive layouts from the shaders. Explicit layouts
	// are required for bindings with dynamic offsets.
	//
	// Returns:
	//   - []*wgpu.BindGroupLayout: the bind group layouts, or nil
	BindGroupLayouts() []*wgpu.BindGroupLayout
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new Pipeline with the given cache key. Defaults:
// depth test and write enabled with a greater-than compare (reversed-z),
// back-face culling, triangle list topology, CCW front faces, full color
// write mask, blending off, "vs_main"/"fs_main" entry points.
//
// Parameters:
//   - key: the unique cache key for this pipeline
//   - options: functional options to configure the pipeline
//
// Returns:
//   - Pipeline: the newly created pipeline description
func NewPipeline(key string, options ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:        key,
		vertexEntryPoint:   "vs_main",
		fragmentEntryPoint: "fs_main",
		depthTestEnabled:   true,
		depthWriteEnabled:  true,
		depthCompare:       wgpu.CompareFunctionGreater,
		cullMode:           wgpu.CullModeBack,
		topology:           wgpu.PrimitiveTopologyTriangleList,
		frontFace:          wgpu.FrontFaceCCW,
		writeMask:          wgpu.ColorWriteMaskAll,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) VertexSource() string {
	return p.vertexSource
}

func (p *pipeline) FragmentSource() string {
	return p.fragmentSource
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntryPoint
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragmentEntryPoint
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	return p.depthCompare
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipeline) BindGroupLayouts() []*wgpu.BindGroupLayout {
	return p.bindGroupLayouts
}
