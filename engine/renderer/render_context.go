package renderer

import (
	"github.com/MJohnson459/bevy/common"
	"github.com/MJohnson459/bevy/engine/renderer/draw_phase"
	"github.com/MJohnson459/bevy/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderPass is the command-recording scope of one open render pass. Commands
// are serialized in call order into the frame's command stream. The pass
// holds an exclusive write scope on its attachments from BeginRenderPass
// until End; End must be called on every exit path.
type RenderPass interface {
	draw_phase.ItemDrawer

	// SetViewport restricts rasterization to a sub-rectangle of the target.
	// Must be called before any draw on this pass.
	//
	// Parameters:
	//   - vp: the viewport rectangle and depth range
	SetViewport(vp common.Viewport)

	// SetPipeline binds a compiled render pipeline on the pass.
	//
	// Parameters:
	//   - p: the compiled pipeline
	SetPipeline(p *wgpu.RenderPipeline)

	// SetBindGroup binds a bind group at the given index.
	//
	// Parameters:
	//   - index: the bind group index
	//   - group: the bind group
	//   - dynamicOffsets: dynamic uniform offsets, or nil
	SetBindGroup(index uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)

	// Draw issues a non-indexed draw call.
	//
	// Parameters:
	//   - vertexCount: number of vertices to draw
	//   - instanceCount: number of instances to draw
	//   - firstVertex: offset of the first vertex
	//   - firstInstance: offset of the first instance
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)

	// End closes the pass and releases the attachment write scope.
	End()
}

// RenderContext records GPU work for one frame. Frame-graph nodes receive a
// RenderContext and open render passes against it; the owning frame loop
// calls Finish to submit the recorded commands.
type RenderContext interface {
	// Device returns the GPU device.
	//
	// Returns:
	//   - *wgpu.Device: the device
	Device() *wgpu.Device

	// Queue returns the GPU submission queue.
	//
	// Returns:
	//   - *wgpu.Queue: the queue
	Queue() *wgpu.Queue

	// Pipelines returns the shared pipeline cache.
	//
	// Returns:
	//   - pipeline.Cache: the pipeline cache
	Pipelines() pipeline.Cache

	// BeginRenderPass opens a render pass with the given configuration on the
	// frame's command encoder, creating the encoder on first use.
	//
	// Parameters:
	//   - desc: the render pass descriptor
	//
	// Returns:
	//   - RenderPass: the open pass recording scope
	//   - error: an error if the command encoder could not be created
	BeginRenderPass(desc *wgpu.RenderPassDescriptor) (RenderPass, error)

	// Finish submits the frame's recorded commands to the queue. All passes
	// must be ended before calling Finish.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	Finish() error
}
