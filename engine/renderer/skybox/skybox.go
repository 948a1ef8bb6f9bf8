// package skybox composites a fullscreen background into an already-open
// render pass. The skybox draws last so depth testing rejects every pixel
// covered by geometry, and it draws a single fullscreen triangle generated in
// the vertex shader, so it binds no vertex buffers.
package skybox

import (
	"github.com/MJohnson459/bevy/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Resources holds the per-view GPU state the skybox needs. Both the pipeline
// key and the bind group are prepared by earlier frame stages; either may be
// missing when the view has no skybox or preparation has not finished.
type Resources struct {
	// PipelineKey identifies the skybox pipeline in the pipeline cache.
	PipelineKey string

	// BindGroup binds the cubemap texture, sampler, and view uniforms.
	BindGroup *wgpu.BindGroup

	// ViewUniformOffset is the dynamic offset into the per-view uniform
	// buffer for the view being rendered.
	ViewUniformOffset uint32
}

// Pass is the slice of render pass state the compositor needs.
type Pass interface {
	SetPipeline(p *wgpu.RenderPipeline)
	SetBindGroup(index uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
}

// Composite draws the skybox into the pass if everything it needs is present:
// resources for the view, a bind group, and a compiled pipeline. Anything
// missing silently skips the draw; a pipeline still compiling is expected
// during the first frames after startup and is not an error.
//
// Parameters:
//   - pass: the open render pass to draw into
//   - cache: the pipeline cache holding the skybox pipeline
func (r *Resources) Composite(pass Pass, cache pipeline.Cache) {
	if r == nil || r.PipelineKey == "" || r.BindGroup == nil {
		return
	}
	compiled := cache.GetRenderPipeline(r.PipelineKey)
	if compiled == nil {
		return
	}

	pass.SetPipeline(compiled)
	pass.SetBindGroup(0, r.BindGroup, []uint32{r.ViewUniformOffset})
	pass.Draw(3, 1, 0, 0)
}
