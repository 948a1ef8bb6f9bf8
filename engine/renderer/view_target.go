package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ViewTarget is the writable color surface for one camera view. For a
// windowed view this wraps the acquired swapchain texture view; offscreen
// views wrap a render-attachment texture of their own.
type ViewTarget struct {
	View   *wgpu.TextureView
	Format wgpu.TextureFormat
}

// ColorAttachment builds the pass color attachment for this target with the
// resolved load operation. The store op is always store: the target's
// contents are consumed by later passes (transparency, post-processing,
// presentation).
//
// Parameters:
//   - ops: the resolved color load operation
//
// Returns:
//   - wgpu.RenderPassColorAttachment: the color attachment description
func (t *ViewTarget) ColorAttachment(ops ColorOps) wgpu.RenderPassColorAttachment {
	return wgpu.RenderPassColorAttachment{
		View:       t.View,
		LoadOp:     ops.Load,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: ops.Clear,
	}
}

// ViewDepthTexture is the writable depth surface for one camera view.
type ViewDepthTexture struct {
	View   *wgpu.TextureView
	Format wgpu.TextureFormat
}

// DepthAttachment builds the pass depth attachment for this texture with the
// resolved load operation. The store op is always store so later passes can
// depth-test against the opaque geometry. Stencil ops are left unset; the
// main geometry pass never touches stencil.
//
// Parameters:
//   - ops: the resolved depth load operation
//
// Returns:
//   - *wgpu.RenderPassDepthStencilAttachment: the depth attachment description
func (t *ViewDepthTexture) DepthAttachment(ops DepthOps) *wgpu.RenderPassDepthStencilAttachment {
	return &wgpu.RenderPassDepthStencilAttachment{
		View:            t.View,
		DepthLoadOp:     ops.Load,
		DepthStoreOp:    wgpu.StoreOpStore,
		DepthClearValue: ops.Clear,
	}
}

// BuildRenderPassDescriptor assembles the render pass configuration for one
// view: exactly one color attachment and one depth attachment, both stored,
// no stencil, no timestamp or occlusion-query instrumentation.
//
// Parameters:
//   - color: the resolved color load operation
//   - depth: the resolved depth load operation
//   - target: the view's color surface
//   - depthTexture: the view's depth surface
//
// Returns:
//   - *wgpu.RenderPassDescriptor: the assembled descriptor
func BuildRenderPassDescriptor(color ColorOps, depth DepthOps, target *ViewTarget, depthTexture *ViewDepthTexture) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			target.ColorAttachment(color),
		},
		DepthStencilAttachment: depthTexture.DepthAttachment(depth),
	}
}
